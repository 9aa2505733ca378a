//go:build js && wasm

// GoCompare WASM - Client-side comparison renderer.
// Compiled with: GOOS=js GOARCH=wasm go build -o gocompare.wasm ./clients/wasm/
package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log/slog"
	"os"
	"sync"
	"syscall/js"

	"github.com/xob0t/GoCompare/pkg/canvas"
	"github.com/xob0t/GoCompare/pkg/config"
	"github.com/xob0t/GoCompare/pkg/export"
	"github.com/xob0t/GoCompare/pkg/loader"
	"github.com/xob0t/GoCompare/pkg/settings"
)

// In-memory upload store. Decoded rasters live in the loader's cache.
var (
	uploadsMu sync.RWMutex
	uploads   = make(map[string][]byte)

	images = loader.New(loader.WithConcurrency(1))

	rendererMu sync.Mutex
	renderer   *canvas.Renderer
	fontData   []byte
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: config.ParseLogLevel(config.DefaultLogLevel),
	}))
	canvas.SetLogger(logger)
	loader.SetLogger(logger)
	fmt.Println("GoCompare WASM loaded")

	// Register JS-callable functions.
	js.Global().Set("goRegisterImage", js.FuncOf(registerImage))
	js.Global().Set("goRemoveImage", js.FuncOf(removeImage))
	js.Global().Set("goSetFont", js.FuncOf(setFont))
	js.Global().Set("goRenderPreview", js.FuncOf(renderPreview))
	js.Global().Set("goExport", js.FuncOf(exportImage))
	js.Global().Set("goReady", js.ValueOf(true))

	// Block forever (WASM must not exit).
	select {}
}

// goRegisterImage(id, base64Data) - store an uploaded image in Go memory.
func registerImage(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf("error: need id, base64Data")
	}
	id := args[0].String()
	data, err := base64.StdEncoding.DecodeString(args[1].String())
	if err != nil {
		return js.ValueOf("error: invalid base64: " + err.Error())
	}

	uploadsMu.Lock()
	uploads[id] = data
	uploadsMu.Unlock()
	images.Forget(id)

	return js.ValueOf("ok")
}

// goRemoveImage(id) - drop an image and its decoded raster.
func removeImage(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("error: need id")
	}
	id := args[0].String()
	uploadsMu.Lock()
	delete(uploads, id)
	uploadsMu.Unlock()
	images.Forget(id)
	return js.ValueOf("ok")
}

// goSetFont(base64Data) - replace the embedded font; "" restores it.
func setFont(this js.Value, args []js.Value) any {
	var data []byte
	if len(args) > 0 && args[0].String() != "" {
		var err error
		data, err = base64.StdEncoding.DecodeString(args[0].String())
		if err != nil {
			return js.ValueOf("error: invalid base64: " + err.Error())
		}
	}

	rendererMu.Lock()
	defer rendererMu.Unlock()
	fontData = data
	renderer = nil
	return js.ValueOf("ok")
}

// goRenderPreview(idsJSON, settingsJSON, theme) - render the 1x preview and
// return it as base64 PNG. No images yields "".
func renderPreview(this js.Value, args []js.Value) any {
	imgs, s, theme, err := prepare(args)
	if err != nil {
		return js.ValueOf("error: " + err.Error())
	}
	r, err := currentRenderer()
	if err != nil {
		return js.ValueOf("error: renderer: " + err.Error())
	}

	res, err := r.Preview(imgs, s, theme)
	if err != nil {
		return js.ValueOf("error: render: " + err.Error())
	}
	if res == nil {
		return js.ValueOf("")
	}

	var buf bytes.Buffer
	if err := export.Encode(&buf, res.Image, 1); err != nil {
		return js.ValueOf("error: " + err.Error())
	}
	return js.ValueOf(base64.StdEncoding.EncodeToString(buf.Bytes()))
}

// goExport(idsJSON, settingsJSON, theme) - render at export scale and return
// {"filename": ..., "data": base64} as JSON.
func exportImage(this js.Value, args []js.Value) any {
	imgs, s, theme, err := prepare(args)
	if err != nil {
		return js.ValueOf("error: " + err.Error())
	}
	r, err := currentRenderer()
	if err != nil {
		return js.ValueOf("error: renderer: " + err.Error())
	}

	res, err := r.Export(imgs, s, theme)
	if err != nil {
		return js.ValueOf("error: render: " + err.Error())
	}
	if res == nil {
		return js.ValueOf("error: no images")
	}

	var buf bytes.Buffer
	if err := export.Encode(&buf, res.Image, s.ExportQuality); err != nil {
		return js.ValueOf("error: " + err.Error())
	}

	out, err := json.Marshal(struct {
		Filename string `json:"filename"`
		Data     string `json:"data"`
	}{
		Filename: export.FilenameFor(config.DefaultOutput, s.ExportQuality),
		Data:     base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
	if err != nil {
		return js.ValueOf("error: " + err.Error())
	}
	return js.ValueOf(string(out))
}

// prepare decodes the call arguments and loads the referenced images in order.
func prepare(args []js.Value) ([]image.Image, settings.CanvasSettings, settings.Theme, error) {
	if len(args) < 3 {
		return nil, settings.CanvasSettings{}, "", fmt.Errorf("need idsJSON, settingsJSON, theme")
	}
	theme := settings.ParseTheme(args[2].String())

	var ids []string
	if err := json.Unmarshal([]byte(args[0].String()), &ids); err != nil {
		return nil, settings.CanvasSettings{}, theme, fmt.Errorf("parse ids: %w", err)
	}

	s := settings.Default(theme)
	if raw := args[1].String(); raw != "" && raw != "null" {
		var warnings []string
		var err error
		s, warnings, err = settings.Parse([]byte(raw), theme)
		if err != nil {
			return nil, s, theme, err
		}
		for _, w := range warnings {
			canvas.Logger().Warn(w)
		}
	}

	sources := make([]loader.Source, 0, len(ids))
	uploadsMu.RLock()
	for _, id := range ids {
		data, ok := uploads[id]
		if !ok {
			uploadsMu.RUnlock()
			return nil, s, theme, fmt.Errorf("unknown image %q", id)
		}
		sources = append(sources, loader.BytesSource{Name: id, Data: data})
	}
	uploadsMu.RUnlock()

	rasters, err := images.Load(context.Background(), sources)
	if err != nil {
		return nil, s, theme, err
	}
	return loader.Images(rasters), s, theme, nil
}

func currentRenderer() (*canvas.Renderer, error) {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if renderer != nil {
		return renderer, nil
	}
	r, err := canvas.NewRenderer(canvas.WithFontBytes(fontData))
	if err != nil {
		return nil, err
	}
	renderer = r
	return r, nil
}
