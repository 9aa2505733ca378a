package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(0, 0, color.NRGBA{R: 10, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

// slowSource delays Open and counts how often it is opened.
type slowSource struct {
	BytesSource
	delay time.Duration
	opens *atomic.Int32
}

func (s slowSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if s.opens != nil {
		s.opens.Add(1)
	}
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.BytesSource.Open(ctx)
}

func TestLoad_PreservesOrder(t *testing.T) {
	// Earlier sources finish last.
	var sources []Source
	for i := range 5 {
		sources = append(sources, slowSource{
			BytesSource: BytesSource{Name: fmt.Sprintf("img-%d", i), Data: pngBytes(t, 10+i, 20)},
			delay:       time.Duration(5-i) * 20 * time.Millisecond,
		})
	}

	imgs, err := New(WithConcurrency(5)).Load(context.Background(), sources)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(imgs) != len(sources) {
		t.Fatalf("got %d images, want %d", len(imgs), len(sources))
	}
	for i, img := range imgs {
		if img.Source != sources[i].ID() {
			t.Errorf("image %d source = %q, want %q", i, img.Source, sources[i].ID())
		}
		if img.Width != 10+i || img.Height != 20 {
			t.Errorf("image %d = %dx%d, want %dx20", i, img.Width, img.Height, 10+i)
		}
	}
}

func TestLoad_Empty(t *testing.T) {
	imgs, err := New().Load(context.Background(), nil)
	if err != nil || len(imgs) != 0 {
		t.Fatalf("Load(nil) = %v, %v; want empty, nil", imgs, err)
	}
}

func TestLoad_DecodeFailureFailsBatch(t *testing.T) {
	sources := []Source{
		BytesSource{Name: "good", Data: pngBytes(t, 4, 4)},
		BytesSource{Name: "broken", Data: []byte("definitely not an image")},
	}

	imgs, err := New().Load(context.Background(), sources)
	if imgs != nil {
		t.Errorf("partial result returned: %v", imgs)
	}

	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v, want *DecodeError", err)
	}
	if de.Index != 1 || de.Source != "broken" {
		t.Errorf("DecodeError = %+v, want index 1 source broken", de)
	}
	if de.Unwrap() == nil {
		t.Error("DecodeError should wrap the cause")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := New().Load(context.Background(), []Source{FileSource(filepath.Join(t.TempDir(), "nope.png"))})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}

func TestLoad_FileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	if err := os.WriteFile(path, pngBytes(t, 7, 3), 0o644); err != nil {
		t.Fatal(err)
	}
	imgs, err := New().Load(context.Background(), []Source{FileSource(path)})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if imgs[0].Width != 7 || imgs[0].Height != 3 || imgs[0].Source != path {
		t.Errorf("got %+v", imgs[0])
	}
}

func TestLoad_Cache(t *testing.T) {
	var opens atomic.Int32
	src := slowSource{
		BytesSource: BytesSource{Name: "cached", Data: pngBytes(t, 5, 5)},
		opens:       &opens,
	}

	t.Run("hit", func(t *testing.T) {
		opens.Store(0)
		l := New()
		first, err := l.Load(context.Background(), []Source{src})
		if err != nil {
			t.Fatal(err)
		}
		second, err := l.Load(context.Background(), []Source{src})
		if err != nil {
			t.Fatal(err)
		}
		if opens.Load() != 1 {
			t.Errorf("source opened %d times, want 1", opens.Load())
		}
		if first[0] != second[0] {
			t.Error("cached load returned a different raster")
		}

		l.Forget("cached")
		if _, err := l.Load(context.Background(), []Source{src}); err != nil {
			t.Fatal(err)
		}
		if opens.Load() != 2 {
			t.Errorf("source opened %d times after Forget, want 2", opens.Load())
		}
	})

	t.Run("disabled", func(t *testing.T) {
		opens.Store(0)
		l := New(WithCache(0))
		for range 2 {
			if _, err := l.Load(context.Background(), []Source{src}); err != nil {
				t.Fatal(err)
			}
		}
		if opens.Load() != 2 {
			t.Errorf("source opened %d times, want 2", opens.Load())
		}
		l.Forget("cached")
	})
}

func TestLoad_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := slowSource{BytesSource: BytesSource{Name: "slow", Data: pngBytes(t, 2, 2)}, delay: time.Second}
	_, err := New().Load(ctx, []Source{src})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestImages(t *testing.T) {
	imgs, err := New().Load(context.Background(), []Source{
		BytesSource{Name: "a", Data: pngBytes(t, 2, 2)},
		BytesSource{Name: "b", Data: pngBytes(t, 3, 3)},
	})
	if err != nil {
		t.Fatal(err)
	}
	out := Images(imgs)
	if len(out) != 2 || out[1].Bounds().Dx() != 3 {
		t.Errorf("Images = %v", out)
	}
}

func TestLoad_Logger(t *testing.T) {
	debugLogger := func(buf *bytes.Buffer) *slog.Logger {
		return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	src := []Source{BytesSource{Name: "logged", Data: pngBytes(t, 2, 2)}}

	// A loader created before SetLogger still picks it up.
	l := New(WithCache(0))
	var pkg bytes.Buffer
	SetLogger(debugLogger(&pkg))
	t.Cleanup(func() { SetLogger(nil) })

	if _, err := l.Load(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(pkg.String(), "image decoded") {
		t.Errorf("package logger got %q", pkg.String())
	}

	pkg.Reset()
	var own bytes.Buffer
	if _, err := New(WithCache(0), WithLogger(debugLogger(&own))).Load(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(own.String(), "image decoded") || pkg.Len() != 0 {
		t.Errorf("WithLogger not preferred: own %q, package %q", own.String(), pkg.String())
	}
}
