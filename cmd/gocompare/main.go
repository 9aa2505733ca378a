// GoCompare - Side-by-side image comparison canvases.
//
// Usage:
//
//	gocompare [options] image...
//	gocompare init [--settings path]
//	gocompare presets
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/xob0t/GoCompare/pkg/canvas"
	"github.com/xob0t/GoCompare/pkg/config"
	"github.com/xob0t/GoCompare/pkg/export"
	"github.com/xob0t/GoCompare/pkg/loader"
	"github.com/xob0t/GoCompare/pkg/settings"
)

func main() {
	cfg := config.Load()

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch args[0] {
	case "init":
		err = runInit(cfg, args[1:])
	case "presets":
		runPresets()
	case "help", "-h", "--help":
		printUsage()
	default:
		err = run(cfg, args)
	}
	if err != nil {
		fatal(err)
	}
}

// options are the render flags.
type options struct {
	output        string
	settingsPath  string
	theme         string
	preview       bool
	native        bool
	quality       float64
	fontPath      string
	title         string
	layout        string
	labelPosition string
	letters       string
	logLevel      string
}

func parseFlags(cfg *config.Config, args []string) (*options, []string, error) {
	fs := flag.NewFlagSet("gocompare", flag.ExitOnError)
	o := &options{}

	fs.StringVar(&o.output, "o", "", "Output file (.png, .jpg or .jpeg)")
	fs.StringVar(&o.output, "output", "", "Output file (.png, .jpg or .jpeg)")
	fs.StringVar(&o.settingsPath, "settings", cfg.SettingsPath, "Settings JSON file")
	fs.StringVar(&o.theme, "theme", cfg.Theme, "Theme: light or dark")
	fs.BoolVar(&o.preview, "preview", false, "Render the on-screen preview instead of the export")
	fs.BoolVar(&o.native, "native", false, "Render at the images' own resolution (up to 4000 px)")
	fs.Float64Var(&o.quality, "quality", 0, "Export quality in (0,1]; 1 writes PNG")
	fs.StringVar(&o.fontPath, "font", cfg.FontPath, "TTF/OTF font for labels, title and watermark")
	fs.StringVar(&o.title, "title", "", "Canvas title")
	fs.StringVar(&o.layout, "layout", "", "Layout: horizontal or vertical")
	fs.StringVar(&o.labelPosition, "label-position", "", "Label position: top or bottom")
	fs.StringVar(&o.letters, "letters", "", "Comma-separated labels, e.g. \"Before,After\"")
	fs.StringVar(&o.logLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")

	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return o, fs.Args(), nil
}

func run(cfg *config.Config, args []string) error {
	o, paths, err := parseFlags(cfg, args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(o.logLevel),
	}))
	slog.SetDefault(logger)
	canvas.SetLogger(logger)

	if len(paths) == 0 {
		printUsage()
		return errors.New("at least one image is required")
	}

	theme := settings.ParseTheme(o.theme)
	s, err := loadSettings(o, theme, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sources := make([]loader.Source, len(paths))
	for i, p := range paths {
		sources[i] = loader.FileSource(p)
	}
	imgs, err := loader.New(loader.WithCache(0), loader.WithLogger(logger)).Load(ctx, sources)
	if err != nil {
		return fmt.Errorf("load images: %w", err)
	}

	renderer, err := canvas.NewRenderer(canvas.WithFontPath(o.fontPath), canvas.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}

	images := loader.Images(imgs)
	var res *canvas.Result
	switch {
	case o.preview:
		res, err = renderer.Preview(images, s, theme)
	case o.native:
		res, err = renderer.Render(images, s, canvas.RenderOptions{
			Scale:        1,
			Theme:        theme,
			ReferenceCap: canvas.MaxImageDimension,
		})
	default:
		res, err = renderer.Export(images, s, theme)
	}
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	output := o.output
	if output == "" {
		output = export.FilenameFor(config.DefaultOutput, s.ExportQuality)
		err = export.Write(output, res.Image, s.ExportQuality)
	} else {
		err = export.WriteFile(output, res.Image, s.ExportQuality)
	}
	if err != nil {
		return err
	}

	b := res.Image.Bounds()
	fmt.Printf("Done: %s (%dx%d)\n", output, b.Dx(), b.Dy())
	return nil
}

// loadSettings builds the settings snapshot: defaults, then the settings
// file, then flag overrides.
func loadSettings(o *options, theme settings.Theme, logger *slog.Logger) (settings.CanvasSettings, error) {
	s := settings.Default(theme)
	if o.settingsPath != "" {
		var warnings []string
		var err error
		s, warnings, err = settings.LoadFile(o.settingsPath, theme)
		if err != nil {
			return s, err
		}
		for _, w := range warnings {
			logger.Warn(w, "file", o.settingsPath)
		}
	}

	s = settings.Update(s, func(s *settings.CanvasSettings) {
		if o.title != "" {
			s.Title.Text = o.title
		}
		if o.layout != "" {
			s.LayoutDirection = settings.LayoutDirection(o.layout)
		}
		if o.labelPosition != "" {
			s.TextPosition = settings.TextPosition(o.labelPosition)
		}
		if o.letters != "" {
			s.Text.Letters = strings.Split(o.letters, ",")
		}
		if o.quality != 0 {
			s.ExportQuality = o.quality
		}
	})

	for _, w := range settings.Validate(s) {
		logger.Warn(w)
	}
	return settings.Normalize(s), nil
}

func runInit(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	var out, theme string
	fs.StringVar(&out, "settings", "settings.json", "Output path for the sample settings")
	fs.StringVar(&theme, "theme", cfg.Theme, "Theme the sample colours are chosen for")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := settings.ExampleJSON(settings.ParseTheme(theme))
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	fmt.Printf("Created: %s\n", out)
	fmt.Printf("Run: gocompare --settings %s before.png after.png\n", out)
	return nil
}

func runPresets() {
	for _, p := range settings.Backgrounds {
		kind := "solid"
		if p.IsGradient() {
			kind = "gradient"
		}
		marker := ""
		if p.Value == settings.DefaultBackground {
			marker = " (default)"
		}
		fmt.Printf("%-24s %-10s %-9s light %s  dark %s%s\n",
			p.Value, p.Label, kind,
			strings.Join(p.Light, " "), strings.Join(p.Dark, " "), marker)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Print(`GoCompare - Image Comparison Canvases (Pure Go)

USAGE:
    gocompare [options] image...
    gocompare init [--settings path] [--theme dark]
    gocompare presets

RENDER:
    -o, --output <path>       Output file (.png, .jpg, .jpeg).
                              Default: which-choice.jpg, or .png at quality 1
    --settings <path>         Settings JSON (see 'gocompare init')
    --theme <light|dark>      Theme (default: light)
    --preview                 Render the 1x preview with its frame
    --native                  Render at source resolution (up to 4000 px)
    --quality <0-1>           Export quality; 1 writes a lossless PNG
    --font <path>             TTF/OTF font (default: embedded Go Bold)
    --title <text>            Canvas title
    --layout <dir>            horizontal or vertical
    --label-position <pos>    top or bottom
    --letters <a,b,...>       Labels, one per image (default: A, B, C...)
    --log-level <level>       debug, info, warn, error (default: warn)

ENVIRONMENT:
    GOCOMPARE_THEME, GOCOMPARE_SETTINGS, GOCOMPARE_FONT, GOCOMPARE_LOG_LEVEL

EXAMPLES:
    gocompare before.png after.png
    gocompare -o compare.png --quality 1 --title "Which one?" a.jpg b.jpg c.jpg
    gocompare --layout vertical --label-position top --letters Old,New old.png new.png
    gocompare init && gocompare --settings settings.json a.png b.png
`)
}
