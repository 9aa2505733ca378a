// renderer.go - Canvas compositing engine.
// Computes the geometry of a render pass, scales it, acquires a surface and
// paints the layers in a fixed order: background -> pattern -> border ->
// preview frame -> title -> images with shadows and labels -> watermark.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/fogleman/gg"

	"github.com/xob0t/GoCompare/pkg/settings"
)

// ErrSurface is returned when the requested surface size is empty or too large.
var ErrSurface = errors.New("canvas: cannot allocate drawing surface")

// RenderOptions select the surface a render pass paints.
type RenderOptions struct {
	Scale        float64 // surface pixels per logical pixel; <= 0 means 1
	PreviewFrame bool
	Theme        settings.Theme
	ReferenceCap float64 // <= 0 means PreviewReferenceCap
}

// Result is a finished render.
type Result struct {
	Image    *image.RGBA
	Geometry *Geometry // scaled geometry the image was painted from
}

// Option configures a Renderer.
type Option func(*rendererConfig)

type rendererConfig struct {
	fontPath   string
	fontBytes  []byte
	titleSizer settings.TitleSizer
	density    settings.PatternDensity
	logger     *slog.Logger
}

// WithFontPath loads labels, title and watermark from a TTF/OTF file.
func WithFontPath(path string) Option {
	return func(c *rendererConfig) { c.fontPath = path }
}

// WithFontBytes uses raw TTF/OTF data. It wins over WithFontPath.
func WithFontBytes(data []byte) Option {
	return func(c *rendererConfig) { c.fontBytes = data }
}

// WithTitleSizer replaces the title scaling policy.
func WithTitleSizer(ts settings.TitleSizer) Option {
	return func(c *rendererConfig) { c.titleSizer = ts }
}

// WithPatternDensity replaces the pattern density policy.
func WithPatternDensity(pd settings.PatternDensity) Option {
	return func(c *rendererConfig) { c.density = pd }
}

// WithLogger sets the renderer's logger. Without it the package logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(c *rendererConfig) { c.logger = l }
}

// Renderer paints comparison canvases. Render passes on one Renderer are
// serialized; use several Renderers for parallel rendering.
type Renderer struct {
	fonts      *FontManager
	titleSizer settings.TitleSizer
	density    settings.PatternDensity
	log        *slog.Logger

	mu sync.Mutex
}

// NewRenderer creates a renderer. The embedded bold font is used unless a
// font option is given.
func NewRenderer(opts ...Option) (*Renderer, error) {
	cfg := rendererConfig{
		titleSizer: settings.DefaultTitleSizer,
		density:    settings.DefaultPatternDensity,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = Logger()
	}

	var (
		fm  *FontManager
		err error
	)
	if cfg.fontBytes != nil {
		fm, err = NewFontManagerFromBytes(cfg.fontBytes)
	} else {
		fm, err = NewFontManager(cfg.fontPath)
	}
	if err != nil {
		return nil, err
	}

	return &Renderer{
		fonts:      fm,
		titleSizer: cfg.titleSizer,
		density:    cfg.density,
		log:        cfg.logger,
	}, nil
}

// Layout computes the scale-1 geometry for images, as Render would.
func (r *Renderer) Layout(sizes []Size, s settings.CanvasSettings, referenceCap float64) (*Geometry, bool) {
	return Calculate(sizes, s, LayoutOptions{
		ReferenceCap:   referenceCap,
		TitleSizer:     r.titleSizer,
		PatternDensity: r.density,
	})
}

// Render composes images onto a new surface. It returns nil, nil when there
// are no images: nothing is allocated or painted.
func (r *Renderer) Render(images []image.Image, s settings.CanvasSettings, opts RenderOptions) (*Result, error) {
	if len(images) == 0 {
		r.log.Debug("render skipped: no images")
		return nil, nil
	}
	s = s.Clone()

	logical, _ := r.Layout(SizesOf(images), s, opts.ReferenceCap)
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	g := logical.Scaled(scale)

	w, h := g.PixelSize()
	if w <= 0 || h <= 0 || w > MaxSurfaceDimension || h > MaxSurfaceDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrSurface, w, h)
	}
	dc := gg.NewContext(w, h)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.paint(dc, images, g, s, opts); err != nil {
		return nil, err
	}

	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected surface type %T", ErrSurface, dc.Image())
	}

	r.log.Debug("rendered canvas",
		"images", len(images),
		"width", w,
		"height", h,
		"scale", scale,
		"preview", opts.PreviewFrame,
	)
	return &Result{Image: img, Geometry: g}, nil
}

// Paint draws images onto a caller-owned surface using a geometry already
// computed (and scaled) for them. Nothing is touched when images is empty.
func (r *Renderer) Paint(dc *gg.Context, images []image.Image, g *Geometry, s settings.CanvasSettings, opts RenderOptions) error {
	if len(images) == 0 {
		return nil
	}
	if g == nil || len(g.Images) != len(images) {
		return fmt.Errorf("geometry does not match %d images", len(images))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paint(dc, images, g, s.Clone(), opts)
}

// Preview renders at scale 1 with the preview frame.
func (r *Renderer) Preview(images []image.Image, s settings.CanvasSettings, theme settings.Theme) (*Result, error) {
	return r.Render(images, s, RenderOptions{
		Scale:        1,
		PreviewFrame: true,
		Theme:        theme,
		ReferenceCap: PreviewReferenceCap,
	})
}

// Export renders the preview layout at the export scale, without the frame.
func (r *Renderer) Export(images []image.Image, s settings.CanvasSettings, theme settings.Theme) (*Result, error) {
	logical, ok := r.Layout(SizesOf(images), s, PreviewReferenceCap)
	if !ok {
		return nil, nil
	}
	return r.Render(images, s, RenderOptions{
		Scale:        ExportScale(logical.Width, logical.Height),
		Theme:        theme,
		ReferenceCap: PreviewReferenceCap,
	})
}

func (r *Renderer) paint(dc *gg.Context, images []image.Image, g *Geometry, s settings.CanvasSettings, opts RenderOptions) error {
	p := &painter{
		dc:    dc,
		g:     g,
		s:     s,
		opts:  opts,
		fonts: r.fonts,
		log:   r.log,
	}

	p.background()
	p.pattern()
	p.border()
	p.previewFrame()

	if err := p.title(); err != nil {
		return fmt.Errorf("draw title: %w", err)
	}
	for i, img := range images {
		if err := p.image(i, img); err != nil {
			return fmt.Errorf("draw image %d: %w", i, err)
		}
	}
	if err := p.watermark(); err != nil {
		return fmt.Errorf("draw watermark: %w", err)
	}
	return nil
}
