// layers.go - Individual canvas layers.
package canvas

import (
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/xob0t/GoCompare/pkg/settings"
)

// WatermarkText is the literal watermark string.
const WatermarkText = "which-choice.com"

var (
	fallbackLight   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	fallbackDark    = color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}
	patternFallback = color.NRGBA{R: 51, G: 51, B: 51, A: 128}
	shadowShapeDark = color.NRGBA{R: 0x2c, G: 0x2c, B: 0x2c, A: 0xff}
)

// painter carries the state of one paint pass.
type painter struct {
	dc    *gg.Context
	g     *Geometry
	s     settings.CanvasSettings
	opts  RenderOptions
	fonts *FontManager
	log   *slog.Logger
}

func (p *painter) dark() bool { return p.opts.Theme.IsDark() }

func (p *painter) surface() (float64, float64) {
	return float64(p.dc.Width()), float64(p.dc.Height())
}

// ── Background ──

func (p *painter) background() {
	w, h := p.surface()
	if p.s.UseCustomBackground {
		p.dc.SetFillStyle(p.customFill(w, h))
	} else {
		p.dc.SetFillStyle(p.presetFill(w, h))
	}
	p.dc.DrawRectangle(0, 0, w, h)
	p.dc.Fill()
}

func (p *painter) presetFill(w, h float64) gg.Pattern {
	fallback := fallbackLight
	if p.dark() {
		fallback = fallbackDark
	}

	preset, ok := settings.FindPreset(p.s.Background)
	if !ok {
		p.log.Warn("unknown background preset, using plain fill", "background", p.s.Background)
		return gg.NewSolidPattern(fallback)
	}

	colors := preset.FillFor(p.opts.Theme)
	if !preset.IsGradient() || len(colors) < 2 {
		if len(colors) == 0 {
			return gg.NewSolidPattern(fallback)
		}
		return gg.NewSolidPattern(ParseColorOr(colors[0], fallback))
	}

	grad := gg.NewLinearGradient(0, 0, w, h)
	last := float64(len(colors) - 1)
	for i, c := range colors {
		grad.AddColorStop(float64(i)/last, ParseColorOr(c, fallback))
	}
	return grad
}

func (p *painter) customFill(w, h float64) gg.Pattern {
	cb := p.s.CustomBackground
	c1 := ParseColorOr(cb.Color1, fallbackLight)
	if cb.Type != settings.BackgroundGradient || cb.Color2 == "" {
		return gg.NewSolidPattern(c1)
	}

	// The axis passes through the centre; its ends touch the bounding box.
	a := cb.GradientAngle * math.Pi / 180
	dx, dy := 0.5*math.Cos(a), 0.5*math.Sin(a)
	grad := gg.NewLinearGradient((0.5-dx)*w, (0.5-dy)*h, (0.5+dx)*w, (0.5+dy)*h)
	grad.AddColorStop(0, c1)
	grad.AddColorStop(1, ParseColorOr(cb.Color2, c1))
	return grad
}

// ── Pattern ──

// MaxPatternCells bounds the number of grid cells one pattern pass may tile.
// The cell count is scale invariant, so previews and exports coarsen alike.
const MaxPatternCells = 10000

// patternStep returns the tiling step for a w x h surface. It never drops
// below twice the mark size or two logical pixels, and is widened until the
// surface holds at most MaxPatternCells cells.
func (p *painter) patternStep(w, h, size float64) float64 {
	step := max(p.g.PatternSpacing, 2*size, 2*p.g.Scale)
	if cells := (w / step) * (h / step); cells > MaxPatternCells {
		coarse := math.Sqrt(w * h / MaxPatternCells)
		p.log.Warn("pattern too dense, coarsening",
			"spacing", p.g.PatternSpacing,
			"step", coarse,
		)
		step = coarse
	}
	return step
}

func (p *painter) pattern() {
	ps := p.s.Pattern
	if !ps.Show || ps.Type == settings.PatternNone {
		return
	}
	if ps.Spacing <= 0 || p.g.PatternSpacing <= 0 {
		p.log.Debug("pattern skipped: non-positive spacing", "spacing", ps.Spacing)
		return
	}

	size := p.g.PatternSize
	if size <= 0 {
		return
	}
	w, h := p.surface()
	step := p.patternStep(w, h, size)
	dc := p.dc
	dc.SetColor(ParseColorOr(ps.Color, patternFallback))
	dc.SetLineWidth(size)

	switch ps.Type {
	case settings.PatternGrid:
		for x := step; x < w; x += step {
			dc.MoveTo(x, 0)
			dc.LineTo(x, h)
		}
		for y := step; y < h; y += step {
			dc.MoveTo(0, y)
			dc.LineTo(w, y)
		}
		dc.Stroke()
	case settings.PatternDots:
		// One fill per column keeps each path short.
		for x := step; x < w; x += step {
			for y := step; y < h; y += step {
				dc.DrawCircle(x, y, size)
			}
			dc.Fill()
		}
	case settings.PatternLines:
		for y := step; y < h; y += step {
			dc.MoveTo(0, y)
			dc.LineTo(w, y)
		}
		dc.Stroke()
	default:
		p.log.Warn("unknown pattern type", "type", ps.Type)
	}
}

// ── Frames ──

func (p *painter) border() {
	if !p.s.Border.Show || p.g.BorderWidth <= 0 {
		return
	}
	r := p.g.BorderRect
	if r.W <= 0 || r.H <= 0 {
		return
	}
	p.dc.SetColor(ParseColorOr(p.s.Border.Color, fallbackLight))
	p.dc.SetLineWidth(p.g.BorderWidth)
	roundedRect(p.dc, r, p.g.BorderRadius)
	p.dc.Stroke()
}

// previewFrame outlines the canvas edge. Its width does not scale.
func (p *painter) previewFrame() {
	if !p.opts.PreviewFrame {
		return
	}
	c := color.NRGBA{A: 26}
	if p.dark() {
		c = color.NRGBA{R: 255, G: 255, B: 255, A: 26}
	}
	w, h := p.surface()
	p.dc.SetColor(c)
	p.dc.SetLineWidth(2)
	p.dc.DrawRectangle(0, 0, w, h)
	p.dc.Stroke()
}

// ── Text layers ──

func (p *painter) title() error {
	t := p.g.Title
	if t.Text == "" {
		return nil
	}
	face, err := p.fonts.Face(t.FontSize)
	if err != nil {
		return err
	}
	from, to := p.textColors(p.s.Title.Color, p.s.Title.GradientColor)
	return drawText(p.dc, face, t.Text, t.X, t.Baseline, 0.5, textPaint{
		From:     from,
		To:       to,
		Gradient: p.s.Title.UseGradient,
		X0:       t.GradientX0,
		X1:       t.GradientX1,
	})
}

func (p *painter) label(i int) error {
	l := p.g.Images[i].Label
	face, err := p.fonts.Face(l.FontSize)
	if err != nil {
		return err
	}
	fromHex, toHex, gradient := p.s.Text.LabelPaint(i)
	from, to := p.textColors(fromHex, toHex)
	return drawText(p.dc, face, l.Text, l.X, l.Baseline, 0.5, textPaint{
		From:     from,
		To:       to,
		Gradient: gradient,
		X0:       l.GradientX0,
		X1:       l.GradientX1,
	})
}

// textColors parses a solid/gradient colour pair, falling back to the theme
// text colours.
func (p *painter) textColors(from, to string) (color.NRGBA, color.NRGBA) {
	defFrom, defTo := settings.TextColors(p.opts.Theme)
	f := ParseColorOr(from, ParseColorOr(defFrom, color.NRGBA{A: 255}))
	return f, ParseColorOr(to, ParseColorOr(defTo, f))
}

func (p *painter) watermark() error {
	if !p.s.ShowWatermark {
		return nil
	}
	size := p.g.WatermarkSize
	face, err := p.fonts.Face(size)
	if err != nil {
		return err
	}

	opacity := min(max(p.s.WatermarkOpacity, 0), 1)
	fill, stroke := color.NRGBA{A: 255}, color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if p.dark() {
		fill, stroke = stroke, fill
	}

	x, y := p.g.WatermarkX, p.g.WatermarkY
	if err := drawOutline(p.dc, face, WatermarkText, x, y, 1, size/16, WithAlpha(stroke, opacity/2)); err != nil {
		return err
	}
	return drawText(p.dc, face, WatermarkText, x, y, 1, solidPaint(WithAlpha(fill, opacity)))
}

// ── Images ──

func (p *painter) image(i int, img image.Image) error {
	r := p.g.Images[i].Rect
	if p.s.ShowShadow {
		p.shadow(r)
	}
	p.picture(img, r)
	return p.label(i)
}

// shadow paints a blurred, offset copy of the image shape, then the shape
// itself so transparent images sit on a solid card.
func (p *painter) shadow(r Rect) {
	intensity := math.Max(p.s.ShadowIntensity, 0)
	alpha := intensity / 100
	shape := fallbackLight
	if p.dark() {
		alpha = intensity / 50
		shape = shadowShapeDark
	}

	blur := p.g.ShadowBlur
	margin := math.Ceil(blur * 2)
	ox := math.Floor(r.X - margin)
	oy := math.Floor(r.Y + p.g.ShadowOffsetY - margin)
	w := int(math.Ceil(r.W+2*margin)) + 1
	h := int(math.Ceil(r.H+2*margin)) + 1

	patch := gg.NewContext(w, h)
	patch.SetColor(WithAlpha(color.NRGBA{A: 255}, alpha))
	roundedRect(patch, Rect{X: r.X - ox, Y: r.Y + p.g.ShadowOffsetY - oy, W: r.W, H: r.H}, p.g.ImageRadius)
	patch.Fill()

	var shadow image.Image = patch.Image()
	if blur > 0 {
		shadow = imaging.Blur(shadow, blur/2)
	}
	p.dc.DrawImage(shadow, int(ox), int(oy))

	p.dc.SetColor(shape)
	roundedRect(p.dc, r, p.g.ImageRadius)
	p.dc.Fill()
}

// picture resamples img into r, clipped to the rounded corners.
func (p *painter) picture(img image.Image, r Rect) {
	x, y := int(math.Round(r.X)), int(math.Round(r.Y))
	w, h := int(math.Round(r.W)), int(math.Round(r.H))
	if w < 1 || h < 1 {
		return
	}

	resized := imaging.Resize(img, w, h, imaging.Lanczos)
	if p.g.ImageRadius > 0 {
		roundedRect(p.dc, Rect{X: float64(x), Y: float64(y), W: float64(w), H: float64(h)}, p.g.ImageRadius)
		p.dc.Clip()
		defer p.dc.ResetClip()
	}
	p.dc.DrawImage(resized, x, y)
}

// roundedRect adds r to the current path, with the radius limited to half
// the shorter side.
func roundedRect(dc *gg.Context, r Rect, radius float64) {
	radius = math.Min(radius, math.Min(r.W, r.H)/2)
	if radius <= 0 {
		dc.DrawRectangle(r.X, r.Y, r.W, r.H)
		return
	}
	dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, radius)
}
