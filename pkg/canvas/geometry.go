// geometry.go - Layout math for one render pass at scale 1.
// Everything here is pure: the same sizes and settings always yield the same
// Geometry, and nothing is drawn.
package canvas

import (
	"image"
	"math"

	"github.com/xob0t/GoCompare/pkg/settings"
)

// Layout constants at scale 1.
const (
	PreviewReferenceCap = 800  // reference dimension cap for interactive previews
	MaxImageDimension   = 4000 // reference dimension cap for native-resolution exports
	BottomReserve       = 60   // fixed space added below the bottom padding
	MinWatermarkSize    = 16
	TitleGradientHalf   = 200 // half width of the title gradient span
	LabelGradientRatio  = 0.8 // label gradient span as a fraction of image width
	labelBaselineRatio  = 0.8 // baseline offset below the label box top, in font sizes
)

// Size is the intrinsic pixel size of a source image.
type Size struct {
	Width, Height int
}

// SizeOf returns the pixel size of img.
func SizeOf(img image.Image) Size {
	b := img.Bounds()
	return Size{Width: b.Dx(), Height: b.Dy()}
}

// SizesOf returns the sizes of imgs in order.
func SizesOf(imgs []image.Image) []Size {
	sizes := make([]Size, len(imgs))
	for i, img := range imgs {
		sizes[i] = SizeOf(img)
	}
	return sizes
}

// aspect returns width/height, treating empty dimensions as one pixel.
func (s Size) aspect() float64 {
	return float64(max(s.Width, 1)) / float64(max(s.Height, 1))
}

// Rect is an axis-aligned rectangle in canvas pixels.
type Rect struct {
	X, Y, W, H float64
}

// Insets are per-edge distances in canvas pixels.
type Insets struct {
	Top, Right, Bottom, Left float64
}

// Label is the resolved position of one image label.
type Label struct {
	Text       string
	X          float64 // horizontal centre
	Baseline   float64
	FontSize   float64
	GradientX0 float64
	GradientX1 float64
}

// Placement is where one image and its label go.
type Placement struct {
	Rect  Rect
	Label Label
}

// Title is the resolved title position. Text is empty when no title is drawn.
type Title struct {
	Text       string
	X          float64
	Baseline   float64
	FontSize   float64
	GradientX0 float64
	GradientX1 float64
}

// Geometry holds every size and position of a render pass.
type Geometry struct {
	Scale     float64
	Direction settings.LayoutDirection

	Width, Height float64
	Reference     float64 // shared image height (horizontal) or width (vertical)
	Padding       Insets
	Gap           float64 // space between consecutive images

	TitleBlock float64
	LabelBlock float64 // height reserved for one label
	LabelGap   float64 // distance between a label and its image

	Title       Title
	Images      []Placement
	ImageRadius float64

	ShadowBlur    float64
	ShadowOffsetY float64

	PatternSpacing float64
	PatternSize    float64

	BorderRect   Rect
	BorderWidth  float64
	BorderRadius float64

	WatermarkSize float64
	WatermarkX    float64 // right edge of the watermark text
	WatermarkY    float64 // baseline
}

// LayoutOptions tune the calculator. The zero value is the preview layout
// with the default strategies.
type LayoutOptions struct {
	ReferenceCap   float64
	TitleSizer     settings.TitleSizer
	PatternDensity settings.PatternDensity
}

func (o LayoutOptions) withDefaults() LayoutOptions {
	if o.ReferenceCap <= 0 {
		o.ReferenceCap = PreviewReferenceCap
	}
	if o.TitleSizer == nil {
		o.TitleSizer = settings.DefaultTitleSizer
	}
	if o.PatternDensity == nil {
		o.PatternDensity = settings.DefaultPatternDensity
	}
	return o
}

// Calculate lays out sizes according to s at scale 1. It reports false, and
// returns no geometry, when sizes is empty.
func Calculate(sizes []Size, s settings.CanvasSettings, opts LayoutOptions) (*Geometry, bool) {
	if len(sizes) == 0 {
		return nil, false
	}
	opts = opts.withDefaults()
	vertical := s.LayoutDirection == settings.Vertical

	ref := 0.0
	for _, sz := range sizes {
		if vertical {
			ref = math.Max(ref, float64(max(sz.Width, 1)))
		} else {
			ref = math.Max(ref, float64(max(sz.Height, 1)))
		}
	}
	ref = math.Min(ref, opts.ReferenceCap)

	pct := func(p float64) float64 { return math.Round(math.Max(p, 0) / 100 * ref) }

	g := &Geometry{
		Scale:     1,
		Direction: s.LayoutDirection,
		Reference: ref,
		Padding: Insets{
			Top:    pct(s.Padding.Top),
			Right:  pct(s.Padding.Right),
			Bottom: pct(s.Padding.Bottom) + BottomReserve,
			Left:   pct(s.Padding.Left),
		},
		LabelGap:      s.Text.LetterSpacing / 300 * 0.5 * ref,
		ImageRadius:   math.Max(s.BorderRadius, 0),
		ShadowBlur:    math.Max(s.ShadowIntensity, 0),
		ShadowOffsetY: math.Max(s.ShadowIntensity, 0) / 2,
	}
	g.LabelBlock = math.Max(s.Text.FontSize, ref*0.1)*1.2 + g.LabelGap
	// The vertical gap carries the bottom reserve like the bottom edge does.
	if vertical {
		g.Gap = g.Padding.Bottom
	} else {
		g.Gap = g.Padding.Right
	}

	// Draw sizes, sharing the reference dimension.
	draw := make([]Rect, len(sizes))
	for i, sz := range sizes {
		if vertical {
			draw[i] = Rect{W: ref, H: ref / sz.aspect()}
		} else {
			draw[i] = Rect{W: ref * sz.aspect(), H: ref}
		}
	}

	if vertical {
		g.Width = ref + g.Padding.Left + g.Padding.Right
	} else {
		sum := 0.0
		for _, r := range draw {
			sum += r.W
		}
		g.Width = sum + g.Padding.Left + g.Padding.Right + float64(len(sizes)-1)*g.Gap
	}

	if s.Title.Text != "" {
		size := opts.TitleSizer.TitleSize(g.Width, s.Title.FontSize)
		g.TitleBlock = size + s.Title.TopSpacing + s.Title.BottomSpacing
		g.Title = Title{
			Text:       s.Title.Text,
			X:          g.Width / 2,
			Baseline:   g.Padding.Top + s.Title.TopSpacing,
			FontSize:   size,
			GradientX0: g.Width/2 - TitleGradientHalf,
			GradientX1: g.Width/2 + TitleGradientHalf,
		}
	}

	labelTop := s.TextPosition == settings.TextTop
	g.Images = make([]Placement, len(sizes))

	if vertical {
		y := g.Padding.Top + g.TitleBlock
		for i, r := range draw {
			if labelTop {
				y += g.LabelBlock
			}
			r.X, r.Y = g.Padding.Left, y
			g.Images[i] = Placement{Rect: r, Label: g.label(i, r, s)}
			y += r.H
			if !labelTop {
				y += g.LabelBlock
			}
			if i < len(draw)-1 {
				y += g.Gap
			}
		}
		g.Height = y + g.Padding.Bottom
	} else {
		y := g.Padding.Top + g.TitleBlock
		if labelTop {
			y += g.LabelBlock
		}
		x := g.Padding.Left
		for i, r := range draw {
			r.X, r.Y = x, y
			g.Images[i] = Placement{Rect: r, Label: g.label(i, r, s)}
			x += r.W + g.Gap
		}
		g.Height = ref + g.Padding.Top + g.Padding.Bottom + g.TitleBlock + g.LabelBlock
	}

	g.PatternSpacing, g.PatternSize = opts.PatternDensity.Density(g.Width, g.Height, s.Pattern.Spacing, s.Pattern.Size)

	inset := s.Border.Padding
	g.BorderRect = Rect{X: inset, Y: inset, W: g.Width - 2*inset, H: g.Height - 2*inset}
	g.BorderWidth = s.Border.Width
	g.BorderRadius = math.Max(s.Border.BorderRadius, 0)

	g.WatermarkSize = math.Max(MinWatermarkSize, math.Round(math.Min(g.Width, g.Height)*s.WatermarkSize/1000))
	g.WatermarkX = g.Width - g.WatermarkSize
	g.WatermarkY = g.Height - g.WatermarkSize

	return g, true
}

// label positions the label of image i drawn in r.
func (g *Geometry) label(i int, r Rect, s settings.CanvasSettings) Label {
	base := s.Text.FontSize
	size := math.Min(math.Max(base, r.W*0.15), base*1.5)

	l := Label{
		Text:       s.Text.Letter(i),
		X:          r.X + r.W/2,
		FontSize:   size,
		GradientX0: r.X + r.W/2 - r.W*LabelGradientRatio/2,
		GradientX1: r.X + r.W/2 + r.W*LabelGradientRatio/2,
	}
	if s.TextPosition == settings.TextTop {
		l.Baseline = r.Y - g.LabelGap
	} else {
		l.Baseline = r.Y + r.H + g.LabelGap + size*labelBaselineRatio
	}
	return l
}
