// scale.go - Scale handling for preview and export surfaces.
package canvas

import (
	"math"
	"slices"
)

// Export scale bounds. The export scale targets ExportTargetDimension pixels
// on the longer canvas side.
const (
	ExportTargetDimension = 3000
	MinExportScale        = 2
	MaxExportScale        = 4
	MaxSurfaceDimension   = 16384
)

// ExportScale returns the scale factor for a high-resolution export of a
// canvas whose scale-1 size is width x height.
func ExportScale(width, height float64) float64 {
	longest := math.Max(width, height)
	if longest <= 0 {
		return MinExportScale
	}
	return min(max(ExportTargetDimension/longest, MinExportScale), MaxExportScale)
}

// Scaled returns a copy of g with every length multiplied by k.
func (g *Geometry) Scaled(k float64) *Geometry {
	s := *g
	s.Scale = g.Scale * k

	s.Width *= k
	s.Height *= k
	s.Reference *= k
	s.Padding = Insets{
		Top:    g.Padding.Top * k,
		Right:  g.Padding.Right * k,
		Bottom: g.Padding.Bottom * k,
		Left:   g.Padding.Left * k,
	}
	s.Gap *= k

	s.TitleBlock *= k
	s.LabelBlock *= k
	s.LabelGap *= k

	s.Title.X *= k
	s.Title.Baseline *= k
	s.Title.FontSize *= k
	s.Title.GradientX0 *= k
	s.Title.GradientX1 *= k

	s.Images = slices.Clone(g.Images)
	for i := range s.Images {
		p := &s.Images[i]
		p.Rect = p.Rect.scaled(k)
		p.Label.X *= k
		p.Label.Baseline *= k
		p.Label.FontSize *= k
		p.Label.GradientX0 *= k
		p.Label.GradientX1 *= k
	}
	s.ImageRadius *= k

	s.ShadowBlur *= k
	s.ShadowOffsetY *= k

	s.PatternSpacing *= k
	s.PatternSize *= k

	s.BorderRect = g.BorderRect.scaled(k)
	s.BorderWidth *= k
	s.BorderRadius *= k

	s.WatermarkSize *= k
	s.WatermarkX *= k
	s.WatermarkY *= k

	return &s
}

// PixelSize is the integer surface size for g.
func (g *Geometry) PixelSize() (int, int) {
	return int(math.Round(g.Width)), int(math.Round(g.Height))
}

func (r Rect) scaled(k float64) Rect {
	return Rect{X: r.X * k, Y: r.Y * k, W: r.W * k, H: r.H * k}
}
