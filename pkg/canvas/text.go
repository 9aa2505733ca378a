// text.go - Text drawing with solid or gradient fills.
// gg draws glyphs with a single colour, so every string is rasterised into an
// alpha mask first and the mask is then filled with the paint.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// textPaint is a solid colour or a horizontal two-stop gradient from X0 to X1.
type textPaint struct {
	From, To color.NRGBA
	Gradient bool
	X0, X1   float64
}

func solidPaint(c color.NRGBA) textPaint {
	return textPaint{From: c}
}

// pattern returns the fill expressed in the coordinates of a patch whose
// top-left corner sits at origin on the canvas.
func (tp textPaint) pattern(origin image.Point) gg.Pattern {
	if !tp.Gradient || math.Abs(tp.X1-tp.X0) < 1e-6 {
		return gg.NewSolidPattern(tp.From)
	}
	ox := float64(origin.X)
	grad := gg.NewLinearGradient(tp.X0-ox, 0, tp.X1-ox, 0)
	grad.AddColorStop(0, tp.From)
	grad.AddColorStop(1, tp.To)
	return grad
}

// drawText draws s with its baseline at y. ax anchors x horizontally:
// 0 left, 0.5 centre, 1 right.
func drawText(dc *gg.Context, face font.Face, s string, x, y, ax float64, paint textPaint) error {
	mask, origin := textMask(face, s, x, y, ax, 0)
	return fillMask(dc, mask, origin, paint.pattern(origin))
}

// drawOutline draws a halo of the given radius around s.
func drawOutline(dc *gg.Context, face font.Face, s string, x, y, ax, radius float64, c color.NRGBA) error {
	mask, origin := textMask(face, s, x, y, ax, radius)
	return fillMask(dc, mask, origin, gg.NewSolidPattern(c))
}

// textMask rasterises s into an alpha mask covering its ink, repeating the
// glyphs around a circle of radius spread. origin is the mask's top-left
// corner on the canvas.
func textMask(face font.Face, s string, x, y, ax, spread float64) (*image.Alpha, image.Point) {
	advance := float64(font.MeasureString(face, s)) / 64
	m := face.Metrics()
	ascent := float64(m.Ascent.Ceil())
	descent := float64(m.Descent.Ceil())
	pad := math.Ceil(spread) + math.Ceil(ascent*0.25) + 1

	left := x - ax*advance
	ox := math.Floor(left - pad)
	oy := math.Floor(y - ascent - pad)
	w := int(math.Ceil(left+advance+pad-ox)) + 1
	h := int(math.Ceil(y+descent+pad-oy)) + 1

	patch := gg.NewContext(w, h)
	patch.SetFontFace(face)
	patch.SetColor(color.White)
	for _, o := range spreadOffsets(spread) {
		patch.DrawString(s, left-ox+o.X, y-oy+o.Y)
	}
	return patch.AsMask(), image.Pt(int(ox), int(oy))
}

// spreadOffsets returns the eight compass offsets at radius r, or the origin
// when r is not positive.
func spreadOffsets(r float64) []gg.Point {
	if r <= 0 {
		return []gg.Point{{}}
	}
	offsets := make([]gg.Point, 0, 8)
	for k := range 8 {
		a := float64(k) * math.Pi / 4
		offsets = append(offsets, gg.Point{X: r * math.Cos(a), Y: r * math.Sin(a)})
	}
	return offsets
}

// fillMask paints pattern through mask onto dc at origin.
func fillMask(dc *gg.Context, mask *image.Alpha, origin image.Point, pattern gg.Pattern) error {
	b := mask.Bounds()
	patch := gg.NewContext(b.Dx(), b.Dy())
	if err := patch.SetMask(mask); err != nil {
		return fmt.Errorf("text mask: %w", err)
	}
	patch.SetFillStyle(pattern)
	patch.DrawRectangle(0, 0, float64(b.Dx()), float64(b.Dy()))
	patch.Fill()
	dc.DrawImage(patch.Image(), origin.X, origin.Y)
	return nil
}
