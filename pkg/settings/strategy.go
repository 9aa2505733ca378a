// strategy.go - Pluggable presentation scaling policies.
package settings

import "math"

// TitleSizer maps the canvas width and the configured title size to the
// size actually drawn. Implementations must be pure.
type TitleSizer interface {
	TitleSize(canvasWidth, baseSize float64) float64
}

// PatternDensity maps the canvas size and the configured pattern spacing and
// dot/line size to the values actually drawn. Implementations must be pure.
type PatternDensity interface {
	Density(canvasWidth, canvasHeight, baseSpacing, baseSize float64) (spacing, size float64)
}

// LinearTitleSizer grows the title with the canvas width: never below the
// base size, never above MaxMultiplier times it.
type LinearTitleSizer struct {
	WidthFactor   float64 // fraction of the canvas width
	MaxMultiplier float64
}

// DefaultTitleSizer is min(max(base, width*0.03), base*2).
var DefaultTitleSizer TitleSizer = LinearTitleSizer{WidthFactor: 0.03, MaxMultiplier: 2}

func (s LinearTitleSizer) TitleSize(canvasWidth, baseSize float64) float64 {
	return math.Min(math.Max(baseSize, canvasWidth*s.WidthFactor), baseSize*s.MaxMultiplier)
}

// ThresholdDensity keeps pattern density fixed until the longer canvas side
// exceeds Threshold pixels, then scales spacing and size proportionally.
type ThresholdDensity struct {
	Threshold float64
}

// DefaultPatternDensity anchors density at 2000 px on the longer side.
var DefaultPatternDensity PatternDensity = ThresholdDensity{Threshold: 2000}

func (d ThresholdDensity) Density(canvasWidth, canvasHeight, baseSpacing, baseSize float64) (float64, float64) {
	factor := 1.0
	if longest := math.Max(canvasWidth, canvasHeight); d.Threshold > 0 && longest > d.Threshold {
		factor = longest / d.Threshold
	}
	return baseSpacing * factor, baseSize * factor
}
