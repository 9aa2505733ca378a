// validator.go - Range checks for settings.
package settings

import (
	"fmt"
	"math"
)

// Validate reports out-of-range or unknown values. Returns warnings
// (never fatal errors); Normalize fixes what Validate reports.
func Validate(s CanvasSettings) []string {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	if !s.UseCustomBackground {
		if _, ok := FindPreset(s.Background); !ok {
			warn("unknown background preset %q: using %q", s.Background, DefaultBackground)
		}
	}
	switch s.CustomBackground.Type {
	case BackgroundSolid, BackgroundGradient, "":
	default:
		warn("unknown custom background type %q: using solid", s.CustomBackground.Type)
	}

	switch s.LayoutDirection {
	case Horizontal, Vertical:
	default:
		warn("unknown layout direction %q: using horizontal", s.LayoutDirection)
	}
	switch s.TextPosition {
	case TextTop, TextBottom:
	default:
		warn("unknown text position %q: using bottom", s.TextPosition)
	}

	sides := []struct {
		name string
		v    float64
	}{
		{"padding.top", s.Padding.Top},
		{"padding.right", s.Padding.Right},
		{"padding.bottom", s.Padding.Bottom},
		{"padding.left", s.Padding.Left},
	}
	for _, side := range sides {
		if side.v < 0 {
			warn("%s is negative (%g): clamped to 0", side.name, side.v)
		}
	}

	if s.BorderRadius < 0 {
		warn("borderRadius is negative (%g): clamped to 0", s.BorderRadius)
	}
	if s.ShowShadow && s.ShadowIntensity < 0 {
		warn("shadowIntensity is negative (%g): clamped to 0", s.ShadowIntensity)
	}
	if s.Text.FontSize <= 0 {
		warn("text.fontSize must be positive (%g)", s.Text.FontSize)
	}
	if s.Title.Text != "" && s.Title.FontSize <= 0 {
		warn("title.fontSize must be positive (%g)", s.Title.FontSize)
	}

	switch s.Pattern.Type {
	case PatternGrid, PatternDots, PatternLines, PatternNone:
	default:
		warn("unknown pattern type %q: pattern disabled", s.Pattern.Type)
	}
	if s.Pattern.Show && s.Pattern.Type != PatternNone && s.Pattern.Spacing <= 0 {
		warn("pattern.spacing must be positive (%g): pattern skipped", s.Pattern.Spacing)
	}

	if s.WatermarkOpacity < 0 || s.WatermarkOpacity > 1 {
		warn("watermarkOpacity %g outside [0,1]: clamped", s.WatermarkOpacity)
	}
	if s.ExportQuality <= 0 || s.ExportQuality > 1 {
		warn("exportQuality %g outside (0,1]: clamped", s.ExportQuality)
	}

	return warnings
}

// Normalize returns a copy of s with every value Validate complains about
// replaced by its nearest acceptable value.
func Normalize(s CanvasSettings) CanvasSettings {
	out := s.Clone()
	def := Default(ThemeLight)

	if !out.UseCustomBackground {
		if _, ok := FindPreset(out.Background); !ok {
			out.Background = DefaultBackground
		}
	}
	if out.CustomBackground.Type != BackgroundGradient {
		out.CustomBackground.Type = BackgroundSolid
	}
	if out.LayoutDirection != Vertical {
		out.LayoutDirection = Horizontal
	}
	if out.TextPosition != TextTop {
		out.TextPosition = TextBottom
	}

	out.Padding.Top = math.Max(out.Padding.Top, 0)
	out.Padding.Right = math.Max(out.Padding.Right, 0)
	out.Padding.Bottom = math.Max(out.Padding.Bottom, 0)
	out.Padding.Left = math.Max(out.Padding.Left, 0)
	out.BorderRadius = math.Max(out.BorderRadius, 0)
	out.ShadowIntensity = math.Max(out.ShadowIntensity, 0)

	if out.Text.FontSize <= 0 {
		out.Text.FontSize = def.Text.FontSize
	}
	if out.Title.FontSize <= 0 {
		out.Title.FontSize = def.Title.FontSize
	}

	switch out.Pattern.Type {
	case PatternGrid, PatternDots, PatternLines, PatternNone:
	default:
		out.Pattern.Type = PatternNone
	}

	out.WatermarkOpacity = min(max(out.WatermarkOpacity, 0), 1)
	if out.ExportQuality <= 0 {
		out.ExportQuality = def.ExportQuality
	}
	out.ExportQuality = min(out.ExportQuality, 1)

	return out
}
