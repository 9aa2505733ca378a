// defaults.go - Default settings snapshot.
package settings

// Label and title colour defaults per theme.
const (
	lightTextColor     = "#18181b"
	lightGradientColor = "#52525b"
	darkTextColor      = "#ffffff"
	darkGradientColor  = "#cccccc"
)

// TextColors returns the default solid and gradient text colours for theme.
func TextColors(theme Theme) (color, gradient string) {
	if theme.IsDark() {
		return darkTextColor, darkGradientColor
	}
	return lightTextColor, lightGradientColor
}

// Default returns the initial settings snapshot for theme.
func Default(theme Theme) CanvasSettings {
	textColor, gradientColor := TextColors(theme)

	return CanvasSettings{
		Background: DefaultBackground,
		CustomBackground: CustomBackground{
			Type:          BackgroundSolid,
			Color1:        "#ffffff",
			Color2:        "#f3f4f6",
			GradientAngle: 135,
		},
		LayoutDirection: Horizontal,
		TextPosition:    TextBottom,
		Padding:         Padding{Top: 20, Right: 20, Bottom: 40, Left: 20},

		ShowShadow:      true,
		ShadowIntensity: 24,
		BorderRadius:    36,

		Text: TextSettings{
			FontSize:      88,
			LetterSpacing: 120,
			Color:         textColor,
			GradientColor: gradientColor,
			LetterColors:  map[int]LetterColor{},
		},
		Title: TitleSettings{
			FontSize:      48,
			Color:         textColor,
			GradientColor: gradientColor,
			TopSpacing:    30,
			BottomSpacing: 20,
		},
		Pattern: PatternSettings{
			Type:    PatternGrid,
			Color:   "rgba(51, 51, 51, 0.5)",
			Spacing: 20,
			Size:    1,
		},
		Border: BorderSettings{
			Width:        2,
			Color:        "#ffffff",
			Padding:      20,
			BorderRadius: 36,
		},

		ShowWatermark:    true,
		WatermarkSize:    24,
		WatermarkOpacity: 1,
		ExportQuality:    0.8,
	}
}
