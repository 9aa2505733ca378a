// Package settings holds the canvas configuration snapshot consumed by every render.
package settings

// ── Enumerations ──

// LayoutDirection selects how images are arranged on the canvas.
type LayoutDirection string

const (
	Horizontal LayoutDirection = "horizontal" // left to right, shared height
	Vertical   LayoutDirection = "vertical"   // top to bottom, shared width
)

// TextPosition places each label relative to its image.
type TextPosition string

const (
	TextTop    TextPosition = "top"
	TextBottom TextPosition = "bottom"
)

// PatternType selects the decorative background pattern.
type PatternType string

const (
	PatternGrid  PatternType = "grid"
	PatternDots  PatternType = "dots"
	PatternLines PatternType = "lines"
	PatternNone  PatternType = "none"
)

// BackgroundType selects the custom background fill.
type BackgroundType string

const (
	BackgroundSolid    BackgroundType = "solid"
	BackgroundGradient BackgroundType = "gradient"
)

// Theme is the presentation mode of the host.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps a host theme string to a Theme. Anything other than "dark" is light.
func ParseTheme(s string) Theme {
	if s == string(ThemeDark) {
		return ThemeDark
	}
	return ThemeLight
}

// IsDark reports whether t is the dark theme.
func (t Theme) IsDark() bool { return t == ThemeDark }

// ── Settings ──

// CanvasSettings is the full style and layout configuration of one render.
// It is a value type: hosts derive new snapshots with Update instead of
// mutating one that a render may still be reading.
type CanvasSettings struct {
	Revision int `json:"revision"`

	Background          string           `json:"background"` // preset value, e.g. "bg-gradient-blue"
	CustomBackground    CustomBackground `json:"customBackground"`
	UseCustomBackground bool             `json:"useCustomBackground"`

	LayoutDirection LayoutDirection `json:"layoutDirection"`
	TextPosition    TextPosition    `json:"textPosition"`
	Padding         Padding         `json:"padding"`

	ShowShadow      bool    `json:"showShadow"`
	ShadowIntensity float64 `json:"shadowIntensity"` // 10–50
	BorderRadius    float64 `json:"borderRadius"`    // px at scale 1

	Text    TextSettings    `json:"text"`
	Title   TitleSettings   `json:"title"`
	Pattern PatternSettings `json:"pattern"`
	Border  BorderSettings  `json:"border"`

	ShowWatermark    bool    `json:"showWatermark"`
	WatermarkSize    float64 `json:"watermarkSize"`
	WatermarkOpacity float64 `json:"watermarkOpacity"`
	ExportQuality    float64 `json:"exportQuality"` // (0,1]; 1 means lossless
}

// CustomBackground is a user-defined solid colour or two-colour gradient.
type CustomBackground struct {
	Type          BackgroundType `json:"type"`
	Color1        string         `json:"color1"`
	Color2        string         `json:"color2,omitempty"`
	GradientAngle float64        `json:"gradientAngle"` // degrees
}

// Padding holds percentages (0–100) of the reference dimension.
type Padding struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// TextSettings styles the per-image labels.
type TextSettings struct {
	FontSize      float64             `json:"fontSize"`
	LetterSpacing float64             `json:"letterSpacing"`
	Letters       []string            `json:"letters,omitempty"`
	Color         string              `json:"color"`
	GradientColor string              `json:"gradientColor"`
	UseGradient   bool                `json:"useGradient"`
	LetterColors  map[int]LetterColor `json:"letterColors,omitempty"`
}

// LetterColor overrides the label colour of a single image index.
// A nil UseGradient inherits TextSettings.UseGradient.
type LetterColor struct {
	Color         string `json:"color"`
	GradientColor string `json:"gradientColor,omitempty"`
	UseGradient   *bool  `json:"useGradient,omitempty"`
}

// TitleSettings styles the optional canvas title.
type TitleSettings struct {
	Text          string  `json:"text"`
	FontSize      float64 `json:"fontSize"`
	Color         string  `json:"color"`
	GradientColor string  `json:"gradientColor"`
	UseGradient   bool    `json:"useGradient"`
	TopSpacing    float64 `json:"topSpacing"`
	BottomSpacing float64 `json:"bottomSpacing"`
}

// PatternSettings configures the decorative background pattern.
type PatternSettings struct {
	Show    bool        `json:"show"`
	Type    PatternType `json:"type"`
	Color   string      `json:"color"`
	Spacing float64     `json:"spacing"`
	Size    float64     `json:"size"`
}

// BorderSettings configures the inset decorative frame.
type BorderSettings struct {
	Show         bool    `json:"show"`
	Width        float64 `json:"width"`
	Color        string  `json:"color"`
	Padding      float64 `json:"padding"`
	BorderRadius float64 `json:"borderRadius"`
}

// Letter returns the label text for image index i, falling back to the
// sequential alphabet letter when no explicit letter is configured.
func (t TextSettings) Letter(i int) string {
	if i < len(t.Letters) && t.Letters[i] != "" {
		return t.Letters[i]
	}
	return string(rune('A' + i))
}

// LabelPaint resolves the colours of label i. Per-index overrides win over
// the global text colours; gradient is on if the override says so, or, when
// the override leaves it unset, if the global flag is on.
func (t TextSettings) LabelPaint(i int) (from, to string, gradient bool) {
	from, to, gradient = t.Color, t.GradientColor, t.UseGradient
	lc, ok := t.LetterColors[i]
	if !ok {
		return from, to, gradient
	}
	if lc.Color != "" {
		from = lc.Color
	}
	if lc.GradientColor != "" {
		to = lc.GradientColor
	}
	if lc.UseGradient != nil {
		gradient = *lc.UseGradient
	}
	return from, to, gradient
}
