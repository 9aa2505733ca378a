// presets.go - Built-in background catalogue.
package settings

import "strings"

// PresetCatalogVersion changes whenever an entry of Backgrounds is added,
// removed or recoloured.
const PresetCatalogVersion = 1

// Fill is a preset variant: one colour is a solid fill, more are gradient stops.
type Fill []string

// Preset is a named background with light and dark variants.
type Preset struct {
	Label string
	Value string
	Light Fill
	Dark  Fill
}

// IsGradient reports whether the preset paints a linear gradient.
func (p Preset) IsGradient() bool {
	return strings.Contains(p.Value, "gradient")
}

// FillFor returns the variant matching theme.
func (p Preset) FillFor(theme Theme) Fill {
	if theme.IsDark() {
		return p.Dark
	}
	return p.Light
}

// Backgrounds is the static preset catalogue. The last entry is the default.
var Backgrounds = []Preset{
	{Label: "Default", Value: "bg-white", Dark: Fill{"#1e1e1e"}, Light: Fill{"#ffffff"}},
	{Label: "Zinc", Value: "bg-zinc-50", Dark: Fill{"#18181b"}, Light: Fill{"#fafafa"}},
	{Label: "Slate", Value: "bg-slate-50", Dark: Fill{"#1e293b"}, Light: Fill{"#f8fafc"}},
	{Label: "Stone", Value: "bg-stone-50", Dark: Fill{"#1c1917"}, Light: Fill{"#fafaf9"}},
	{Label: "Rose", Value: "bg-rose-50", Dark: Fill{"#881337"}, Light: Fill{"#fff1f2"}},
	{Label: "Amber", Value: "bg-amber-50", Dark: Fill{"#78350f"}, Light: Fill{"#fffbeb"}},
	{Label: "Emerald", Value: "bg-emerald-50", Dark: Fill{"#064e3b"}, Light: Fill{"#ecfdf5"}},

	// Essential gradients
	{Label: "Blue Gradient", Value: "bg-gradient-blue", Dark: Fill{"#1e3a8a", "#3b82f6"}, Light: Fill{"#dbeafe", "#60a5fa"}},
	{Label: "Purple Gradient", Value: "bg-gradient-purple", Dark: Fill{"#4c1d95", "#8b5cf6"}, Light: Fill{"#f3e8ff", "#a78bfa"}},
	{Label: "Green Gradient", Value: "bg-gradient-green", Dark: Fill{"#064e3b", "#10b981"}, Light: Fill{"#dcfce7", "#34d399"}},
	{Label: "Sunset", Value: "bg-gradient-sunset", Dark: Fill{"#7f1d1d", "#f97316"}, Light: Fill{"#fff7ed", "#fb923c"}},
	{Label: "Pink Gradient", Value: "bg-gradient-pink", Dark: Fill{"#831843", "#ec4899"}, Light: Fill{"#fce7f3", "#f472b6"}},
	{Label: "Cyan Gradient", Value: "bg-gradient-cyan", Dark: Fill{"#164e63", "#06b6d4"}, Light: Fill{"#ecfeff", "#22d3ee"}},
	{Label: "Rainbow", Value: "bg-gradient-rainbow", Dark: Fill{"#7f1d1d", "#4c1d95", "#164e63"}, Light: Fill{"#fee2e2", "#e0e7ff", "#cffafe"}},

	// Designer palettes
	{Label: "Pastel Dream", Value: "bg-gradient-pastel", Dark: Fill{"#a18cd1", "#fbc2eb"}, Light: Fill{"#e9defa", "#fbfcdb"}},
	{Label: "Deep Ocean", Value: "bg-gradient-ocean", Dark: Fill{"#2b5876", "#4e4376"}, Light: Fill{"#96deda", "#50c9c3"}},
	{Label: "Golden Hour", Value: "bg-gradient-golden", Dark: Fill{"#8e2de2", "#4a00e0"}, Light: Fill{"#f6d365", "#fda085"}},
	{Label: "Mint Breeze", Value: "bg-gradient-mint", Dark: Fill{"#1a2980", "#26d0ce"}, Light: Fill{"#84fab0", "#8fd3f4"}},
	{Label: "Velvet Night", Value: "bg-gradient-velvet", Dark: Fill{"#0f0c29", "#302b63", "#24243e"}, Light: Fill{"#c9d6ff", "#e2e2e2"}},
	{Label: "Sweet Peach", Value: "bg-gradient-peach", Dark: Fill{"#6a11cb", "#2575fc"}, Light: Fill{"#ffecd2", "#fcb69f"}},
}

// DefaultBackground is the preset value used by Default.
var DefaultBackground = Backgrounds[len(Backgrounds)-1].Value

// FindPreset looks up a preset by value.
func FindPreset(value string) (Preset, bool) {
	for _, p := range Backgrounds {
		if p.Value == value {
			return p, true
		}
	}
	return Preset{}, false
}
