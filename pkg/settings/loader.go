// loader.go - Load settings JSON on top of the defaults.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile reads a settings JSON file. Fields missing from the file keep their
// default value for theme. Out-of-range values are clamped and reported as
// warnings, never as errors.
func LoadFile(path string, theme Theme) (CanvasSettings, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CanvasSettings{}, nil, fmt.Errorf("read settings: %w", err)
	}
	return Parse(data, theme)
}

// Parse decodes settings JSON over Default(theme).
func Parse(data []byte, theme Theme) (CanvasSettings, []string, error) {
	s := Default(theme)
	if err := json.Unmarshal(data, &s); err != nil {
		return CanvasSettings{}, nil, fmt.Errorf("parse settings JSON: %w", err)
	}

	warnings := Validate(s)
	return Normalize(s), warnings, nil
}

// ExampleJSON returns the default settings for theme as indented JSON,
// used by `gocompare init`.
func ExampleJSON(theme Theme) ([]byte, error) {
	s := Default(theme)
	s.Title.Text = "Which one?"
	s.Text.Letters = []string{"A", "B"}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode example settings: %w", err)
	}
	return data, nil
}
