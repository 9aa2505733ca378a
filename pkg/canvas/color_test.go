package canvas

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#ffffff", color.NRGBA{255, 255, 255, 255}, false},
		{"#18181B", color.NRGBA{0x18, 0x18, 0x1b, 255}, false},
		{"#f00", color.NRGBA{255, 0, 0, 255}, false},
		{"#00ff0080", color.NRGBA{0, 255, 0, 128}, false},
		{"rgb(10, 20, 30)", color.NRGBA{10, 20, 30, 255}, false},
		{"rgba(51, 51, 51, 0.5)", color.NRGBA{51, 51, 51, 128}, false},
		{" rgba(255,255,255,2) ", color.NRGBA{255, 255, 255, 255}, false},
		{"red", color.NRGBA{}, true},
		{"#12345", color.NRGBA{}, true},
		{"#gggggg", color.NRGBA{}, true},
		{"rgb(1, 2)", color.NRGBA{}, true},
		{"rgba(1, 2, x, 1)", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseColorOr(t *testing.T) {
	fallback := color.NRGBA{1, 2, 3, 4}
	if got := ParseColorOr("nope", fallback); got != fallback {
		t.Errorf("got %v, want fallback", got)
	}
	if got := ParseColorOr("#000", fallback); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("got %v, want black", got)
	}
}

func TestWithAlpha(t *testing.T) {
	c := color.NRGBA{10, 20, 30, 255}
	tests := []struct {
		a    float64
		want uint8
	}{
		{1, 255},
		{0.5, 128},
		{0, 0},
		{-1, 0},
		{3, 255},
	}
	for _, tt := range tests {
		if got := WithAlpha(c, tt.a).A; got != tt.want {
			t.Errorf("WithAlpha(%g).A = %d, want %d", tt.a, got, tt.want)
		}
	}
}
