package canvas

import (
	"math"
	"reflect"
	"testing"

	"github.com/xob0t/GoCompare/pkg/settings"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func rectNear(a, b Rect) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.W, b.W) && near(a.H, b.H)
}

// goldenSettings is the reference comparison: two images, default padding and
// label styling, nothing optional except the watermark.
func goldenSettings() settings.CanvasSettings {
	s := settings.Default(settings.ThemeLight)
	s.ShowShadow = false
	s.Pattern.Show = false
	s.Border.Show = false
	s.Title.Text = ""
	s.ShowWatermark = true
	return s
}

var goldenSizes = []Size{{400, 300}, {200, 300}}

func TestCalculate_Golden(t *testing.T) {
	g, ok := Calculate(goldenSizes, goldenSettings(), LayoutOptions{})
	if !ok {
		t.Fatal("Calculate reported empty input")
	}

	checks := []struct {
		name      string
		got, want float64
	}{
		{"reference", g.Reference, 300},
		{"padding.top", g.Padding.Top, 60},
		{"padding.right", g.Padding.Right, 60},
		{"padding.bottom", g.Padding.Bottom, 180},
		{"padding.left", g.Padding.Left, 60},
		{"gap", g.Gap, 60},
		{"width", g.Width, 780},
		{"labelGap", g.LabelGap, 60},
		{"labelBlock", g.LabelBlock, 165.6},
		{"height", g.Height, 705.6},
		{"titleBlock", g.TitleBlock, 0},
		{"watermark size", g.WatermarkSize, 17},
		{"watermark x", g.WatermarkX, 763},
		{"watermark y", g.WatermarkY, 688.6},
		{"label 0 baseline", g.Images[0].Label.Baseline, 490.4},
		{"label 1 baseline", g.Images[1].Label.Baseline, 490.4},
		{"label 0 font", g.Images[0].Label.FontSize, 88},
		{"label 0 x", g.Images[0].Label.X, 260},
		{"label 1 x", g.Images[1].Label.X, 620},
	}
	for _, c := range checks {
		if !near(c.got, c.want) {
			t.Errorf("%s = %g, want %g", c.name, c.got, c.want)
		}
	}

	wantRects := []Rect{{60, 60, 400, 300}, {520, 60, 200, 300}}
	for i, want := range wantRects {
		if got := g.Images[i].Rect; !rectNear(got, want) {
			t.Errorf("image %d rect = %+v, want %+v", i, got, want)
		}
	}

	if w, h := g.PixelSize(); w != 780 || h != 706 {
		t.Errorf("PixelSize = %dx%d, want 780x706", w, h)
	}
}

func TestCalculate_Empty(t *testing.T) {
	if g, ok := Calculate(nil, goldenSettings(), LayoutOptions{}); ok || g != nil {
		t.Errorf("Calculate(nil) = %v, %v; want nil, false", g, ok)
	}
}

func TestCalculate_AspectRatio(t *testing.T) {
	// The taller image fixes the shared height at 400.
	g, _ := Calculate([]Size{{300, 200}, {100, 400}}, goldenSettings(), LayoutOptions{})
	if got := g.Images[0].Rect; !near(got.H, 400) || !near(got.W, 600) {
		t.Errorf("image 0 = %gx%g, want 600x400", got.W, got.H)
	}
	if got := g.Images[1].Rect; !near(got.W, 100) {
		t.Errorf("image 1 width = %g, want 100", got.W)
	}
}

func TestCalculate_ReferenceCap(t *testing.T) {
	tests := []struct {
		name string
		cap  float64
		want float64
	}{
		{"preview default", 0, PreviewReferenceCap},
		{"native", MaxImageDimension, 3000},
		{"custom", 500, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := Calculate([]Size{{4000, 3000}}, goldenSettings(), LayoutOptions{ReferenceCap: tt.cap})
			if !near(g.Reference, tt.want) {
				t.Errorf("reference = %g, want %g", g.Reference, tt.want)
			}
			if !near(g.Images[0].Rect.W, tt.want*4/3) {
				t.Errorf("width = %g, want %g", g.Images[0].Rect.W, tt.want*4/3)
			}
		})
	}
}

func TestCalculate_Vertical(t *testing.T) {
	s := goldenSettings()
	s.LayoutDirection = settings.Vertical

	g, _ := Calculate(goldenSizes, s, LayoutOptions{})

	if !near(g.Reference, 400) || !near(g.Width, 560) {
		t.Errorf("reference %g, width %g; want 400, 560", g.Reference, g.Width)
	}
	if !near(g.Gap, 220) || !near(g.Padding.Bottom, 220) {
		t.Errorf("gap %g, bottom %g; want 220, 220", g.Gap, g.Padding.Bottom)
	}
	if !near(g.LabelBlock, 185.6) {
		t.Errorf("labelBlock = %g, want 185.6", g.LabelBlock)
	}

	want := []Rect{{80, 80, 400, 300}, {80, 785.6, 400, 600}}
	for i := range want {
		if got := g.Images[i].Rect; !rectNear(got, want[i]) {
			t.Errorf("image %d rect = %+v, want %+v", i, got, want[i])
		}
	}
	if !near(g.Height, 1791.2) {
		t.Errorf("height = %g, want 1791.2", g.Height)
	}
}

func TestCalculate_LabelsOnTop(t *testing.T) {
	s := goldenSettings()
	s.TextPosition = settings.TextTop

	t.Run("horizontal", func(t *testing.T) {
		g, _ := Calculate(goldenSizes, s, LayoutOptions{})
		r := g.Images[0].Rect
		if !near(r.Y, 60+165.6) {
			t.Errorf("image y = %g, want %g", r.Y, 60+165.6)
		}
		if !near(g.Images[0].Label.Baseline, r.Y-60) {
			t.Errorf("baseline = %g, want %g", g.Images[0].Label.Baseline, r.Y-60)
		}
		if !near(g.Height, 705.6) {
			t.Errorf("height = %g, label position must not change it", g.Height)
		}
	})

	t.Run("vertical", func(t *testing.T) {
		v := s
		v.LayoutDirection = settings.Vertical
		g, _ := Calculate(goldenSizes, v, LayoutOptions{})
		if !near(g.Images[0].Rect.Y, 80+185.6) {
			t.Errorf("image 0 y = %g", g.Images[0].Rect.Y)
		}
		if !near(g.Images[1].Rect.Y, 80+185.6+300+220+185.6) {
			t.Errorf("image 1 y = %g", g.Images[1].Rect.Y)
		}
		if !near(g.Height, 1791.2) {
			t.Errorf("height = %g, want 1791.2", g.Height)
		}
	})
}

func TestCalculate_Title(t *testing.T) {
	s := goldenSettings()
	s.Title.Text = "Which one?"

	g, _ := Calculate(goldenSizes, s, LayoutOptions{})
	if !near(g.TitleBlock, 98) {
		t.Errorf("titleBlock = %g, want 98", g.TitleBlock)
	}
	if !near(g.Title.Baseline, 90) || !near(g.Title.X, 390) {
		t.Errorf("title at (%g, %g), want (390, 90)", g.Title.X, g.Title.Baseline)
	}
	if !near(g.Images[0].Rect.Y, 158) {
		t.Errorf("image y = %g, want 158", g.Images[0].Rect.Y)
	}
	if !near(g.Height, 803.6) {
		t.Errorf("height = %g, want 803.6", g.Height)
	}
}

func TestCalculate_FallbackLabels(t *testing.T) {
	sizes := []Size{{10, 10}, {10, 10}, {10, 10}}
	tests := []struct {
		letters []string
		want    []string
	}{
		{nil, []string{"A", "B", "C"}},
		{[]string{"X"}, []string{"X", "B", "C"}},
	}
	for _, tt := range tests {
		s := goldenSettings()
		s.Text.Letters = tt.letters
		g, _ := Calculate(sizes, s, LayoutOptions{})
		for i, want := range tt.want {
			if got := g.Images[i].Label.Text; got != want {
				t.Errorf("letters %v: label %d = %q, want %q", tt.letters, i, got, want)
			}
		}
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	s := goldenSettings()
	s.Title.Text = "Before / After"
	s.Pattern.Show = true

	a, _ := Calculate(goldenSizes, s, LayoutOptions{})
	b, _ := Calculate(goldenSizes, s, LayoutOptions{})
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Calculate is not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestCalculate_DegenerateSizes(t *testing.T) {
	g, ok := Calculate([]Size{{0, 0}, {50, 50}}, goldenSettings(), LayoutOptions{})
	if !ok {
		t.Fatal("expected geometry")
	}
	for _, v := range []float64{g.Width, g.Height, g.Images[0].Rect.W} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite geometry: %+v", g)
		}
	}
}

func TestScaled_Covariance(t *testing.T) {
	s := goldenSettings()
	s.Title.Text = "Title"
	s.Pattern.Show = true
	s.Border.Show = true

	for _, k := range []float64{0.5, 2, 3.846} {
		base, _ := Calculate(goldenSizes, s, LayoutOptions{})
		scaled := base.Scaled(k)

		pairs := []struct {
			name         string
			scaled, base float64
		}{
			{"width", scaled.Width, base.Width},
			{"height", scaled.Height, base.Height},
			{"title baseline", scaled.Title.Baseline, base.Title.Baseline},
			{"title font", scaled.Title.FontSize, base.Title.FontSize},
			{"pattern spacing", scaled.PatternSpacing, base.PatternSpacing},
			{"pattern size", scaled.PatternSize, base.PatternSize},
			{"watermark", scaled.WatermarkSize, base.WatermarkSize},
			{"shadow offset", scaled.ShadowOffsetY, base.ShadowOffsetY},
			{"border radius", scaled.BorderRadius, base.BorderRadius},
		}
		for _, p := range pairs {
			if math.Abs(p.scaled-p.base*k) > eps*math.Max(1, p.base*k) {
				t.Errorf("k=%g %s = %g, want %g", k, p.name, p.scaled, p.base*k)
			}
		}
		for i := range base.Images {
			if !rectNear(scaled.Images[i].Rect, base.Images[i].Rect.scaled(k)) {
				t.Errorf("k=%g image %d rect = %+v", k, i, scaled.Images[i].Rect)
			}
			if !near(scaled.Images[i].Label.Baseline, base.Images[i].Label.Baseline*k) {
				t.Errorf("k=%g label %d baseline = %g", k, i, scaled.Images[i].Label.Baseline)
			}
		}
		if scaled.Scale != k {
			t.Errorf("scale = %g, want %g", scaled.Scale, k)
		}
		// The source geometry must be untouched.
		if !near(base.Images[0].Rect.W, 400) {
			t.Errorf("Scaled mutated its receiver: %+v", base.Images[0].Rect)
		}
	}
}

func TestExportScale(t *testing.T) {
	tests := []struct {
		w, h, want float64
	}{
		{780, 705.6, 3000.0 / 780},
		{400, 300, MaxExportScale},
		{2000, 1000, MinExportScale},
		{1000, 1000, 3},
		{0, 0, MinExportScale},
	}
	for _, tt := range tests {
		if got := ExportScale(tt.w, tt.h); !near(got, tt.want) {
			t.Errorf("ExportScale(%g, %g) = %g, want %g", tt.w, tt.h, got, tt.want)
		}
	}
}
