// fonts.go - Font management with custom TTF support and embedded fallback font.
// Uses golang.org/x/image/font for OpenType rendering. Defaults to Go Bold,
// since labels, title and watermark are all drawn bold.
package canvas

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// FaceTTL is how long a face stays cached after it was created. Export
// scales depend on the canvas size, so faces for one-off sizes expire instead
// of piling up in long-lived hosts.
const FaceTTL = 5 * time.Minute

// FontManager parses one font and hands out faces per pixel size.
type FontManager struct {
	parsed *opentype.Font
	faces  *cache.Cache
}

// NewFontManager loads the font at customPath. If customPath is empty, the
// embedded Go Bold font is used.
func NewFontManager(customPath string) (*FontManager, error) {
	if customPath == "" {
		return NewFontManagerFromBytes(nil)
	}

	data, err := os.ReadFile(customPath)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", customPath, err)
	}
	return NewFontManagerFromBytes(data)
}

// NewFontManagerFromBytes parses raw TTF/OTF data; nil selects the embedded font.
func NewFontManagerFromBytes(data []byte) (*FontManager, error) {
	if data == nil {
		data = gobold.TTF
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	return &FontManager{
		parsed: parsed,
		faces:  cache.New(FaceTTL, 2*FaceTTL),
	}, nil
}

// Face returns a face whose em size is px pixels. Sizes are quantised to
// 1/64 px so repeated renders reuse faces.
func (fm *FontManager) Face(px float64) (font.Face, error) {
	px = math.Max(math.Round(px*64)/64, 1)
	key := strconv.FormatFloat(px, 'f', -1, 64)

	if v, ok := fm.faces.Get(key); ok {
		return v.(font.Face), nil
	}

	// 72 DPI makes points equal pixels.
	face, err := opentype.NewFace(fm.parsed, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	fm.faces.SetDefault(key, face)
	return face, nil
}
