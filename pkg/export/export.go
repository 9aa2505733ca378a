// Package export encodes rendered canvases as PNG or JPEG.
//
// The export quality setting picks the format: anything below 1 is a lossy
// JPEG at that quality, 1 is a lossless PNG. WriteFile additionally accepts
// an explicit .bmp path for tools that want uncompressed 24-bit output.
package export

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrUnsupportedFormat is returned for file extensions other than .png, .jpg, .jpeg and .bmp.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format is an output encoding.
type Format int

const (
	PNG Format = iota
	JPEG
	BMP
)

func (f Format) String() string {
	switch f {
	case JPEG:
		return "jpeg"
	case BMP:
		return "bmp"
	default:
		return "png"
	}
}

// Extension returns the file extension, with the leading dot.
func (f Format) Extension() string {
	switch f {
	case JPEG:
		return ".jpg"
	case BMP:
		return ".bmp"
	default:
		return ".png"
	}
}

// FormatFor maps an export quality in (0,1] to a format.
func FormatFor(quality float64) Format {
	if quality < 1 {
		return JPEG
	}
	return PNG
}

// FilenameFor returns base with the extension FormatFor(quality) selects.
func FilenameFor(base string, quality float64) string {
	return base + FormatFor(quality).Extension()
}

// FormatFromPath infers the format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".bmp":
		return BMP, nil
	default:
		return 0, fmt.Errorf("%w %q: use .png, .jpg, .jpeg or .bmp", ErrUnsupportedFormat, ext)
	}
}

// JPEGQuality maps quality in (0,1] to the encoder's 1-100 scale.
func JPEGQuality(quality float64) int {
	return min(max(int(math.Round(quality*100)), 1), 100)
}

// Encode writes img to w in the format FormatFor(quality) selects.
func Encode(w io.Writer, img image.Image, quality float64) error {
	return encode(w, img, FormatFor(quality), quality)
}

// Write encodes img to path in the format the quality selects; path should
// carry the matching extension (see FilenameFor).
func Write(path string, img image.Image, quality float64) error {
	return writeFile(path, img, FormatFor(quality), quality)
}

// WriteFile encodes img in the format given by the extension of path. For
// JPEG, quality below 1 sets the encoder quality; 1 means best quality.
func WriteFile(path string, img image.Image, quality float64) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	return writeFile(path, img, f, quality)
}

func writeFile(path string, img image.Image, f Format, quality float64) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := encode(out, img, f, quality); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func encode(w io.Writer, img image.Image, f Format, quality float64) error {
	var err error
	switch f {
	case JPEG:
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality(quality)))
	case BMP:
		err = imaging.Encode(w, img, imaging.BMP)
	default:
		err = imaging.Encode(w, img, imaging.PNG)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return nil
}
