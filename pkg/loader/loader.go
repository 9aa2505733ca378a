// Package loader decodes comparison images concurrently, keeping input order.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/disintegration/imaging"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	// Formats beyond the standard library's PNG, JPEG and GIF.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultCacheTTL is how long a decoded image stays cached by default.
const DefaultCacheTTL = 10 * time.Minute

// RasterImage is a decoded source image. It is not modified after loading.
type RasterImage struct {
	image.Image
	Source string // ID of the source it was decoded from
	Width  int
	Height int
}

// Source is something an image can be read from.
type Source interface {
	ID() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads an image file; its ID is the path.
type FileSource string

func (f FileSource) ID() string { return string(f) }

func (f FileSource) Open(context.Context) (io.ReadCloser, error) {
	return os.Open(string(f))
}

// BytesSource is an in-memory image, e.g. an upload.
type BytesSource struct {
	Name string
	Data []byte
}

func (b BytesSource) ID() string { return b.Name }

func (b BytesSource) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.Data)), nil
}

// DecodeError reports which source of a batch failed.
type DecodeError struct {
	Index  int
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image %d (%s): %v", e.Index, e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Option configures a Loader.
type Option func(*Loader)

// WithCache sets the cache TTL. A TTL <= 0 disables caching.
func WithCache(ttl time.Duration) Option {
	return func(l *Loader) { l.ttl = ttl }
}

// WithConcurrency bounds the number of concurrent decodes.
func WithConcurrency(n int) Option {
	return func(l *Loader) { l.concurrency = n }
}

// WithLogger sets the loader's logger. Without it the package logger is used.
func WithLogger(log *slog.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// Loader turns sources into RasterImages.
type Loader struct {
	ttl         time.Duration
	concurrency int
	log         *slog.Logger
	cache       *cache.Cache
}

// New creates a Loader with a 10 minute cache and one decoder per CPU.
func New(opts ...Option) *Loader {
	l := &Loader{
		ttl:         DefaultCacheTTL,
		concurrency: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.concurrency < 1 {
		l.concurrency = 1
	}
	if l.ttl > 0 {
		l.cache = cache.New(l.ttl, 2*l.ttl)
	}
	return l
}

// Load decodes sources concurrently. result[i] always belongs to sources[i].
// If any source fails the whole batch fails with a *DecodeError and no
// images are returned. An empty batch is not an error.
func (l *Loader) Load(ctx context.Context, sources []Source) ([]*RasterImage, error) {
	images := make([]*RasterImage, len(sources))
	if len(sources) == 0 {
		return images, nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(l.concurrency)

	for i, src := range sources {
		eg.Go(func() error {
			img, err := l.load(egCtx, src)
			if err != nil {
				return &DecodeError{Index: i, Source: src.ID(), Err: err}
			}
			images[i] = img
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	l.logger().Debug("images loaded", "count", len(images))
	return images, nil
}

// Forget evicts id from the cache.
func (l *Loader) Forget(id string) {
	if l.cache != nil {
		l.cache.Delete(id)
	}
}

func (l *Loader) logger() *slog.Logger {
	if l.log != nil {
		return l.log
	}
	return Logger()
}

// Images returns the image.Image values of imgs, in order.
func Images(imgs []*RasterImage) []image.Image {
	out := make([]image.Image, len(imgs))
	for i, img := range imgs {
		out[i] = img.Image
	}
	return out
}

func (l *Loader) load(ctx context.Context, src Source) (*RasterImage, error) {
	id := src.ID()
	if l.cache != nil {
		if v, ok := l.cache.Get(id); ok {
			l.logger().Debug("image cache hit", "source", id)
			return v.(*RasterImage), nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc, err := src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer rc.Close()

	img, err := imaging.Decode(rc, imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, errors.New("image has no pixels")
	}

	ri := &RasterImage{Image: img, Source: id, Width: b.Dx(), Height: b.Dy()}
	if l.cache != nil {
		l.cache.SetDefault(id, ri)
	}
	l.logger().Debug("image decoded", "source", id, "width", ri.Width, "height", ri.Height)
	return ri, nil
}
