package evergreen

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	_ "golang.org/x/image/webp" // register WebP decoder
)

// Asset is an image that may still be loading. Ready flips from false to
// true at most once; a failed load stays not ready forever.
type Asset interface {
	Ref() string
	Ready() bool
	// Size returns the natural pixel size, or (0, 0) while not ready.
	Size() (w, h int)
}

// ImageAsset is an Asset backed by a decoded image.Image. The loader sets the
// image before publishing readiness, so readers that observe Ready() == true
// always see the image.
type ImageAsset struct {
	ref   string
	img   image.Image
	ready atomic.Bool
}

// NewImageAsset wraps an already decoded image. The asset is ready
// immediately unless img is nil.
func NewImageAsset(ref string, img image.Image) *ImageAsset {
	a := &ImageAsset{ref: ref}
	if img != nil {
		a.img = img
		a.ready.Store(true)
	}
	return a
}

// Ref returns the path or URL the asset was created from.
func (a *ImageAsset) Ref() string { return a.ref }

// Ready reports whether the image has been decoded.
func (a *ImageAsset) Ready() bool { return a.ready.Load() }

// Size returns the natural image size, or (0, 0) while not ready.
func (a *ImageAsset) Size() (w, h int) {
	if !a.ready.Load() {
		return 0, 0
	}
	b := a.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the decoded image, or nil while not ready.
func (a *ImageAsset) Image() image.Image {
	if !a.ready.Load() {
		return nil
	}
	return a.img
}

func (a *ImageAsset) publish(img image.Image) {
	a.img = img
	a.ready.Store(true)
}

// Loader fetches and decodes image assets in the background. Refs starting
// with http:// or https:// are downloaded; anything else is read from disk.
type Loader struct {
	// Client is used for URL refs. Nil means http.DefaultClient.
	Client *http.Client
	// Debug logs failed loads to stderr.
	Debug bool

	wg sync.WaitGroup
}

// Load returns an asset for ref immediately and starts decoding it on a new
// goroutine. Cancelling ctx abandons the load and leaves the asset pending.
func (l *Loader) Load(ctx context.Context, ref string) *ImageAsset {
	a := &ImageAsset{ref: ref}
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		img, err := l.fetch(ctx, ref)
		if err != nil {
			if l.Debug {
				fmt.Fprintf(os.Stderr, "[evergreen] asset %q: %v\n", ref, err)
			}
			return
		}
		a.publish(img)
	}()
	return a
}

// LoadAll starts a load for every memory and returns the markers in order.
func (l *Loader) LoadAll(ctx context.Context, memories []Memory) []Marker {
	out := make([]Marker, len(memories))
	for i, m := range memories {
		out[i] = Marker{Asset: l.Load(ctx, m.Ref), Title: m.Title}
	}
	return out
}

// Wait blocks until every load started so far has finished or failed.
func (l *Loader) Wait() {
	l.wg.Wait()
}

func (l *Loader) fetch(ctx context.Context, ref string) (image.Image, error) {
	rc, err := l.open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

func (l *Loader) open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
		f, err := os.Open(ref)
		if err != nil {
			return nil, fmt.Errorf("open: %w", err)
		}
		return f, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch: status %s", resp.Status)
	}
	return resp.Body, nil
}
