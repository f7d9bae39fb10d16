package evergreen

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font wraps Ebitengine's text/v2 face source and caches one face per
// rounded pixel size.
type Font struct {
	source *text.GoTextFaceSource

	mu    sync.Mutex
	faces map[int]*text.GoTextFace
}

// LoadFont loads a TrueType font from raw TTF/OTF data.
func LoadFont(ttfData []byte) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("evergreen: failed to parse TTF data: %w", err)
	}
	return &Font{source: source, faces: make(map[int]*text.GoTextFace)}, nil
}

var (
	defaultFontOnce sync.Once
	defaultFont     *Font
	defaultFontErr  error
)

// DefaultFont returns the bundled Go Regular font.
func DefaultFont() (*Font, error) {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = LoadFont(goregular.TTF)
	})
	return defaultFont, defaultFontErr
}

// Face returns the face for size pixels, creating it on first use.
func (f *Font) Face(size float64) *text.GoTextFace {
	key := max(1, int(math.Round(size)))
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[key]; ok {
		return face
	}
	face := &text.GoTextFace{Source: f.source, Size: float64(key)}
	f.faces[key] = face
	return face
}

// Measure returns the width and height of s rendered at size pixels.
func (f *Font) Measure(s string, size float64) (width, height float64) {
	face := f.Face(size)
	m := face.Metrics()
	return text.Measure(s, face, m.HAscent+m.HDescent+m.HLineGap)
}
