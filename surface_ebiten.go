package evergreen

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// imageSource is implemented by assets that expose decoded pixels.
type imageSource interface {
	Image() image.Image
}

// EbitenSurface draws onto an *ebiten.Image. Point it at the screen with
// SetTarget at the start of every Draw.
type EbitenSurface struct {
	target *ebiten.Image
	font   *Font
	images map[Asset]*ebiten.Image
}

// NewEbitenSurface creates a surface that renders text with font. A nil font
// means DefaultFont.
func NewEbitenSurface(font *Font) (*EbitenSurface, error) {
	if font == nil {
		f, err := DefaultFont()
		if err != nil {
			return nil, err
		}
		font = f
	}
	return &EbitenSurface{font: font, images: make(map[Asset]*ebiten.Image)}, nil
}

// SetTarget sets the image subsequent draws go to.
func (s *EbitenSurface) SetTarget(img *ebiten.Image) {
	s.target = img
}

// Clear fills the target with c.
func (s *EbitenSurface) Clear(c Color) {
	s.target.Fill(c.RGBA())
}

// FillCircle draws an anti-aliased filled circle.
func (s *EbitenSurface) FillCircle(x, y, r float64, c Color) {
	if r <= 0 || c.A <= 0 {
		return
	}
	vector.DrawFilledCircle(s.target, float32(x), float32(y), float32(r), c.RGBA(), true)
}

// FillRect draws a filled rectangle.
func (s *EbitenSurface) FillRect(x, y, w, h float64, c Color) {
	if w <= 0 || h <= 0 || c.A <= 0 {
		return
	}
	vector.DrawFilledRect(s.target, float32(x), float32(y), float32(w), float32(h), c.RGBA(), false)
}

// DrawImage draws a ready asset scaled into the given rectangle. The GPU
// image is created on first use and cached per asset.
func (s *EbitenSurface) DrawImage(a Asset, x, y, w, h float64) {
	img := s.imageFor(a)
	if img == nil || w <= 0 || h <= 0 {
		return
	}
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	s.target.DrawImage(img, op)
}

func (s *EbitenSurface) imageFor(a Asset) *ebiten.Image {
	if a == nil || !a.Ready() {
		return nil
	}
	if img, ok := s.images[a]; ok {
		return img
	}
	src, ok := a.(imageSource)
	if !ok || src.Image() == nil {
		return nil
	}
	img := ebiten.NewImageFromImage(src.Image())
	s.images[a] = img
	return img
}

// DrawText draws s centered on x with its top edge at y.
func (s *EbitenSurface) DrawText(str string, x, y, size float64, c Color) {
	if str == "" || c.A <= 0 {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c.RGBA())
	op.PrimaryAlign = text.AlignCenter
	text.Draw(s.target, str, s.font.Face(size), op)
}

// Capture reads back the target as straight-alpha pixels.
func (s *EbitenSurface) Capture() *image.NRGBA {
	b := s.target.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	s.target.ReadPixels(pixels)
	return unpremultiply(pixels, b.Dx(), b.Dy())
}

// Release disposes cached GPU images.
func (s *EbitenSurface) Release() {
	for a, img := range s.images {
		img.Deallocate()
		delete(s.images, a)
	}
}
