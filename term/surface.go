// Package term renders an evergreen scene into a terminal with tcell. Every
// cell stands for a CellWidth×CellHeight block of scene pixels; shapes are
// rasterized at cell resolution and text is laid out one rune per cell.
package term

import (
	"image"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/evergreen"
)

// Default cell footprint in scene pixels. Terminal cells are roughly twice
// as tall as they are wide.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// dotThreshold is the circle radius, in cells, below which a circle is
// drawn as a glyph instead of filled background cells.
const dotThreshold = 0.75

type rgb struct{ r, g, b float64 }

func (c rgb) blend(src evergreen.Color) rgb {
	a := clampUnit(src.A)
	return rgb{
		r: c.r*(1-a) + src.R*a,
		g: c.g*(1-a) + src.G*a,
		b: c.b*(1-a) + src.B*a,
	}
}

func (c rgb) color() tcell.Color {
	return tcell.NewRGBColor(channel(c.r), channel(c.g), channel(c.b))
}

type cell struct {
	bg rgb
	fg rgb
	ch rune
}

// Surface implements evergreen.Surface and evergreen.Flusher on a tcell
// screen. Draws go to an off-screen cell buffer; Flush copies it to the
// screen and shows it.
type Surface struct {
	screen     tcell.Screen
	cellW      float64
	cellH      float64
	cols, rows int
	cells      []cell
}

// NewSurface creates a surface on screen. Non-positive cell sizes fall back
// to the defaults.
func NewSurface(screen tcell.Screen, cellW, cellH float64) *Surface {
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	s := &Surface{screen: screen, cellW: cellW, cellH: cellH}
	s.syncSize()
	return s
}

// PixelSize returns the scene-pixel dimensions covered by a cols×rows
// terminal.
func (s *Surface) PixelSize(cols, rows int) (w, h int) {
	return int(float64(cols) * s.cellW), int(float64(rows) * s.cellH)
}

// CellCenter maps a terminal cell to the scene pixel at its center.
func (s *Surface) CellCenter(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * s.cellW, (float64(row) + 0.5) * s.cellH
}

func (s *Surface) syncSize() {
	cols, rows := s.screen.Size()
	cols, rows = max(cols, 0), max(rows, 0)
	if cols == s.cols && rows == s.rows && s.cells != nil {
		return
	}
	s.cols, s.rows = cols, rows
	s.cells = make([]cell, cols*rows)
}

func (s *Surface) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return nil
	}
	return &s.cells[row*s.cols+col]
}

// Clear picks up the current terminal size and fills every cell with c.
func (s *Surface) Clear(c evergreen.Color) {
	s.syncSize()
	bg := rgb{}.blend(c.WithAlpha(1))
	for i := range s.cells {
		s.cells[i] = cell{bg: bg, ch: ' '}
	}
}

// FillCircle draws small circles as a glyph in one cell and larger ones as
// blended background cells.
func (s *Surface) FillCircle(x, y, r float64, c evergreen.Color) {
	if r <= 0 || c.A <= 0 || !finite(x, y, r) {
		return
	}
	if r/s.cellW < dotThreshold {
		s.dot(x, y, r, c)
		return
	}
	c0, r0 := s.cellOf(x-r, y-r)
	c1, r1 := s.cellOf(x+r, y+r)
	for row := max(r0, 0); row <= min(r1, s.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, s.cols-1); col++ {
			cx, cy := s.CellCenter(col, row)
			if (cx-x)*(cx-x)+(cy-y)*(cy-y) > r*r {
				continue
			}
			p := s.at(col, row)
			p.bg = p.bg.blend(c)
		}
	}
}

func (s *Surface) dot(x, y, r float64, c evergreen.Color) {
	col, row := s.cellOf(x, y)
	p := s.at(col, row)
	if p == nil {
		return
	}
	glyph := '·'
	if r/s.cellW > dotThreshold/2 {
		glyph = '•'
	}
	p.ch = glyph
	p.fg = p.bg.blend(c)
}

// FillRect blends c into every cell whose center lies inside the rectangle.
func (s *Surface) FillRect(x, y, w, h float64, c evergreen.Color) {
	if w <= 0 || h <= 0 || c.A <= 0 || !finite(x, y, w, h) {
		return
	}
	s.eachCell(x, y, w, h, func(p *cell, _, _ float64) {
		p.bg = p.bg.blend(c)
	})
}

// DrawImage samples the image at every covered cell center.
func (s *Surface) DrawImage(a evergreen.Asset, x, y, w, h float64) {
	if a == nil || !a.Ready() || w <= 0 || h <= 0 || !finite(x, y, w, h) {
		return
	}
	src, ok := a.(interface{ Image() image.Image })
	if !ok || src.Image() == nil {
		return
	}
	img := src.Image()
	b := img.Bounds()
	s.eachCell(x, y, w, h, func(p *cell, cx, cy float64) {
		ix := b.Min.X + int((cx-x)/w*float64(b.Dx()))
		iy := b.Min.Y + int((cy-y)/h*float64(b.Dy()))
		r, g, bl, al := img.At(ix, iy).RGBA()
		if al == 0 {
			return
		}
		// RGBA is premultiplied; undo it for the blend.
		fa := float64(al) / 0xffff
		p.bg = p.bg.blend(evergreen.Color{
			R: float64(r) / float64(al),
			G: float64(g) / float64(al),
			B: float64(bl) / float64(al),
			A: fa,
		})
		p.ch = ' '
	})
}

// DrawText writes s one rune per cell, centered on x, on the row holding y.
// size is ignored: the terminal has one font size.
func (s *Surface) DrawText(str string, x, y, _ float64, c evergreen.Color) {
	if str == "" || c.A <= 0 || !finite(x, y) {
		return
	}
	runes := []rune(str)
	col, row := s.cellOf(x, y)
	col -= len(runes) / 2
	for i, r := range runes {
		p := s.at(col+i, row)
		if p == nil {
			continue
		}
		p.ch = r
		p.fg = p.bg.blend(c)
	}
}

// Flush copies the cell buffer to the screen and shows it.
func (s *Surface) Flush() {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			p := &s.cells[row*s.cols+col]
			st := tcell.StyleDefault.Background(p.bg.color()).Foreground(p.fg.color())
			s.screen.SetContent(col, row, p.ch, nil, st)
		}
	}
	s.screen.Show()
}

func (s *Surface) cellOf(x, y float64) (col, row int) {
	return int(math.Floor(x / s.cellW)), int(math.Floor(y / s.cellH))
}

func (s *Surface) eachCell(x, y, w, h float64, fn func(p *cell, cx, cy float64)) {
	c0, r0 := s.cellOf(x, y)
	c1, r1 := s.cellOf(x+w, y+h)
	for row := max(r0, 0); row <= min(r1, s.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, s.cols-1); col++ {
			cx, cy := s.CellCenter(col, row)
			if cx < x || cx > x+w || cy < y || cy > y+h {
				continue
			}
			fn(s.at(col, row), cx, cy)
		}
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > 1e9 {
			return false
		}
	}
	return true
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func channel(v float64) int32 {
	return int32(clampUnit(v)*255 + 0.5)
}
