package evergreen

import (
	"image"
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertFinite(t *testing.T, name string, vs ...float64) {
	t.Helper()
	for i, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s[%d] = %v, want finite", name, i, v)
		}
	}
}

// --- Test doubles ---

// fakeAsset is an Asset with a fixed size and readiness.
type fakeAsset struct {
	ref   string
	ready bool
	w, h  int
}

func (a *fakeAsset) Ref() string { return a.ref }
func (a *fakeAsset) Ready() bool { return a.ready }
func (a *fakeAsset) Size() (int, int) {
	if !a.ready {
		return 0, 0
	}
	return a.w, a.h
}

type drawOp struct {
	op         string
	x, y, w, h float64
	c          Color
	text       string
	asset      Asset
}

// recordingSurface records every draw call since the last Clear.
type recordingSurface struct {
	ops     []drawOp
	clears  int
	flushes int
}

func (s *recordingSurface) Clear(c Color) {
	s.clears++
	s.ops = s.ops[:0]
	s.ops = append(s.ops, drawOp{op: "clear", c: c})
}

func (s *recordingSurface) FillCircle(x, y, r float64, c Color) {
	s.ops = append(s.ops, drawOp{op: "circle", x: x, y: y, w: r, h: r, c: c})
}

func (s *recordingSurface) FillRect(x, y, w, h float64, c Color) {
	s.ops = append(s.ops, drawOp{op: "rect", x: x, y: y, w: w, h: h, c: c})
}

func (s *recordingSurface) DrawImage(a Asset, x, y, w, h float64) {
	s.ops = append(s.ops, drawOp{op: "image", x: x, y: y, w: w, h: h, asset: a})
}

func (s *recordingSurface) DrawText(str string, x, y, size float64, c Color) {
	s.ops = append(s.ops, drawOp{op: "text", x: x, y: y, h: size, c: c, text: str})
}

func (s *recordingSurface) Flush() { s.flushes++ }

func (s *recordingSurface) count(op string) int {
	n := 0
	for _, o := range s.ops {
		if o.op == op {
			n++
		}
	}
	return n
}

// capturingSurface adds pixel read-back to a recordingSurface.
type capturingSurface struct {
	recordingSurface
	img *image.NRGBA
}

func (s *capturingSurface) Capture() *image.NRGBA { return s.img }

// --- evergreen.go ---

func TestColorRGBAPremultiplies(t *testing.T) {
	got := Color{1, 0.5, 0, 0.5}.RGBA()
	if got.A != 128 {
		t.Errorf("A = %d, want 128", got.A)
	}
	if got.R != 128 {
		t.Errorf("R = %d, want 128", got.R)
	}
	if got.G != 64 {
		t.Errorf("G = %d, want 64", got.G)
	}
	if got.B != 0 {
		t.Errorf("B = %d, want 0", got.B)
	}
}

func TestColorRGBAClamps(t *testing.T) {
	got := Color{2, -1, 0.5, 3}.RGBA()
	if got.R != 255 || got.G != 0 || got.A != 255 {
		t.Errorf("RGBA = %+v, want clamped channels", got)
	}
}

func TestRGBColor(t *testing.T) {
	c := RGB{255, 0, 51}.Color(0.25)
	assertNear(t, "R", c.R, 1)
	assertNear(t, "G", c.G, 0)
	assertNear(t, "B", c.B, 0.2)
	assertNear(t, "A", c.A, 0.25)
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 5, 40, false},
		{"outside right", 115, 40, false},
		{"outside top", 50, 15, false},
		{"outside bottom", 50, 75, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Rect.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{KindTree, "tree"},
		{KindSnow, "snow"},
		{KindFloor, "floor"},
		{KindImage, "image"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestRangeRandom(t *testing.T) {
	rng := testRNG()
	if got := (Range{Min: 3, Max: 3}).Random(rng); got != 3 {
		t.Errorf("degenerate range = %v, want 3", got)
	}
	r := Range{Min: -1, Max: 2}
	for range 1000 {
		if v := r.Random(rng); v < r.Min || v >= r.Max {
			t.Fatalf("Random = %v outside [%v, %v)", v, r.Min, r.Max)
		}
	}
}
