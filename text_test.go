package evergreen

import "testing"

func TestDefaultFontShared(t *testing.T) {
	a, err := DefaultFont()
	if err != nil {
		t.Fatalf("DefaultFont: %v", err)
	}
	b, _ := DefaultFont()
	if a != b {
		t.Error("DefaultFont returned two fonts")
	}
}

func TestFontFaceCachedPerSize(t *testing.T) {
	f, err := DefaultFont()
	if err != nil {
		t.Fatal(err)
	}
	if f.Face(22) != f.Face(22.3) {
		t.Error("sizes rounding to the same pixel size got different faces")
	}
	if f.Face(22) == f.Face(30) {
		t.Error("different sizes share a face")
	}
	if got := f.Face(0.2).Size; got != 1 {
		t.Errorf("tiny size = %v, want 1", got)
	}
}

func TestFontMeasure(t *testing.T) {
	f, err := DefaultFont()
	if err != nil {
		t.Fatal(err)
	}
	w1, h1 := f.Measure("Noel", 20)
	w2, _ := f.Measure("Noel Noel", 20)
	w3, h3 := f.Measure("Noel", 40)
	if w1 <= 0 || h1 <= 0 {
		t.Fatalf("Measure = %vx%v, want positive", w1, h1)
	}
	if w2 <= w1 {
		t.Errorf("longer text not wider: %v <= %v", w2, w1)
	}
	if w3 <= w1 || h3 <= h1 {
		t.Errorf("larger size not bigger: %vx%v vs %vx%v", w3, h3, w1, h1)
	}
}

func TestLoadFontInvalid(t *testing.T) {
	if _, err := LoadFont([]byte("not a font")); err == nil {
		t.Error("expected error for invalid TTF data")
	}
}
