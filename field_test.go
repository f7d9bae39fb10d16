package evergreen

import (
	"math"
	"math/rand/v2"
	"testing"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestGenerateFieldCounts(t *testing.T) {
	cfg := DefaultConfig()
	markers := []Marker{{Asset: &fakeAsset{ref: "a"}}, {Asset: &fakeAsset{ref: "b"}}}
	f := GenerateField(cfg, markers, 800, 600, testRNG())

	if len(f.Tree) != 2800 {
		t.Errorf("len(Tree) = %d, want 2800", len(f.Tree))
	}
	if len(f.Snow) != 300 {
		t.Errorf("len(Snow) = %d, want 300", len(f.Snow))
	}
	if len(f.Floor) != 400 {
		t.Errorf("len(Floor) = %d, want 400", len(f.Floor))
	}
	if len(f.Stars) != 200 {
		t.Errorf("len(Stars) = %d, want 200", len(f.Stars))
	}
	if len(f.Images) != 2 {
		t.Errorf("len(Images) = %d, want 2", len(f.Images))
	}
}

func TestGenerateFieldNonPositiveCounts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Particles = ParticleCounts{Tree: 0, Snow: -1, Floor: 0, Stars: -5}
	f := GenerateField(cfg, nil, 800, 600, testRNG())
	if len(f.Tree)+len(f.Snow)+len(f.Floor)+len(f.Stars)+len(f.Images) != 0 {
		t.Errorf("expected every layer empty, got %d/%d/%d/%d/%d",
			len(f.Tree), len(f.Snow), len(f.Floor), len(f.Stars), len(f.Images))
	}
}

func TestTreeParticlesWithinExtent(t *testing.T) {
	cfg := DefaultConfig()
	f := GenerateField(cfg, nil, 800, 600, testRNG())
	base := -cfg.Tree.Height/2 + cfg.Tree.BaseLift
	for i, p := range f.Tree {
		if p.Height < base || p.Height >= base+cfg.Tree.Height {
			t.Fatalf("Tree[%d].Height = %v outside [%v, %v)", i, p.Height, base, base+cfg.Tree.Height)
		}
		if p.Radius < 0 || p.Radius > cfg.Tree.BaseRadius {
			t.Fatalf("Tree[%d].Radius = %v outside [0, %v]", i, p.Radius, cfg.Tree.BaseRadius)
		}
		h := normalizedHeight(cfg.Tree, p.Height)
		if h < 0 || h >= 1 {
			t.Fatalf("Tree[%d] normalized height = %v outside [0, 1)", i, h)
		}
		if !p.HasColor {
			t.Fatalf("Tree[%d] has no color", i)
		}
	}
}

func TestTreeSpiralFormula(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Particles.Tree = 10
	f := GenerateField(cfg, nil, 800, 600, testRNG())
	p := f.Tree[5]
	frac := 0.5
	assertNear(t, "Angle", p.Angle, 5*0.15+frac*20)
	assertNear(t, "Radius", p.Radius, 180*(1-frac))
	assertNear(t, "Height", p.Height, frac*500-250+50)
	if p.Size < 2 || p.Size >= 4.5 {
		t.Errorf("Size = %v outside [2, 4.5)", p.Size)
	}
}

func TestFloorWithinRadius(t *testing.T) {
	cfg := DefaultConfig()
	f := GenerateField(cfg, nil, 800, 600, testRNG())
	base := baseHeight(cfg.Tree)
	for i, p := range f.Floor {
		if p.Radius < 0 || p.Radius > cfg.Tree.FloorRadius {
			t.Fatalf("Floor[%d].Radius = %v outside [0, %v]", i, p.Radius, cfg.Tree.FloorRadius)
		}
		if p.Height != base {
			t.Fatalf("Floor[%d].Height = %v, want %v", i, p.Height, base)
		}
	}
}

func TestImageSpiral(t *testing.T) {
	cfg := DefaultConfig()
	markers := make([]Marker, 4)
	for i := range markers {
		markers[i] = Marker{Asset: &fakeAsset{ref: string(rune('a' + i))}, Title: "m"}
	}
	f := GenerateField(cfg, markers, 800, 600, testRNG())
	step := 2 * math.Pi / 1.618 * 3
	for i, p := range f.Images {
		frac := float64(i) / 4
		assertNear(t, "Angle", p.Angle, float64(i)*step)
		assertNear(t, "Radius", p.Radius, 180+80-50*frac)
		assertNear(t, "Height", p.Height, -250+100+frac*500*0.8)
		if p.Asset != markers[i].Asset {
			t.Errorf("Images[%d] asset not carried over", i)
		}
	}
}

func TestSnowAndStarsRanges(t *testing.T) {
	cfg := DefaultConfig()
	f := GenerateField(cfg, nil, 800, 600, testRNG())
	for i, p := range f.Snow {
		if math.Abs(p.X) > 600 || math.Abs(p.Height) > 450 || math.Abs(p.Depth) > 250 {
			t.Fatalf("Snow[%d] = %+v outside spawn volume", i, p)
		}
		if p.Speed < 0.5 || p.Speed >= 1.5 {
			t.Fatalf("Snow[%d].Speed = %v", i, p.Speed)
		}
	}
	for i, s := range f.Stars {
		if s.X < 0 || s.X >= 800 || s.Y < 0 || s.Y >= 600 {
			t.Fatalf("Stars[%d] at (%v, %v) off-surface", i, s.X, s.Y)
		}
		if s.BaseAlpha < 0.2 || s.BaseAlpha >= 0.9 {
			t.Fatalf("Stars[%d].BaseAlpha = %v", i, s.BaseAlpha)
		}
	}
}

func TestGenerateFieldDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Particles = ParticleCounts{Tree: 50, Snow: 20, Floor: 20, Stars: 20}
	a := GenerateField(cfg, nil, 640, 480, rand.New(rand.NewPCG(9, 9)))
	b := GenerateField(cfg, nil, 640, 480, rand.New(rand.NewPCG(9, 9)))
	for i := range a.Tree {
		if a.Tree[i] != b.Tree[i] {
			t.Fatalf("Tree[%d] differs between runs with the same seed", i)
		}
	}
	for i := range a.Snow {
		if a.Snow[i] != b.Snow[i] {
			t.Fatalf("Snow[%d] differs between runs with the same seed", i)
		}
	}
	for i := range a.Stars {
		if a.Stars[i] != b.Stars[i] {
			t.Fatalf("Stars[%d] differs between runs with the same seed", i)
		}
	}
}
