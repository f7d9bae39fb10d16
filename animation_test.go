package evergreen

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestFadeReachesTarget(t *testing.T) {
	f := NewFade(0, 1, 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	f.Update(0.5)
	if f.Done {
		t.Fatal("Done after half the duration")
	}
	if math.Abs(f.Level()-0.5) > 0.01 {
		t.Errorf("Level at half = %f, want ~0.5", f.Level())
	}
	f.Update(0.5)
	if !f.Done {
		t.Fatal("expected Done after full duration")
	}
	assertNear(t, "Level", f.Level(), 1)

	f.Update(1)
	assertNear(t, "Level after done", f.Level(), 1)
}

func TestFadeOut(t *testing.T) {
	f := NewFade(1, 0, 0.5, nil)
	assertNear(t, "start", f.Level(), 1)
	f.Update(0.25)
	f.Update(0.25)
	if !f.Done || f.Level() != 0 {
		t.Errorf("Level = %v, Done = %v; want 0, true", f.Level(), f.Done)
	}
}

func TestFadeInEasesIn(t *testing.T) {
	f := FadeIn(1)
	f.Update(0.25)
	// In-out quadratic lags linear early on.
	if l := f.Level(); l <= 0 || l >= 0.25 {
		t.Errorf("Level at quarter = %f, want in (0, 0.25)", l)
	}
}

func TestFadeZeroDuration(t *testing.T) {
	f := NewFade(0, 1, 0, ease.Linear)
	if !f.Done || f.Level() != 1 {
		t.Errorf("zero-duration fade: Level = %v, Done = %v", f.Level(), f.Done)
	}
	f.Update(0.1)
	assertNear(t, "Level", f.Level(), 1)
}

func TestFadeNil(t *testing.T) {
	var f *Fade
	f.Update(1) // must not panic
	if f.Level() != 0 {
		t.Errorf("nil Level = %v, want 0", f.Level())
	}
}
