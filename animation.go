package evergreen

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Fade animates a single opacity value between two levels. Call Update(dt)
// each tick; Value holds the current level and Done turns true once the
// tween has finished.
//
// A nil *Fade is a fade that never started: Update is a no-op and Level
// reports 0.
type Fade struct {
	tween *gween.Tween
	Value float64
	Done  bool
}

// NewFade creates a fade from one level to another over duration seconds
// using the easing function. A non-positive duration jumps straight to the
// target.
func NewFade(from, to float64, duration float32, fn ease.TweenFunc) *Fade {
	if duration <= 0 {
		return &Fade{Value: to, Done: true}
	}
	if fn == nil {
		fn = ease.Linear
	}
	return &Fade{tween: gween.New(float32(from), float32(to), duration, fn), Value: from}
}

// FadeIn is NewFade(0, 1, ...) with an in-out quadratic curve.
func FadeIn(duration float32) *Fade {
	return NewFade(0, 1, duration, ease.InOutQuad)
}

// Update advances the fade by dt seconds.
func (f *Fade) Update(dt float32) {
	if f == nil || f.Done {
		return
	}
	val, finished := f.tween.Update(dt)
	f.Value = float64(val)
	f.Done = finished
}

// Level returns the current value, or 0 for a nil fade.
func (f *Fade) Level() float64 {
	if f == nil {
		return 0
	}
	return f.Value
}
