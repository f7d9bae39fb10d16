package evergreen

import (
	"math"
	"math/rand/v2"
)

const (
	sleighStartMargin   = 300  // first entry starts this far past the right edge
	sleighRespawnMargin = 200  // later entries start this far past the right edge
	sleighExitX         = -400 // deactivates once X passes this boundary
	sleighStartHeight   = 0.1  // fraction of surface height before the first bob
	sleighCruiseHeight  = 0.15 // fraction of surface height the bob oscillates around
	sleighBobAmplitude  = 20
	sleighBobFrequency  = 0.02
)

// Sleigh is the decorative entity that crosses the sky from right to left.
type Sleigh struct {
	X, Y   float64
	Speed  float64
	Active bool
}

// newSleigh places the sleigh just past the right edge, already active.
func newSleigh(cfg SleighConfig, w, h int) Sleigh {
	return Sleigh{
		X:      float64(w) + sleighStartMargin,
		Y:      float64(h) * sleighStartHeight,
		Speed:  cfg.Speed,
		Active: true,
	}
}

// update advances the Active/Inactive machine by one tick. While active the
// sleigh moves left and bobs; once it crosses the exit boundary it goes
// inactive, and each inactive tick reactivates it at the right edge with
// probability cfg.RespawnChance drawn from rng.
func (s *Sleigh) update(cfg SleighConfig, frame uint64, w, h int, rng *rand.Rand) {
	if !s.Active {
		if rng.Float64() < cfg.RespawnChance {
			s.Active = true
			s.X = float64(w) + sleighRespawnMargin
		}
		return
	}
	s.X -= s.Speed
	s.Y = float64(h)*sleighCruiseHeight + math.Sin(float64(frame)*sleighBobFrequency)*sleighBobAmplitude
	if s.X < sleighExitX {
		s.Active = false
	}
}

// drawSleigh paints the sleigh and two reindeer from primitives.
func drawSleigh(dst Surface, s *Sleigh, frame uint64) {
	if !s.Active {
		return
	}
	f := float64(frame)
	for k, dx := range [2]float64{-140, -80} {
		bob := math.Sin(f*0.2+float64(k)) * 5
		drawReindeer(dst, s.X+dx, s.Y+bob)
	}
	// Harness line from the second deer to the sleigh.
	dst.FillRect(s.X-70, s.Y-1, 70, 2, Color{0.85, 0.7, 0.3, 0.8})

	red := Color{0.8, 0.1, 0.12, 1}
	gold := Color{1, 0.84, 0, 1}
	dst.FillRect(s.X, s.Y-10, 36, 16, red)
	dst.FillRect(s.X+26, s.Y-20, 10, 12, red)
	dst.FillRect(s.X-2, s.Y+8, 42, 3, gold)
	// Rider.
	dst.FillCircle(s.X+14, s.Y-16, 7, red)
	dst.FillCircle(s.X+14, s.Y-26, 5, Color{1, 0.85, 0.7, 1})
	dst.FillCircle(s.X+14, s.Y-22, 4, ColorWhite)
}

func drawReindeer(dst Surface, x, y float64) {
	brown := Color{0.55, 0.35, 0.2, 1}
	dst.FillRect(x, y-6, 26, 12, brown)
	dst.FillCircle(x-2, y-10, 6, brown)
	dst.FillRect(x+2, y+6, 3, 8, brown)
	dst.FillRect(x+20, y+6, 3, 8, brown)
	dst.FillRect(x-4, y-24, 2, 10, Color{0.85, 0.75, 0.55, 1})
	dst.FillRect(x+1, y-24, 2, 10, Color{0.85, 0.75, 0.55, 1})
	dst.FillCircle(x-7, y-10, 2, Color{0.9, 0.15, 0.15, 1})
}
