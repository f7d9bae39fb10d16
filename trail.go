package evergreen

import "math/rand/v2"

const (
	trailGravity   = 0.05  // added to vy every tick
	trailDecay     = 0.015 // life lost every tick
	trailDrift     = 2     // bias of vx opposite to the sleigh's travel
	trailOffsetX   = 20    // spawn point relative to the sleigh
	trailOffsetY   = 10
	defaultMaxDust = 256
)

var (
	trailGold  = Color{1, 0.84, 0, 1}
	trailWhite = ColorWhite

	trailVX   = Range{Min: trailDrift - 1, Max: trailDrift + 1}
	trailVY   = Range{Min: -1, Max: 1}
	trailSize = Range{Min: 1, Max: 3}
)

// trailParticle holds per-particle simulation state. Unexported; managed by Trail.
type trailParticle struct {
	x, y   float64
	vx, vy float64
	life   float64 // remaining life in [0, 1]; also the draw alpha
	size   float64
	color  Color
}

// Trail manages the short-lived dust particles spilled behind the sleigh.
// Particles live in a preallocated pool; dead ones are swap-removed.
type Trail struct {
	particles []trailParticle
	alive     int
}

// newTrail creates a Trail with a pool of max particles.
func newTrail(max int) *Trail {
	if max <= 0 {
		max = defaultMaxDust
	}
	return &Trail{particles: make([]trailParticle, max)}
}

// AliveCount returns the number of live particles.
func (t *Trail) AliveCount() int {
	return t.alive
}

// Reset kills all particles.
func (t *Trail) Reset() {
	t.alive = 0
}

// spawn adds one particle behind a sleigh at (sx, sy). Spawns are silently
// dropped when the pool is full.
func (t *Trail) spawn(sx, sy float64, rng *rand.Rand) {
	if t.alive >= len(t.particles) {
		return
	}
	p := &t.particles[t.alive]
	p.x = sx + trailOffsetX
	p.y = sy + trailOffsetY
	p.vx = trailVX.Random(rng)
	p.vy = trailVY.Random(rng)
	p.life = 1
	if rng.Float64() > 0.5 {
		p.color = trailGold
	} else {
		p.color = trailWhite
	}
	p.size = trailSize.Random(rng)
	t.alive++
}

// update advances every particle by one tick and removes the ones whose
// life ran out, so nothing with life <= 0 survives to be drawn.
func (t *Trail) update() {
	i := 0
	for i < t.alive {
		p := &t.particles[i]
		p.x += p.vx
		p.y += p.vy
		p.vy += trailGravity
		p.life -= trailDecay
		if p.life <= 0 {
			// Swap with last alive particle.
			t.alive--
			t.particles[i] = t.particles[t.alive]
			continue
		}
		i++
	}
}

// draw paints live particles with opacity proportional to remaining life.
func (t *Trail) draw(dst Surface) {
	for i := 0; i < t.alive; i++ {
		p := &t.particles[i]
		dst.FillCircle(p.x, p.y, p.size, p.color.WithAlpha(p.life))
	}
}
