package evergreen

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"
)

// tickSeconds is the simulated duration of one tick. The simulation is
// frame-based; only the overlay fades are timed in seconds.
const tickSeconds = float32(1.0 / 60)

// Scene is the top-level object that owns every particle layer, the state
// machines, the per-frame render buffers and the published hit registry.
//
// Update and Draw must run on a single goroutine (the tick goroutine).
// Resize, Size, Pick, Hovering, Click and PressKey are safe to call from any
// goroutine.
type Scene struct {
	cfg   *Config
	rng   *rand.Rand
	debug bool

	field    Field
	proj     Projector
	reveal   *Reveal
	sleigh   Sleigh
	trail    *Trail
	overlay  *Overlay
	rotation float64
	frame    uint64

	// Applied dimensions, owned by the tick goroutine.
	width, height int
	// Requested dimensions, packed as w<<32 | h.
	size atomic.Uint64

	// Render state
	items     []DrawItem
	sortBuf   []DrawItem
	hits      HitRegistry
	published atomic.Pointer[HitRegistry]

	handlers handlerRegistry

	// Input injection
	injectMu    sync.Mutex
	injectQueue []syntheticEvent
	testRunner  *TestRunner

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string
}

// NewScene validates cfg, generates every particle layer for a w×h surface
// and returns a scene ready to tick. A nil cfg means DefaultConfig. Markers
// become the image layer in order; their assets may still be loading.
func NewScene(cfg *Config, markers []Marker, w, h int) (*Scene, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new scene: %w", err)
	}
	proj, err := NewProjector(cfg.Camera, cfg.maxReach())
	if err != nil {
		return nil, fmt.Errorf("new scene: %w", err)
	}
	w, h = max(w, 1), max(h, 1)
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	s := &Scene{
		cfg:           cfg,
		rng:           rng,
		debug:         cfg.Debug,
		proj:          proj,
		reveal:        NewReveal(cfg.Reveal),
		sleigh:        newSleigh(cfg.Sleigh, w, h),
		trail:         newTrail(cfg.Sleigh.MaxTrail),
		overlay:       newOverlay(cfg.Greeting),
		width:         w,
		height:        h,
		ScreenshotDir: "screenshots",
	}
	s.field = GenerateField(cfg, markers, w, h, rng)
	s.proj.SetViewport(w, h)
	s.size.Store(packSize(w, h))
	s.published.Store(&HitRegistry{})

	s.OnSelect(s.overlay.open)
	return s, nil
}

// Config returns the configuration the scene was built from.
func (s *Scene) Config() *Config { return s.cfg }

// Field returns the generated particle layers.
func (s *Scene) Field() *Field { return &s.field }

// Reveal returns the reveal state machine.
func (s *Scene) Reveal() *Reveal { return s.reveal }

// Sleigh returns a copy of the sleigh state.
func (s *Scene) Sleigh() Sleigh { return s.sleigh }

// Trail returns the sleigh's dust trail.
func (s *Scene) Trail() *Trail { return s.trail }

// Overlay returns the greeting and viewer layer.
func (s *Scene) Overlay() *Overlay { return s.overlay }

// Frame returns the number of completed ticks.
func (s *Scene) Frame() uint64 { return s.frame }

// Rotation returns the accumulated tree rotation in radians.
func (s *Scene) Rotation() float64 { return s.rotation }

// SetDebugMode enables or disables per-frame timing stats on stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// --- Resize ---

// Resize requests new surface dimensions. Values below 1 are clamped to 1.
// The change is applied atomically at the start of the next tick.
func (s *Scene) Resize(w, h int) {
	s.size.Store(packSize(w, h))
}

// Size returns the most recently requested dimensions.
func (s *Scene) Size() (w, h int) {
	return unpackSize(s.size.Load())
}

func packSize(w, h int) uint64 {
	w = min(max(w, 1), math.MaxInt32)
	h = min(max(h, 1), math.MaxInt32)
	return uint64(uint32(w))<<32 | uint64(uint32(h))
}

func unpackSize(v uint64) (w, h int) {
	return int(v >> 32), int(uint32(v))
}

func (s *Scene) applyResize() {
	w, h := s.Size()
	if w == s.width && h == s.height {
		return
	}
	sx := float64(w) / float64(s.width)
	sy := float64(h) / float64(s.height)
	for i := range s.field.Stars {
		s.field.Stars[i].X *= sx
		s.field.Stars[i].Y *= sy
	}
	s.width, s.height = w, h
	s.proj.SetViewport(w, h)
}

// --- Tick ---

// Update advances the simulation by one tick.
func (s *Scene) Update() {
	s.applyResize()
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjected()

	if s.reveal.Advance() {
		s.overlay.showGreeting()
		s.handlers.fireRevealed()
	}
	s.rotation += s.cfg.Tree.RotationSpeed

	s.sleigh.update(s.cfg.Sleigh, s.frame, s.width, s.height, s.rng)
	if s.sleigh.Active && s.frame%uint64(s.cfg.Sleigh.TrailInterval) == 0 {
		s.trail.spawn(s.sleigh.X, s.sleigh.Y, s.rng)
	}
	s.trail.update()

	s.updateSnow()
	s.updateStars()
	s.overlay.update(tickSeconds)
	s.frame++
}

func (s *Scene) updateSnow() {
	f := float64(s.frame)
	half := float64(s.height) / 2
	for i := range s.field.Snow {
		p := &s.field.Snow[i]
		p.Height += p.Speed
		p.X += math.Sin(f*snowSwayFreq+p.Phase) * snowSway
		if p.Height > half {
			p.Height = -half
			p.X = (s.rng.Float64() - 0.5) * float64(s.width) * 1.5
		}
	}
}

func (s *Scene) updateStars() {
	for i := range s.field.Stars {
		st := &s.field.Stars[i]
		st.X -= starDrift
		if st.X < 0 {
			st.X = float64(s.width)
		}
	}
}

// Draw renders the current state onto dst and publishes the hit regions of
// this frame for Pick.
func (s *Scene) Draw(dst Surface) {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.drawBackground(dst)
	drawSleigh(dst, &s.sleigh, s.frame)
	s.trail.draw(dst)

	s.buildDrawList()
	if s.debug {
		stats.buildTime = time.Since(t0)
		t0 = time.Now()
	}

	s.sortDrawList()
	if s.debug {
		stats.sortTime = time.Since(t0)
		stats.itemCount = len(s.items)
		t0 = time.Now()
	}

	s.hits.reset()
	s.executeDrawList(dst)
	s.published.Store(s.hits.snapshot())

	s.drawCrown(dst)
	s.drawSnow(dst)
	s.overlay.draw(dst, s.width, s.height)

	if s.debug {
		stats.drawTime = time.Since(t0)
		stats.hitCount = s.hits.Len()
		stats.trailCount = s.trail.AliveCount()
		s.debugLog(stats)
	}
	s.flushScreenshots(dst)
}

// Tick runs Update then Draw, and flushes dst if it buffers its output.
func (s *Scene) Tick(dst Surface) {
	s.Update()
	s.Draw(dst)
	if f, ok := dst.(Flusher); ok {
		f.Flush()
	}
}

// Start drives Tick(dst) from sched until the returned token is stopped.
func (s *Scene) Start(sched Scheduler, dst Surface) *CancelToken {
	return sched.Start(func() { s.Tick(dst) })
}

// --- Picking ---

// Pick returns the topmost ready marker under (x, y) in the last completed
// frame.
func (s *Scene) Pick(x, y float64) (Selection, bool) {
	return s.published.Load().Pick(x, y)
}

// Hovering reports whether (x, y) is over a pickable marker.
func (s *Scene) Hovering(x, y float64) bool {
	_, ok := s.Pick(x, y)
	return ok
}

// handleClick routes a pointer click. Any click is an interaction; while the
// viewer is open it only closes the viewer.
func (s *Scene) handleClick(x, y float64) {
	s.handlers.fireInteract(InteractContext{X: x, Y: y, Pointer: true})
	if _, open := s.overlay.Viewing(); open {
		s.overlay.close()
		return
	}
	if sel, ok := s.Pick(x, y); ok {
		s.handlers.fireSelect(sel)
	}
}

func (s *Scene) handleKey() {
	s.handlers.fireInteract(InteractContext{})
}
