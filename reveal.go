package evergreen

import "math"

// RevealState is the phase of the reveal state machine.
type RevealState uint8

const (
	RevealNotStarted RevealState = iota // no tick has run yet
	RevealRevealing                     // progress is climbing
	RevealComplete                      // ceiling reached; terminal
)

// String returns the state name.
func (s RevealState) String() string {
	switch s {
	case RevealNotStarted:
		return "not-started"
	case RevealRevealing:
		return "revealing"
	case RevealComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Reveal drives the progress scalar that gates visibility. Progress never
// decreases and never exceeds the configured ceiling.
type Reveal struct {
	cfg      RevealConfig
	progress float64
	state    RevealState
	fired    bool
}

// NewReveal creates a reveal machine in the NotStarted state.
func NewReveal(cfg RevealConfig) *Reveal {
	return &Reveal{cfg: cfg}
}

// Advance moves the machine one tick. It returns true exactly once, on the
// tick progress reaches the ceiling; every later call is a no-op.
func (r *Reveal) Advance() bool {
	if r.state == RevealComplete {
		return false
	}
	r.state = RevealRevealing
	r.progress = math.Min(r.progress+r.cfg.Speed, r.cfg.Ceiling)
	if r.progress < r.cfg.Ceiling {
		return false
	}
	r.state = RevealComplete
	if r.fired {
		return false
	}
	r.fired = true
	return true
}

// Progress returns the current progress in [0, ceiling].
func (r *Reveal) Progress() float64 { return r.progress }

// State returns the current phase.
func (r *Reveal) State() RevealState { return r.state }

// TreeVisible reports whether a tree particle at normalized height h is shown.
func (r *Reveal) TreeVisible(h float64) bool {
	return h <= r.progress
}

// IsTip reports whether normalized height h lies on the reveal frontier.
func (r *Reveal) IsTip(h float64) bool {
	return math.Abs(h-r.progress) < r.cfg.TipBand
}

// ImageVisible reports whether a marker at normalized height h is shown.
// Markers trail the tree body by the lookahead margin.
func (r *Reveal) ImageVisible(h float64) bool {
	return h <= r.progress-r.cfg.Lookahead
}

// FloorVisible reports whether the floor layer has switched on.
func (r *Reveal) FloorVisible() bool {
	return r.progress >= r.cfg.FloorThreshold
}

// CrownVisible reports whether the star on top of the tree is lit.
func (r *Reveal) CrownVisible() bool {
	return r.progress >= r.cfg.CrownThreshold
}
