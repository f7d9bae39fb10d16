package evergreen

import (
	"fmt"
	"os"
	"time"
)

// debugLogInterval is the number of frames between two stats lines.
const debugLogInterval = 60

// debugStats holds per-frame timing and draw-list metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	buildTime  time.Duration
	sortTime   time.Duration
	drawTime   time.Duration
	itemCount  int
	hitCount   int
	trailCount int
}

// debugLog prints timing and draw-list stats to stderr once every
// debugLogInterval frames.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug || s.frame%debugLogInterval != 0 {
		return
	}
	total := stats.buildTime + stats.sortTime + stats.drawTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[evergreen] frame %d | build: %v | sort: %v | draw: %v | total: %v\n",
		s.frame, stats.buildTime, stats.sortTime, stats.drawTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[evergreen] items: %d | hit regions: %d | trail: %d | progress: %.3f (%s)\n",
		stats.itemCount, stats.hitCount, stats.trailCount, s.reveal.Progress(), s.reveal.State())
}
