package evergreen

import (
	"context"
	"sync"
	"time"
)

// DefaultTickInterval is one frame at 60 Hz.
const DefaultTickInterval = time.Second / 60

// Scheduler decides when ticks run. Start must never run two ticks at the
// same time.
type Scheduler interface {
	Start(tick func()) *CancelToken
}

// CancelToken stops a running scheduler. The zero value is not usable; get
// one from a Scheduler.
type CancelToken struct {
	cancel context.CancelFunc
	mu     sync.Mutex // held for the whole of every tick
	done   chan struct{}
	ctx    context.Context
}

func newCancelToken(parent context.Context) *CancelToken {
	ctx, cancel := context.WithCancel(parent)
	return &CancelToken{cancel: cancel, ctx: ctx, done: make(chan struct{})}
}

// Stop cancels the schedule and blocks until any in-flight tick has
// returned. No tick starts after Stop returns. Stop is idempotent. From
// inside a tick, such as a signal handler, use Cancel instead.
func (t *CancelToken) Stop() {
	t.cancel()
	t.mu.Lock()
	defer t.mu.Unlock()
}

// Cancel stops the schedule without waiting for the in-flight tick. The
// current tick runs to completion and no later tick starts. Cancel is safe
// to call from inside a tick.
func (t *CancelToken) Cancel() {
	t.cancel()
}

// Stopped reports whether Stop has been called or the parent context ended.
func (t *CancelToken) Stopped() bool {
	return t.ctx.Err() != nil
}

// Done is closed once the scheduler's loop has exited.
func (t *CancelToken) Done() <-chan struct{} {
	return t.done
}

// run executes tick under the token's lock unless the token was stopped.
func (t *CancelToken) run(tick func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ctx.Err() != nil {
		return false
	}
	tick()
	return true
}

// TickerScheduler runs ticks on its own goroutine at a fixed interval.
type TickerScheduler struct {
	// Interval between ticks. Zero means DefaultTickInterval.
	Interval time.Duration
	// Context, when set, stops the schedule when it is done.
	Context context.Context
}

// Start launches the tick goroutine.
func (s TickerScheduler) Start(tick func()) *CancelToken {
	parent := s.Context
	if parent == nil {
		parent = context.Background()
	}
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	tok := newCancelToken(parent)
	go func() {
		defer close(tok.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-tok.ctx.Done():
				return
			case <-ticker.C:
				if !tok.run(tick) {
					return
				}
			}
		}
	}()
	return tok
}

// StepScheduler runs a tick only when Step is called. It is cooperative:
// ticks run on the caller's goroutine.
type StepScheduler struct {
	mu   sync.Mutex
	tick func()
	tok  *CancelToken
}

// Start records tick. Calling Start again replaces the previous schedule.
func (s *StepScheduler) Start(tick func()) *CancelToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tok != nil {
		s.tok.cancel()
	}
	s.tick = tick
	s.tok = newCancelToken(context.Background())
	close(s.tok.done)
	return s.tok
}

// Step runs one tick and reports whether it ran.
func (s *StepScheduler) Step() bool {
	s.mu.Lock()
	tick, tok := s.tick, s.tok
	s.mu.Unlock()
	if tok == nil {
		return false
	}
	return tok.run(tick)
}

// StepN runs up to n ticks and returns how many ran.
func (s *StepScheduler) StepN(n int) int {
	ran := 0
	for range n {
		if !s.Step() {
			break
		}
		ran++
	}
	return ran
}
