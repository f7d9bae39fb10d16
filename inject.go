package evergreen

// syntheticEvent represents a single injected user interaction. Screen
// coordinates are used, identical to real pointer input.
type syntheticEvent struct {
	x, y float64
	key  bool
}

// Click queues a pointer click at the given screen coordinates. The event is
// consumed on a later tick, one event per tick, so it is safe to call from
// any goroutine (a terminal event loop, a test, a script).
func (s *Scene) Click(x, y float64) {
	s.inject(syntheticEvent{x: x, y: y})
}

// PressKey queues a key press. Keys only count as an interaction.
func (s *Scene) PressKey() {
	s.inject(syntheticEvent{key: true})
}

func (s *Scene) inject(evt syntheticEvent) {
	s.injectMu.Lock()
	s.injectQueue = append(s.injectQueue, evt)
	s.injectMu.Unlock()
}

// pendingInjections returns the number of queued events.
func (s *Scene) pendingInjections() int {
	s.injectMu.Lock()
	defer s.injectMu.Unlock()
	return len(s.injectQueue)
}

// processInjected pops one event from the inject queue and routes it like
// real input. Returns true if an event was consumed.
func (s *Scene) processInjected() bool {
	s.injectMu.Lock()
	if len(s.injectQueue) == 0 {
		s.injectMu.Unlock()
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
	s.injectMu.Unlock()

	if evt.key {
		s.handleKey()
	} else {
		s.handleClick(evt.x, evt.y)
	}
	return true
}
