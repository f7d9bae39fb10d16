package evergreen

import "slices"

// EventType identifies a scene-level signal.
type EventType uint8

const (
	EventRevealed EventType = iota // reveal reached its ceiling; fires once
	EventInteract                  // first and every later user interaction
	EventSelect                    // a ready memory marker was clicked
)

// --- Handler registry ---

type revealHandler struct {
	id uint32
	fn func()
}

type interactHandler struct {
	id uint32
	fn func(InteractContext)
}

type selectHandler struct {
	id uint32
	fn func(Selection)
}

type handlerRegistry struct {
	revealed []revealHandler
	interact []interactHandler
	selected []selectHandler
	nextID   uint32
}

// InteractContext describes a user interaction. Key presses carry no position.
type InteractContext struct {
	X, Y    float64
	Pointer bool
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventRevealed:
		h.reg.revealed = removeHandler(h.reg.revealed, h.id, func(e revealHandler) uint32 { return e.id })
	case EventInteract:
		h.reg.interact = removeHandler(h.reg.interact, h.id, func(e interactHandler) uint32 { return e.id })
	case EventSelect:
		h.reg.selected = removeHandler(h.reg.selected, h.id, func(e selectHandler) uint32 { return e.id })
	}
}

// removeHandler returns a new slice without id. The old backing array is left
// untouched so a dispatch already ranging over it can finish.
func removeHandler[T any](s []T, id uint32, idOf func(T) uint32) []T {
	for i := range s {
		if idOf(s[i]) == id {
			return slices.Delete(slices.Clone(s), i, i+1)
		}
	}
	return s
}

func (r *handlerRegistry) next() uint32 {
	r.nextID++
	return r.nextID
}

// OnRevealed registers fn to run once, on the tick the reveal completes.
// Handlers run on the tick goroutine; register them before Start.
func (s *Scene) OnRevealed(fn func()) CallbackHandle {
	id := s.handlers.next()
	s.handlers.revealed = append(s.handlers.revealed, revealHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventRevealed}
}

// OnInteract registers fn to run on every click, touch or key press.
func (s *Scene) OnInteract(fn func(InteractContext)) CallbackHandle {
	id := s.handlers.next()
	s.handlers.interact = append(s.handlers.interact, interactHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventInteract}
}

// OnSelect registers fn to run when a click lands on a ready marker.
func (s *Scene) OnSelect(fn func(Selection)) CallbackHandle {
	id := s.handlers.next()
	s.handlers.selected = append(s.handlers.selected, selectHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventSelect}
}

func (r *handlerRegistry) fireRevealed() {
	for _, h := range r.revealed {
		h.fn()
	}
}

func (r *handlerRegistry) fireInteract(ctx InteractContext) {
	for _, h := range r.interact {
		h.fn(ctx)
	}
}

func (r *handlerRegistry) fireSelect(sel Selection) {
	for _, h := range r.selected {
		h.fn(sel)
	}
}
