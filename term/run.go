package term

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/evergreen"
)

// Runner drives a scene on an initialized tcell screen.
type Runner struct {
	Screen tcell.Screen
	Scene  *evergreen.Scene
	// Scheduler runs the ticks. Nil means a 60 Hz TickerScheduler.
	Scheduler evergreen.Scheduler
	// CellWidth and CellHeight set the pixel footprint of one cell.
	CellWidth, CellHeight float64

	surface *Surface
	buttons tcell.ButtonMask
}

// Run ticks the scene and routes terminal events to it until ctx ends or
// the user presses Esc, Ctrl-C or q. Ticks run on the scheduler's goroutine;
// events are handed over through the scene's thread-safe entry points.
func (r *Runner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.Screen.EnableMouse()
	r.surface = NewSurface(r.Screen, r.CellWidth, r.CellHeight)
	r.resize(r.Screen.Size())

	sched := r.Scheduler
	if sched == nil {
		sched = evergreen.TickerScheduler{Context: ctx}
	}
	tok := r.Scene.Start(sched, r.surface)
	defer tok.Stop()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go r.poll(events, quit)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !r.handle(ev) {
				return nil
			}
		}
	}
}

// poll forwards screen events until the screen is finalized or quit closes.
func (r *Runner) poll(events chan<- tcell.Event, quit <-chan struct{}) {
	defer close(events)
	for {
		ev := r.Screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-quit:
			return
		}
	}
}

// handle routes one event and reports whether the loop should continue.
func (r *Runner) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		r.Scene.PressKey()
	case *tcell.EventMouse:
		btn := ev.Buttons()
		pressed := btn&tcell.ButtonPrimary != 0 && r.buttons&tcell.ButtonPrimary == 0
		r.buttons = btn
		if pressed {
			col, row := ev.Position()
			r.Scene.Click(r.surface.CellCenter(col, row))
		}
	case *tcell.EventResize:
		r.Screen.Sync()
		r.resize(ev.Size())
	}
	return true
}

func (r *Runner) resize(cols, rows int) {
	r.Scene.Resize(r.surface.PixelSize(cols, rows))
}
