package evergreen

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ebitenInput polls Ebitengine for clicks, taps and key presses and keeps
// the cursor shape in sync with what is under the pointer.
type ebitenInput struct {
	touchIDs []ebiten.TouchID
	keys     []ebiten.Key
	pointer  bool // cursor currently shows the pointer shape
}

// poll routes this frame's new input to the scene. Must run on the tick
// goroutine, before Scene.Update.
func (in *ebitenInput) poll(s *Scene) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		s.handleClick(float64(x), float64(y))
	}

	in.touchIDs = inpututil.AppendJustPressedTouchIDs(in.touchIDs[:0])
	for _, id := range in.touchIDs {
		x, y := ebiten.TouchPosition(id)
		s.handleClick(float64(x), float64(y))
	}

	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	if len(in.keys) > 0 {
		s.handleKey()
	}

	x, y := ebiten.CursorPosition()
	_, viewing := s.overlay.Viewing()
	in.setPointer(viewing || s.Hovering(float64(x), float64(y)))
}

func (in *ebitenInput) setPointer(on bool) {
	if on == in.pointer {
		return
	}
	in.pointer = on
	if on {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}
