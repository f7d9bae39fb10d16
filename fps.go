package evergreen

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// fpsWidget displays the current FPS and TPS in the top-left corner. The
// label is refreshed roughly every half second.
type fpsWidget struct {
	label  string
	frames int
}

func (w *fpsWidget) draw(screen *ebiten.Image) {
	if w.frames%30 == 0 {
		w.label = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	}
	w.frames++
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	vector.DrawFilledRect(screen, 0, 0, 100, 32, color.RGBA{0, 0, 0, 128}, false)
	ebitenutil.DebugPrintAt(screen, w.label, 2, 0)
}
