package evergreen

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// RunConfig configures the window and loop created by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowFPS draws the FPS/TPS widget in the top-left corner.
	ShowFPS bool
	// Music, when non-empty, is an .mp3 or .ogg path started on the first
	// interaction. Overrides the scene config's Music.
	Music string
	// Context, when set, closes the window once it is done.
	Context context.Context
	// OnStart receives the loop's token. Stopping it closes the window; use
	// Cancel when closing from a signal handler.
	OnStart func(*CancelToken)
}

// game adapts a Scene to ebiten.Game. Every Update and Draw runs under the
// token, so stopping the token waits for the in-flight frame.
type game struct {
	scene   *Scene
	surface *EbitenSurface
	token   *CancelToken
	input   ebitenInput
	fps     *fpsWidget
}

func (g *game) Update() error {
	ran := g.token.run(func() {
		g.input.poll(g.scene)
		g.scene.Update()
	})
	if !ran {
		return ebiten.Termination
	}
	if r := g.scene.testRunner; r != nil && r.Done() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.token.run(func() {
		g.surface.SetTarget(screen)
		g.scene.Draw(g.surface)
		if g.fps != nil {
			g.fps.draw(screen)
		}
	})
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.Resize(outsideWidth, outsideHeight)
	return max(outsideWidth, 1), max(outsideHeight, 1)
}

// Run opens a window and drives the scene with Ebitengine's game loop until
// the window is closed, the context ends, the token passed to OnStart is
// stopped, or an attached TestRunner finishes.
func Run(scene *Scene, cfg RunConfig) error {
	surface, err := NewEbitenSurface(nil)
	if err != nil {
		return err
	}
	defer surface.Release()

	path := cfg.Music
	if path == "" {
		path = scene.cfg.Music
	}
	if path != "" {
		m, err := LoadMusic(audio.NewContext(musicSampleRate), path)
		if err != nil {
			// Music is decoration; the scene still runs without it.
			_, _ = fmt.Fprintf(os.Stderr, "[evergreen] music: %v\n", err)
		} else {
			defer m.Close()
			scene.StartOnInteract(m)
		}
	}

	parent := cfg.Context
	if parent == nil {
		parent = context.Background()
	}
	token := newCancelToken(parent)
	defer close(token.done)
	if cfg.OnStart != nil {
		cfg.OnStart(token)
	}

	g := &game{scene: scene, surface: surface, token: token}
	if cfg.ShowFPS {
		g.fps = &fpsWidget{}
	}

	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
		scene.Resize(cfg.Width, cfg.Height)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
