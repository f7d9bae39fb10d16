// Package evergreen renders an animated pseudo-3D Christmas tree built from
// particles onto any 2D drawing surface.
//
// A [Scene] owns every layer: a spiral tree of colored particles revealed
// from the base up, a rotating floor, falling snow, twinkling stars, a sleigh
// that crosses the sky trailing gold dust, and clickable memory markers that
// show an image once its asset has loaded. When the reveal completes a
// crowning star lights up and a greeting fades in.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window and drives
// the scene from Ebitengine's game loop:
//
//	cfg, err := evergreen.LoadConfig("scene.yaml")
//	// ...
//	var loader evergreen.Loader
//	markers := loader.LoadAll(ctx, cfg.Memories)
//	scene, err := evergreen.NewScene(cfg, markers, 1024, 768)
//	// ...
//	evergreen.Run(scene, evergreen.RunConfig{Title: "Evergreen", Width: 1024, Height: 768})
//
// For other backends, implement [Surface] and drive [Scene.Tick] from a
// [Scheduler]. The term subpackage renders into a terminal with tcell:
//
//	tok := scene.Start(evergreen.TickerScheduler{}, surface)
//	defer tok.Stop()
//
// # Ticks and drawing
//
// [Scene.Update] advances the reveal, the sleigh and its trail, snow, stars
// and the shared rotation by one frame. [Scene.Draw] projects every visible
// particle, sorts them back to front and draws them. Draw also rebuilds the
// hit regions of ready markers and publishes them for [Scene.Pick].
//
// Update and Draw run on one goroutine. [Scene.Resize], [Scene.Pick],
// [Scene.Click] and [Scene.PressKey] may be called from any goroutine.
//
// # Signals
//
// [Scene.OnRevealed] fires once when the tree is complete.
// [Scene.OnInteract] fires on every click, tap or key press, and
// [Scene.OnSelect] fires when a click lands on a ready marker.
//
// # Configuration
//
// [DefaultConfig] holds the stock constants. [LoadConfig] overlays a YAML
// file and EVERGREEN_* environment variables (EVERGREEN_SEED,
// EVERGREEN_REVEAL_SPEED, EVERGREEN_PARTICLES_TREE, ...).
package evergreen
