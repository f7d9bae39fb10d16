package evergreen

// Surface is the 2D drawing target a scene renders onto. Coordinates are
// pixels with the origin at the top-left. Implementations must tolerate any
// finite input, including shapes that lie entirely off-screen.
type Surface interface {
	// Clear fills the whole surface with c.
	Clear(c Color)
	// FillCircle draws a filled circle centered on (x, y).
	FillCircle(x, y, r float64, c Color)
	// FillRect draws a filled axis-aligned rectangle with top-left (x, y).
	FillRect(x, y, w, h float64, c Color)
	// DrawImage draws a ready asset scaled into the rectangle with top-left
	// (x, y). Assets the surface cannot draw are skipped.
	DrawImage(a Asset, x, y, w, h float64)
	// DrawText draws s horizontally centered on x with its top edge at y.
	// size is the nominal font height in pixels.
	DrawText(s string, x, y, size float64, c Color)
}

// Flusher is implemented by surfaces that buffer draws and need an explicit
// present step once per frame. Scene.Tick calls Flush after Draw.
type Flusher interface {
	Flush()
}
