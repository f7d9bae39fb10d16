package evergreen

// Overlay layout constants, in pixels.
const (
	greetingTop       = 0.15 // fraction of surface height
	greetingTitleSize = 64
	greetingSubSize   = 22
	viewerFadeSeconds = 0.25
	viewerFrame       = 10
	viewerMaxWidth    = 0.8
	viewerMaxHeight   = 0.7
	viewerTitleSize   = 30
	viewerHintSize    = 14
	viewerHint        = "Click anywhere to close"
)

var (
	colorGreeting = Color{1, 0.92, 0.6, 1}
	colorShade    = Color{0, 0, 0, 0.85}
	colorHalo     = Color{1, 215.0 / 255, 0, 0.3}
)

// Overlay draws the screen-space layer above the scene: the greeting that
// fades in once the tree is revealed, and the memory viewer opened by
// selecting a marker.
type Overlay struct {
	greeting GreetingConfig
	fade     *Fade

	viewing    *Selection
	viewerFade *Fade
}

func newOverlay(g GreetingConfig) *Overlay {
	return &Overlay{greeting: g}
}

// showGreeting starts the greeting fade. Later calls are ignored.
func (o *Overlay) showGreeting() {
	if o.fade != nil {
		return
	}
	o.fade = FadeIn(float32(o.greeting.FadeSeconds))
}

// GreetingAlpha returns the current greeting opacity in [0, 1].
func (o *Overlay) GreetingAlpha() float64 {
	return clamp01(o.fade.Level())
}

// open shows sel in the viewer.
func (o *Overlay) open(sel Selection) {
	o.viewing = &sel
	o.viewerFade = FadeIn(viewerFadeSeconds)
}

// close hides the viewer.
func (o *Overlay) close() {
	o.viewing = nil
	o.viewerFade = nil
}

// Viewing returns the selection shown in the viewer, if any.
func (o *Overlay) Viewing() (Selection, bool) {
	if o.viewing == nil {
		return Selection{}, false
	}
	return *o.viewing, true
}

func (o *Overlay) update(dt float32) {
	o.fade.Update(dt)
	o.viewerFade.Update(dt)
}

func (o *Overlay) draw(dst Surface, w, h int) {
	fw, fh := float64(w), float64(h)
	if a := o.GreetingAlpha(); a > 0 {
		y := fh * greetingTop
		dst.DrawText(o.greeting.Title, fw/2, y-greetingTitleSize/2, greetingTitleSize, colorGreeting.WithAlpha(a))
		dst.DrawText(o.greeting.Subtitle, fw/2, y+greetingTitleSize/2+8, greetingSubSize, ColorWhite.WithAlpha(a))
	}
	if o.viewing == nil {
		return
	}
	a := clamp01(o.viewerFade.Level())
	dst.FillRect(0, 0, fw, fh, colorShade.WithAlpha(colorShade.A*a))

	sel := o.viewing
	iw, ih := 4.0, 3.0
	if sel.Asset != nil {
		if nw, nh := sel.Asset.Size(); nw > 0 && nh > 0 {
			iw, ih = float64(nw), float64(nh)
		}
	}
	// Fit the image into the viewer box without upscaling.
	fit := min(fw*viewerMaxWidth/iw, fh*viewerMaxHeight/ih, 1)
	iw, ih = iw*fit, ih*fit
	x, y := (fw-iw)/2, (fh-ih)/2-viewerTitleSize
	dst.FillRect(x-viewerFrame*2, y-viewerFrame*2, iw+viewerFrame*4, ih+viewerFrame*4, colorHalo.WithAlpha(colorHalo.A*a))
	dst.FillRect(x-viewerFrame, y-viewerFrame, iw+viewerFrame*2, ih+viewerFrame*2, ColorWhite.WithAlpha(a))
	if sel.Asset != nil {
		dst.DrawImage(sel.Asset, x, y, iw, ih)
	}

	ty := y + ih + viewerFrame + 20
	if sel.Title != "" {
		dst.DrawText(sel.Title, fw/2, ty, viewerTitleSize, ColorWhite.WithAlpha(a))
		ty += viewerTitleSize + 20
	}
	dst.DrawText(viewerHint, fw/2, ty, viewerHintSize, ColorWhite.WithAlpha(0.5*a))
}
