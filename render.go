package evergreen

import (
	"math"
	"math/rand/v2"
)

// Marker and crown drawing constants, in unscaled pixels.
const (
	markerWidth       = 60
	markerPad         = 3
	markerDot         = 4
	placeholderAspect = 1.5
	crownLift         = 50 // crown sits this far above the tree top
	crownRadius       = 30
	tipGrowth         = 2.5 // frontier particles are drawn this much larger
	floorSpin         = 0.5 // floor rotates at this fraction of the tree's speed
	floorAlpha        = 0.5
	starDrift         = 0.05
	starTwinkle       = 0.2
	snowSway          = 0.5
	snowSwayFreq      = 0.01
	placeholderPulse  = 0.15
)

var (
	colorBackdrop    = Color{0, 0, 0, 1}
	colorGlow        = Color{15.0 / 255, 15.0 / 255, 42.0 / 255, 1}
	colorFloor       = Color{150.0 / 255, 150.0 / 255, 200.0 / 255, 1}
	colorGold        = Color{1, 215.0 / 255, 0, 1}
	colorPlaceholder = Color{50.0 / 255, 50.0 / 255, 50.0 / 255, 0.5}
)

// DrawItem is one entry of the depth-sorted draw list. It is a plain record:
// Index points back into the field layer selected by Kind.
type DrawItem struct {
	Depth float64
	Kind  Kind
	Index int
	X, Y  float64
	Scale float64
	Tip   bool
	order int // insertion position, used for a stable sort
}

// buildDrawList projects every visible tree, floor and image particle into
// s.items. Particles hidden by the reveal never enter the list.
func (s *Scene) buildDrawList() {
	s.items = s.items[:0]
	t := s.cfg.Tree
	for i := range s.field.Tree {
		p := &s.field.Tree[i]
		h := normalizedHeight(t, p.Height)
		if !s.reveal.TreeVisible(h) {
			continue
		}
		s.appendItem(KindTree, i, s.proj.Project(p.Angle, p.Radius, p.Height, s.rotation), s.reveal.IsTip(h))
	}
	if s.reveal.FloorVisible() {
		for i := range s.field.Floor {
			p := &s.field.Floor[i]
			s.appendItem(KindFloor, i, s.proj.Project(p.Angle, p.Radius, p.Height, s.rotation*floorSpin), false)
		}
	}
	for i := range s.field.Images {
		p := &s.field.Images[i]
		if !s.reveal.ImageVisible(normalizedHeight(t, p.Height)) {
			continue
		}
		s.appendItem(KindImage, i, s.proj.Project(p.Angle, p.Radius, p.Height, s.rotation), false)
	}
}

func (s *Scene) appendItem(k Kind, i int, pr Projection, tip bool) {
	s.items = append(s.items, DrawItem{
		Depth: pr.Depth,
		Kind:  k,
		Index: i,
		X:     pr.X,
		Y:     pr.Y,
		Scale: pr.Scale,
		Tip:   tip,
		order: len(s.items),
	})
}

// --- Merge sort ---

// itemLessOrEqual returns true if a should be drawn before or at the same
// position as b. Farther items (larger depth) come first; using <= on the
// insertion order keeps equal depths stable.
func itemLessOrEqual(a, b *DrawItem) bool {
	if a.Depth != b.Depth {
		return a.Depth > b.Depth
	}
	return a.order <= b.order
}

// sortDrawList sorts s.items in-place using s.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches high-water mark.
func (s *Scene) sortDrawList() {
	n := len(s.items)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]DrawItem, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a := s.items
	b := s.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(s.items, s.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []DrawItem, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if itemLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	k += copy(dst[k:hi], src[i:mid])
	copy(dst[k:hi], src[j:hi])
}

// executeDrawList paints s.items in order and registers a hit region for
// every marker whose asset is ready.
func (s *Scene) executeDrawList(dst Surface) {
	for i := range s.items {
		item := &s.items[i]
		switch item.Kind {
		case KindTree:
			s.drawTreeParticle(dst, item)
		case KindFloor:
			p := &s.field.Floor[item.Index]
			fade := 1 - p.Radius/s.cfg.Tree.FloorRadius
			if s.cfg.Tree.FloorRadius <= 0 {
				fade = 1
			}
			dst.FillCircle(item.X, item.Y, p.Size*item.Scale, colorFloor.WithAlpha(fade*floorAlpha))
		case KindImage:
			s.drawMarker(dst, item)
		}
	}
}

func (s *Scene) drawTreeParticle(dst Surface, item *DrawItem) {
	p := &s.field.Tree[item.Index]
	size := p.Size * item.Scale
	if !item.Tip {
		alpha := 0.7
		if rand.Float64() > 0.9 {
			alpha = 1
		}
		dst.FillCircle(item.X, item.Y, size, p.Color.Color(alpha))
		return
	}
	size *= tipGrowth
	if rand.Float64() > 0.5 {
		dst.FillCircle(item.X, item.Y, size*2, ColorWhite.WithAlpha(rand.Float64()))
	}
	dst.FillCircle(item.X, item.Y, size, ColorWhite)
}

func (s *Scene) drawMarker(dst Surface, item *DrawItem) {
	p := &s.field.Images[item.Index]
	ready := p.Asset != nil && p.Asset.Ready()
	aspect := placeholderAspect
	if ready {
		if w, h := p.Asset.Size(); w > 0 && h > 0 {
			aspect = float64(w) / float64(h)
		}
	}
	w := markerWidth * item.Scale
	h := w / aspect
	frame := markerRect(item.X, item.Y, w, h, item.Scale)
	dst.FillRect(frame.X, frame.Y, frame.Width, frame.Height, ColorWhite)

	x, y := item.X-w/2, item.Y-h/2
	if ready {
		ref := p.Asset.Ref()
		s.hits.register(HitRegion{Rect: frame, Ref: ref, Title: p.Title, Asset: p.Asset})
		dst.DrawImage(p.Asset, x, y, w, h)
		return
	}
	dst.FillRect(x, y, w, h, colorPlaceholder)
	pulse := 0.5 + math.Sin(float64(s.frame)*placeholderPulse)*0.4
	dst.FillCircle(item.X, item.Y, markerDot*item.Scale, colorGold.WithAlpha(pulse))
}

// drawBackground paints the radial glow and the star layer.
func (s *Scene) drawBackground(dst Surface) {
	dst.Clear(colorBackdrop)
	cx, cy := float64(s.width)/2, float64(s.height)/2
	// Approximate the radial gradient with stacked translucent disks.
	const rings = 6
	maxR := float64(s.height)
	for i := range rings {
		r := maxR * float64(rings-i) / rings
		dst.FillCircle(cx, cy, r, colorGlow.WithAlpha(1.0/rings))
	}
	for i := range s.field.Stars {
		st := &s.field.Stars[i]
		alpha := st.BaseAlpha + math.Sin(float64(s.frame)*st.TwinkleSpeed+st.Phase)*starTwinkle
		dst.FillCircle(st.X, st.Y, st.Size, ColorWhite.WithAlpha(max(0, alpha)))
	}
}

// drawCrown paints the glowing star above the tree top.
func (s *Scene) drawCrown(dst Surface) {
	if !s.reveal.CrownVisible() {
		return
	}
	top := s.cfg.Tree.Height/2 + crownLift
	pr := s.proj.Project(0, 0, top, 0)
	// Three disks stand in for the white-to-gold falloff.
	dst.FillCircle(pr.X, pr.Y, crownRadius, colorGold.WithAlpha(0.25))
	dst.FillCircle(pr.X, pr.Y, crownRadius*0.4, colorGold.WithAlpha(0.9))
	dst.FillCircle(pr.X, pr.Y, crownRadius*0.15, ColorWhite)
}

// drawSnow paints the snow layer in front of everything else.
func (s *Scene) drawSnow(dst Surface) {
	for i := range s.field.Snow {
		p := &s.field.Snow[i]
		pr := s.proj.ProjectFlat(p.X, p.Height, p.Depth)
		dst.FillCircle(pr.X, pr.Y, p.Size*pr.Scale, ColorWhite.WithAlpha(0.7+rand.Float64()*0.3))
	}
}
