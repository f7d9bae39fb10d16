package evergreen

// HitRegion is the padded screen rectangle of one drawn memory marker.
type HitRegion struct {
	Rect  Rect
	Ref   string
	Title string
	Asset Asset
}

// Selection is the result of a successful pick.
type Selection struct {
	Ref   string
	Title string
	Asset Asset
}

// HitRegistry lists the markers drawn in one frame, in paint order. Later
// regions were painted on top of earlier ones.
type HitRegistry struct {
	regions []HitRegion
}

func (r *HitRegistry) reset() {
	clear(r.regions)
	r.regions = r.regions[:0]
}

func (r *HitRegistry) register(h HitRegion) {
	r.regions = append(r.regions, h)
}

// Len returns the number of registered regions.
func (r *HitRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.regions)
}

// Pick returns the topmost region containing (x, y). Edges count as inside.
// Regions are walked in reverse registration order so the one drawn last,
// which is nearest to the viewer, wins.
func (r *HitRegistry) Pick(x, y float64) (Selection, bool) {
	if r == nil {
		return Selection{}, false
	}
	for i := len(r.regions) - 1; i >= 0; i-- {
		h := &r.regions[i]
		if h.Rect.Contains(x, y) {
			return Selection{Ref: h.Ref, Title: h.Title, Asset: h.Asset}, true
		}
	}
	return Selection{}, false
}

// snapshot returns an immutable copy suitable for publishing to readers on
// other goroutines.
func (r *HitRegistry) snapshot() *HitRegistry {
	out := &HitRegistry{}
	if len(r.regions) > 0 {
		out.regions = append(make([]HitRegion, 0, len(r.regions)), r.regions...)
	}
	return out
}

// markerRect is the padded hit rectangle of a marker centered on (x, y)
// whose drawn size is w×h at perspective scale s.
func markerRect(x, y, w, h, s float64) Rect {
	pad := markerPad * s
	return Rect{
		X:      x - w/2 - pad,
		Y:      y - h/2 - pad,
		Width:  w + 2*pad,
		Height: h + 2*pad,
	}
}
