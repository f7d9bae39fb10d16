package evergreen

import (
	"math"
	"math/rand/v2"
)

// Generation constants for the tree spiral and the marker spiral.
const (
	spiralStep     = 0.15  // angle advance per tree particle
	spiralTwist    = 20    // extra turns accumulated from base to tip
	goldenRatio    = 1.618 // marker spiral uses golden-angle steps
	markerSpin     = 3     // golden-angle multiples between markers
	markerBaseRise = 100   // first marker height above the tree base
	markerSpan     = 0.8   // fraction of tree height covered by markers
	markerTaper    = 50    // radius lost from first to last marker
	markerWidthRef = 40
)

// Jitter ranges for randomized particle attributes.
var (
	treeSize  = Range{Min: 2, Max: 4.5}
	floorSize = Range{Min: 1, Max: 3}
	snowSize  = Range{Min: 1.5, Max: 3.5}
	snowSpeed = Range{Min: 0.5, Max: 1.5}
)

// Particle is one element of the scene. Tree, floor and image particles keep
// their Angle, Radius and Height fixed after generation; snow moves every
// tick in X and Height and wraps vertically.
type Particle struct {
	Kind   Kind
	Angle  float64
	Radius float64
	Height float64
	Size   float64
	Speed  float64
	Phase  float64

	// Color is set for tree particles; HasColor is false elsewhere.
	Color    RGB
	HasColor bool

	// Snow only: lateral offset and depth in world units.
	X, Depth float64

	// Image only.
	Asset Asset
	Title string
}

// Star is a screen-space background point that twinkles and drifts.
type Star struct {
	X, Y         float64
	Size         float64
	BaseAlpha    float64
	Phase        float64
	TwinkleSpeed float64
}

// Marker pairs a memory's asset with its title for the image layer.
type Marker struct {
	Asset Asset
	Title string
}

// Field holds every generated layer of the scene.
type Field struct {
	Tree   []Particle
	Snow   []Particle
	Floor  []Particle
	Images []Particle
	Stars  []Star
}

// GenerateField builds all layers once for a w×h surface. Only color choice,
// size jitter, phases and scatter positions are random, and all of it comes
// from rng so a fixed seed reproduces the scene exactly.
func GenerateField(cfg *Config, markers []Marker, w, h int, rng *rand.Rand) Field {
	return Field{
		Tree:   generateTree(cfg, rng),
		Images: generateImages(cfg, markers),
		Floor:  generateFloor(cfg, rng),
		Snow:   generateSnow(cfg, w, h, rng),
		Stars:  generateStars(cfg.Particles.Stars, w, h, rng),
	}
}

// baseHeight is the world-y of the tree base plane.
func baseHeight(t TreeConfig) float64 {
	return -t.Height/2 + t.BaseLift
}

// normalizedHeight rescales a world height to [0, 1] over the tree extent.
func normalizedHeight(t TreeConfig, height float64) float64 {
	return (height - baseHeight(t)) / t.Height
}

func generateTree(cfg *Config, rng *rand.Rand) []Particle {
	n := cfg.Particles.Tree
	if n <= 0 {
		return nil
	}
	t := cfg.Tree
	out := make([]Particle, n)
	for i := range out {
		p := float64(i) / float64(n)
		out[i] = Particle{
			Kind:     KindTree,
			Angle:    float64(i)*spiralStep + p*spiralTwist,
			Radius:   t.BaseRadius * (1 - p),
			Height:   p*t.Height + baseHeight(t),
			Size:     treeSize.Random(rng),
			Phase:    rng.Float64() * 100,
			Color:    cfg.Palette[rng.IntN(len(cfg.Palette))],
			HasColor: true,
		}
	}
	return out
}

func generateImages(cfg *Config, markers []Marker) []Particle {
	if len(markers) == 0 {
		return nil
	}
	t := cfg.Tree
	step := 2 * math.Pi / goldenRatio * markerSpin
	out := make([]Particle, len(markers))
	for i, m := range markers {
		p := float64(i) / float64(len(markers))
		out[i] = Particle{
			Kind:   KindImage,
			Angle:  float64(i) * step,
			Radius: t.BaseRadius + markerRadiusBoost - p*markerTaper,
			Height: -t.Height/2 + markerBaseRise + p*t.Height*markerSpan,
			Size:   markerWidthRef,
			Asset:  m.Asset,
			Title:  m.Title,
		}
	}
	return out
}

func generateFloor(cfg *Config, rng *rand.Rand) []Particle {
	n := cfg.Particles.Floor
	if n <= 0 {
		return nil
	}
	out := make([]Particle, n)
	for i := range out {
		out[i] = Particle{
			Kind:   KindFloor,
			Radius: rng.Float64() * cfg.Tree.FloorRadius,
			Angle:  rng.Float64() * 2 * math.Pi,
			Height: baseHeight(cfg.Tree),
			Size:   floorSize.Random(rng),
		}
	}
	return out
}

func generateSnow(cfg *Config, w, h int, rng *rand.Rand) []Particle {
	n := cfg.Particles.Snow
	if n <= 0 {
		return nil
	}
	out := make([]Particle, n)
	for i := range out {
		out[i] = Particle{
			Kind:   KindSnow,
			X:      (rng.Float64() - 0.5) * float64(w) * 1.5,
			Height: (rng.Float64() - 0.5) * float64(h) * 1.5,
			Depth:  (rng.Float64() - 0.5) * cfg.Tree.SnowDepth,
			Size:   snowSize.Random(rng),
			Speed:  snowSpeed.Random(rng),
			Phase:  rng.Float64() * 2 * math.Pi,
		}
	}
	return out
}

func generateStars(n, w, h int, rng *rand.Rand) []Star {
	if n <= 0 {
		return nil
	}
	out := make([]Star, n)
	for i := range out {
		out[i] = Star{
			X:            rng.Float64() * float64(w),
			Y:            rng.Float64() * float64(h),
			Size:         rng.Float64() * 1.8,
			BaseAlpha:    0.2 + rng.Float64()*0.7,
			Phase:        rng.Float64() * 2 * math.Pi,
			TwinkleSpeed: 0.005 + rng.Float64()*0.02,
		}
	}
	return out
}
