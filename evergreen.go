package evergreen

import (
	"image/color"
	"math/rand/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when a surface submits the draw.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// WithAlpha returns c with its alpha replaced by a.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// RGBA returns c as a premultiplied color.Color for image APIs.
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// RGB is an 8-bit color triple as written in scene configuration palettes.
type RGB struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// Color converts the triple to a Color with the given alpha.
func (c RGB) Color(alpha float64) Color {
	return Color{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, alpha}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Range is a min/max range for randomized particle attributes.
type Range struct {
	Min, Max float64
}

// Random returns a float64 in [Min, Max) drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Kind distinguishes the particle layers of the scene.
type Kind uint8

const (
	KindTree  Kind = iota // spiral body of the tree
	KindSnow              // falling snow, drawn in front of everything
	KindFloor             // disk of dust at the tree base
	KindImage             // memory marker backed by an image asset
)

// String returns the layer name.
func (k Kind) String() string {
	switch k {
	case KindTree:
		return "tree"
	case KindSnow:
		return "snow"
	case KindFloor:
		return "floor"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
