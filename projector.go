package evergreen

import (
	"fmt"
	"math"
)

// markerRadiusBoost is how far outside the tree base the first memory marker
// sits; the marker spiral is the widest ring around the trunk.
const markerRadiusBoost = 80

// minDenominator keeps the perspective divide away from zero.
const minDenominator = 1e-3

// Projection is one particle mapped to the screen.
type Projection struct {
	// X and Y are screen coordinates.
	X, Y float64
	// Depth is the pre-projection world-z used as the sort key; larger is farther.
	Depth float64
	// Scale is the perspective factor to apply to any size derived from the particle.
	Scale float64
}

// Projector maps world-space (angle, radius, height) to screen space with a
// single fixed camera looking at the origin.
type Projector struct {
	FOV          float64
	CameraOffset float64
	VerticalTrim float64
	CenterX      float64
	CenterY      float64
}

// NewProjector builds a projector from camera constants. maxReach is the
// largest |world-z| any particle can reach; the constructor rejects cameras
// whose denominator FOV + z + offset could fall to zero within that reach.
func NewProjector(cam CameraConfig, maxReach float64) (Projector, error) {
	if err := checkCamera(cam, maxReach); err != nil {
		return Projector{}, err
	}
	return Projector{
		FOV:          cam.FOV,
		CameraOffset: cam.Offset,
		VerticalTrim: cam.VerticalTrim,
	}, nil
}

func checkCamera(cam CameraConfig, maxReach float64) error {
	for _, v := range []float64{cam.FOV, cam.Offset, cam.VerticalTrim, maxReach} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: fov %v, offset %v, trim %v and reach %v must be finite",
				ErrDegenerateCamera, cam.FOV, cam.Offset, cam.VerticalTrim, maxReach)
		}
	}
	if cam.FOV <= 0 {
		return fmt.Errorf("%w: field of view %v must be positive", ErrDegenerateCamera, cam.FOV)
	}
	if d := cam.FOV + cam.Offset - math.Abs(maxReach); d <= minDenominator {
		return fmt.Errorf("%w: fov %v + offset %v leaves denominator %v at depth -%v",
			ErrDegenerateCamera, cam.FOV, cam.Offset, d, math.Abs(maxReach))
	}
	return nil
}

// SetViewport recenters the projector on a w×h surface.
func (p *Projector) SetViewport(w, h int) {
	p.CenterX = float64(w) / 2
	p.CenterY = float64(h) / 2
}

// Project maps a particle rotated by rotation radians around the vertical axis.
func (p *Projector) Project(angle, radius, height, rotation float64) Projection {
	a := angle + rotation
	wx := math.Cos(a) * radius
	wz := math.Sin(a) * radius
	scale := p.scale(wz)
	return Projection{
		X:     p.CenterX + wx*scale,
		Y:     p.CenterY - height*scale + p.VerticalTrim,
		Depth: wz,
		Scale: scale,
	}
}

// ProjectFlat maps a point already expressed in camera-aligned world space,
// with y pointing down. Used for snow, which does not orbit the tree.
func (p *Projector) ProjectFlat(x, y, z float64) Projection {
	scale := p.scale(z)
	return Projection{
		X:     p.CenterX + x*scale,
		Y:     p.CenterY + y*scale,
		Depth: z,
		Scale: scale,
	}
}

func (p *Projector) scale(z float64) float64 {
	return p.FOV / max(p.FOV+z+p.CameraOffset, minDenominator)
}
