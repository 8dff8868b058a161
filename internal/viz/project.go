package viz

import (
	"math"

	"github.com/san-kum/embersim/internal/camera"
	"github.com/san-kum/embersim/internal/dynamo"
)

// FovY is the vertical field of view used by every non-GL surface, matching
// the GL window.
const FovY = 45.0

// Projector maps world points through the camera onto a width x height
// raster. CellAspect is the height of one raster unit relative to its width;
// terminal cells are roughly twice as tall as wide.
type Projector struct {
	Width, Height float64
	CellAspect    float64
	Near          float64
}

func NewProjector(width, height int, cellAspect float64) Projector {
	if cellAspect <= 0 {
		cellAspect = 1
	}
	return Projector{Width: float64(width), Height: float64(height), CellAspect: cellAspect, Near: 0.01}
}

func (p Projector) focal() float64 {
	return 1 / math.Tan(FovY*math.Pi/360)
}

// Project returns raster coordinates and the view distance of a world
// point. ok is false for points behind the near plane.
func (p Projector) Project(cam *camera.Camera, world dynamo.Vec3) (x, y, dist float64, ok bool) {
	v := cam.ToView(world)
	dist = -v.Z
	if dist <= p.Near {
		return 0, 0, dist, false
	}
	f := p.focal()
	h := p.Height * p.CellAspect
	aspect := p.Width / h

	ndcX := f / aspect * v.X / dist
	ndcY := f * v.Y / dist
	x = (ndcX + 1) / 2 * p.Width
	y = (1 - ndcY) / 2 * p.Height
	return x, y, dist, true
}

// Radius returns the projected radius of a sphere at dist in raster
// columns and rows.
func (p Projector) Radius(r, dist float64) (cols, rows float64) {
	if dist <= p.Near {
		return 0, 0
	}
	px := r * p.focal() / dist * p.Height * p.CellAspect / 2
	return px, px / p.CellAspect
}
