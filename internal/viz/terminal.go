package viz

import (
	"math"

	"github.com/san-kum/embersim/internal/camera"
	"github.com/san-kum/embersim/internal/dynamo"
	"github.com/san-kum/embersim/internal/render"
)

// TerminalCellAspect approximates a monospace cell's height to width ratio.
const TerminalCellAspect = 2.0

// TerminalSurface splats geometry onto a GlowCanvas. It has no depth
// buffer; SetDepthWrite and SetLighting are accepted and ignored.
type TerminalSurface struct {
	Canvas *GlowCanvas

	proj  Projector
	cam   *camera.Camera
	blend render.BlendMode
}

func NewTerminalSurface(w, h int) *TerminalSurface {
	s := &TerminalSurface{}
	s.Resize(w, h)
	return s
}

func (s *TerminalSurface) Resize(w, h int) {
	s.Canvas = NewGlowCanvas(w, h)
	s.proj = NewProjector(s.Canvas.Width, s.Canvas.Height, TerminalCellAspect)
}

func (s *TerminalSurface) BeginFrame(cam *camera.Camera) {
	s.cam = cam
	s.blend = render.BlendAdditive
	s.Canvas.Clear()
}

func (s *TerminalSurface) EndFrame() { s.cam = nil }

func (s *TerminalSurface) SetBlend(mode render.BlendMode) { s.blend = mode }
func (s *TerminalSurface) SetDepthWrite(enabled bool)     {}
func (s *TerminalSurface) SetLighting(enabled bool)       {}

func (s *TerminalSurface) put(x, y int, c render.RGBA, weight float64) {
	if s.blend == render.BlendAlpha {
		s.Canvas.Blend(x, y, c.Colorful(), c.A*weight)
		return
	}
	s.Canvas.Add(x, y, c.Colorful(), c.A*weight)
}

// Sphere splats a soft disc. Spheres smaller than a cell deposit their whole
// alpha into the cell under the centre.
func (s *TerminalSurface) Sphere(center dynamo.Vec3, radius float64, c render.RGBA) {
	if s.cam == nil {
		return
	}
	x, y, dist, ok := s.proj.Project(s.cam, center)
	if !ok {
		return
	}
	rx, ry := s.proj.Radius(radius, dist)
	cx, cy := int(math.Floor(x)), int(math.Floor(y))
	if rx < 1 && ry < 1 {
		s.put(cx, cy, c, 1)
		return
	}

	for j := int(math.Floor(y - ry)); j <= int(math.Ceil(y+ry)); j++ {
		for i := int(math.Floor(x - rx)); i <= int(math.Ceil(x+rx)); i++ {
			dx := (float64(i) + 0.5 - x) / rx
			dy := (float64(j) + 0.5 - y) / ry
			d2 := dx*dx + dy*dy
			if d2 > 1 {
				continue
			}
			s.put(i, j, c, 1-d2)
		}
	}
}

func (s *TerminalSurface) Lines(segs []render.Segment, c render.RGBA) {
	if s.cam == nil {
		return
	}
	for _, seg := range segs {
		x0, y0, _, ok0 := s.proj.Project(s.cam, seg.A)
		x1, y1, _, ok1 := s.proj.Project(s.cam, seg.B)
		if !ok0 || !ok1 {
			continue
		}
		DrawLine(int(x0), int(y0), int(x1), int(y1), func(x, y int) { s.put(x, y, c, 1) })
	}
}

// TriangleFan fills the projected rim polygon, which must be convex.
func (s *TerminalSurface) TriangleFan(center dynamo.Vec3, rim []dynamo.Vec3, c render.RGBA) {
	if s.cam == nil || len(rim) < 3 {
		return
	}
	pts := make([][2]float64, 0, len(rim))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range rim {
		x, y, _, ok := s.proj.Project(s.cam, p)
		if !ok {
			return
		}
		pts = append(pts, [2]float64{x, y})
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	for j := max(int(minY), 0); j <= min(int(maxY), s.Canvas.Height-1); j++ {
		for i := max(int(minX), 0); i <= min(int(maxX), s.Canvas.Width-1); i++ {
			if insideConvex(pts, float64(i)+0.5, float64(j)+0.5) {
				s.put(i, j, c, 1)
			}
		}
	}
}

// insideConvex reports whether (x, y) lies inside a convex polygon of
// either winding. Degenerate edges are skipped.
func insideConvex(pts [][2]float64, x, y float64) bool {
	sign := 0.0
	n := len(pts)
	for k := 0; k < n; k++ {
		a, b := pts[k], pts[(k+1)%n]
		cross := (b[0]-a[0])*(y-a[1]) - (b[1]-a[1])*(x-a[0])
		if cross == 0 {
			continue
		}
		if sign == 0 {
			sign = cross
		} else if (cross > 0) != (sign > 0) {
			return false
		}
	}
	return sign != 0
}

var _ render.Surface = (*TerminalSurface)(nil)
