package render

import (
	"sort"

	"github.com/san-kum/embersim/internal/camera"
	"github.com/san-kum/embersim/internal/dynamo"
	"github.com/san-kum/embersim/internal/palette"
	"github.com/san-kum/embersim/internal/particles"
)

// DepthSort orders particles farthest first by Position.Dot(forward). The
// sort is stable, so ties keep insertion order.
func DepthSort(ps []particles.Particle, forward dynamo.Vec3) {
	depthSort(ps, forward, nil)
}

// depthSort computes each depth once into keys, growing it as needed, and
// returns the buffer for reuse.
func depthSort(ps []particles.Particle, forward dynamo.Vec3, keys []float64) []float64 {
	keys = keys[:0]
	for _, p := range ps {
		keys = append(keys, p.Position.Dot(forward))
	}
	sort.Stable(byDepth{ps: ps, keys: keys})
	return keys
}

type byDepth struct {
	ps   []particles.Particle
	keys []float64
}

func (b byDepth) Len() int           { return len(b.ps) }
func (b byDepth) Less(i, j int) bool { return b.keys[i] > b.keys[j] }
func (b byDepth) Swap(i, j int) {
	b.ps[i], b.ps[j] = b.ps[j], b.ps[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}

type Renderer struct {
	rim    []dynamo.Vec3
	box    []Segment
	sorted []particles.Particle
	depths []float64
}

func New() *Renderer {
	return &Renderer{
		rim: BurnerRim(BurnerRadius, BurnerSegments),
		box: BoxEdges(BoxHalfSize),
	}
}

// Draw renders one frame and returns the number of particles drawn.
func (r *Renderer) Draw(s Surface, cam *camera.Camera, sys *particles.System, energy float64) int {
	s.BeginFrame(cam)
	defer s.EndFrame()

	s.SetLighting(false)
	s.SetBlend(BlendAlpha)
	s.TriangleFan(particles.Burner, r.rim, BurnerColor)
	s.SetBlend(BlendAdditive)

	r.sorted = sys.Snapshot(r.sorted[:0])
	r.depths = depthSort(r.sorted, cam.Forward(), r.depths)

	s.SetLighting(false)
	s.SetDepthWrite(false)
	for _, p := range r.sorted {
		age := p.AgeFraction()
		c := FromColorful(palette.Color(energy, age), palette.Alpha(age))
		s.Sphere(p.Position, p.Radius, c)
	}
	s.SetDepthWrite(true)

	s.SetBlend(BlendAlpha)
	s.Lines(r.box, BoxColor)
	s.SetBlend(BlendAdditive)

	return len(r.sorted)
}
