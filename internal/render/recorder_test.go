package render_test

import (
	"fmt"

	"github.com/san-kum/embersim/internal/camera"
	"github.com/san-kum/embersim/internal/dynamo"
	"github.com/san-kum/embersim/internal/render"
)

type sphereCall struct {
	center dynamo.Vec3
	radius float64
	color  render.RGBA
	blend  render.BlendMode
	depth  bool
}

// recorder logs every Surface call as a short string and keeps the
// state each sphere was drawn under.
type recorder struct {
	ops     []string
	spheres []sphereCall
	fans    int
	lines   []render.Segment

	blend    render.BlendMode
	depth    bool
	lighting bool
	inFrame  bool
}

func newRecorder() *recorder {
	return &recorder{depth: true, lighting: true}
}

func (r *recorder) BeginFrame(cam *camera.Camera) {
	r.inFrame = true
	r.ops = append(r.ops, "begin")
}

func (r *recorder) EndFrame() {
	r.inFrame = false
	r.ops = append(r.ops, "end")
}

func (r *recorder) SetBlend(mode render.BlendMode) {
	r.blend = mode
	r.ops = append(r.ops, "blend:"+mode.String())
}

func (r *recorder) SetDepthWrite(enabled bool) {
	r.depth = enabled
	r.ops = append(r.ops, fmt.Sprintf("depth:%v", enabled))
}

func (r *recorder) SetLighting(enabled bool) {
	r.lighting = enabled
	r.ops = append(r.ops, fmt.Sprintf("lighting:%v", enabled))
}

func (r *recorder) Sphere(center dynamo.Vec3, radius float64, c render.RGBA) {
	r.spheres = append(r.spheres, sphereCall{center, radius, c, r.blend, r.depth})
	if n := len(r.ops); n == 0 || r.ops[n-1] != "sphere" {
		r.ops = append(r.ops, "sphere")
	}
}

func (r *recorder) Lines(segs []render.Segment, c render.RGBA) {
	r.lines = append(r.lines, segs...)
	r.ops = append(r.ops, "lines")
}

func (r *recorder) TriangleFan(center dynamo.Vec3, rim []dynamo.Vec3, c render.RGBA) {
	r.fans++
	r.ops = append(r.ops, "fan")
}

var _ render.Surface = (*recorder)(nil)
