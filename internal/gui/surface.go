package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/embersim/internal/camera"
	"github.com/san-kum/embersim/internal/dynamo"
	"github.com/san-kum/embersim/internal/render"
)

// Surface draws through raylib's immediate-mode batch. The raylib camera
// sits at the origin looking down -Z so the view matrix is identity and
// the fixed camera transform is pushed on the matrix stack instead.
type Surface struct {
	Rings  int32
	Slices int32

	eye rl.Camera3D
}

func NewSurface() *Surface {
	return &Surface{
		Rings:  10,
		Slices: 10,
		eye: rl.NewCamera3D(
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 0, -1),
			rl.NewVector3(0, 1, 0),
			45.0,
			rl.CameraPerspective,
		),
	}
}

func (s *Surface) BeginFrame(cam *camera.Camera) {
	rl.BeginMode3D(s.eye)
	rl.PushMatrix()
	rl.Translatef(float32(camera.Offset.X), float32(camera.Offset.Y), float32(camera.Offset.Z))
	rl.Rotatef(float32(cam.Pitch), 1, 0, 0)
	rl.Rotatef(float32(cam.Yaw), 0, 1, 0)
	rl.BeginBlendMode(rl.BlendAdditive)
}

func (s *Surface) EndFrame() {
	rl.EndBlendMode()
	rl.PopMatrix()
	rl.EndMode3D()
}

func (s *Surface) SetBlend(mode render.BlendMode) {
	switch mode {
	case render.BlendAlpha:
		rl.BeginBlendMode(rl.BlendAlpha)
	default:
		rl.BeginBlendMode(rl.BlendAdditive)
	}
}

// SetDepthWrite flushes the pending batch first; the mask applies when the
// batch is drawn, not when vertices are queued.
func (s *Surface) SetDepthWrite(enabled bool) {
	rl.DrawRenderBatchActive()
	if enabled {
		rl.EnableDepthMask()
	} else {
		rl.DisableDepthMask()
	}
}

// SetLighting is a no-op: raylib's default shader is unlit.
func (s *Surface) SetLighting(enabled bool) {}

func (s *Surface) Sphere(center dynamo.Vec3, radius float64, c render.RGBA) {
	rl.DrawSphereEx(vec3(center), float32(radius), s.Rings, s.Slices, toColor(c))
}

func (s *Surface) Lines(segs []render.Segment, c render.RGBA) {
	col := toColor(c)
	for _, seg := range segs {
		rl.DrawLine3D(vec3(seg.A), vec3(seg.B), col)
	}
}

// TriangleFan draws with culling off so the disk shows from below too.
func (s *Surface) TriangleFan(center dynamo.Vec3, rim []dynamo.Vec3, c render.RGBA) {
	col := toColor(c)
	ctr := vec3(center)

	rl.DrawRenderBatchActive()
	rl.DisableBackfaceCulling()
	for i := 0; i+1 < len(rim); i++ {
		rl.DrawTriangle3D(ctr, vec3(rim[i+1]), vec3(rim[i]), col)
	}
	rl.DrawRenderBatchActive()
	rl.EnableBackfaceCulling()
}

func vec3(v dynamo.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func channel(v float64) uint8 {
	return uint8(math.Round(dynamo.Clamp01(v) * 255))
}

func toColor(c render.RGBA) rl.Color {
	return rl.NewColor(channel(c.R), channel(c.G), channel(c.B), channel(c.A))
}

var _ render.Surface = (*Surface)(nil)
