package render

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/embersim/internal/camera"
	"github.com/san-kum/embersim/internal/dynamo"
)

type BlendMode int

const (
	// BlendAdditive composites src*alpha + dst.
	BlendAdditive BlendMode = iota
	// BlendAlpha composites src*alpha + dst*(1-alpha).
	BlendAlpha
)

func (b BlendMode) String() string {
	switch b {
	case BlendAdditive:
		return "additive"
	case BlendAlpha:
		return "alpha"
	default:
		return "unknown"
	}
}

// RGBA is a straight (non-premultiplied) colour with channels in [0,1].
type RGBA struct {
	R, G, B, A float64
}

func FromColorful(c colorful.Color, alpha float64) RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

func (c RGBA) Colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

type Segment struct {
	A, B dynamo.Vec3
}

// Surface is a 3D immediate-draw target with a depth buffer and switchable
// blending. Calls between BeginFrame and EndFrame are in world space; the
// surface applies the camera transform.
type Surface interface {
	BeginFrame(cam *camera.Camera)
	EndFrame()

	SetBlend(mode BlendMode)
	SetDepthWrite(enabled bool)
	SetLighting(enabled bool)

	Sphere(center dynamo.Vec3, radius float64, c RGBA)
	Lines(segs []Segment, c RGBA)
	TriangleFan(center dynamo.Vec3, rim []dynamo.Vec3, c RGBA)
}
