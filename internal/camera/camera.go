// Package camera holds the orbit angles the renderer looks through.
//
// The view transform matches the classic fixed-function sequence
// translate(Offset) * rotateX(Pitch) * rotateY(Yaw), so a world point is
// yawed first and pitched second.
package camera

import (
	"math"

	"github.com/san-kum/embersim/internal/dynamo"
)

const (
	// Sensitivity is degrees of rotation per pixel of drag.
	Sensitivity = 0.5

	DefaultPitch = 18.0
	DefaultYaw   = 35.0
)

// Offset places the flame in front of the eye.
var Offset = dynamo.V3(0, -0.2, -5)

// Camera is written only by input and read only by rendering. Angles are in
// degrees and are not clamped.
type Camera struct {
	Pitch float64
	Yaw   float64
}

func New(pitch, yaw float64) *Camera {
	return &Camera{Pitch: pitch, Yaw: yaw}
}

func Default() *Camera { return New(DefaultPitch, DefaultYaw) }

// OnDragDelta applies a pointer drag in pixels.
func (c *Camera) OnDragDelta(dx, dy float64) {
	c.Pitch += dy * Sensitivity
	c.Yaw += dx * Sensitivity
}

func (c *Camera) Reset() {
	c.Pitch, c.Yaw = DefaultPitch, DefaultYaw
}

// Rotate applies the camera rotation without the translation.
func (c *Camera) Rotate(p dynamo.Vec3) dynamo.Vec3 {
	cy, sy := cosSin(c.Yaw)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cx, sx := cosSin(c.Pitch)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	return p
}

// ToView maps a world point into eye space; the eye looks down -Z.
func (c *Camera) ToView(p dynamo.Vec3) dynamo.Vec3 {
	return c.Rotate(p).Add(Offset)
}

// Forward is the world-space direction the eye looks along. Larger
// p.Dot(Forward()) means farther from the viewer.
func (c *Camera) Forward() dynamo.Vec3 {
	cp, sp := cosSin(c.Pitch)
	cy, sy := cosSin(c.Yaw)
	return dynamo.V3(cp*sy, -sp, -cp*cy)
}

func cosSin(deg float64) (float64, float64) {
	r := deg * math.Pi / 180
	return math.Cos(r), math.Sin(r)
}
