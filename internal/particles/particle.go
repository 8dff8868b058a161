package particles

import (
	"math"

	"github.com/san-kum/embersim/internal/dynamo"
)

// LifeEpsilon floors Life0 wherever it is used as a divisor.
const LifeEpsilon = 1e-6

// Particle is a single flame particle. It is plain data; the System owns
// every live instance and hands out copies only.
type Particle struct {
	Position dynamo.Vec3
	Velocity dynamo.Vec3
	Life     float64 // seconds remaining
	Life0    float64 // lifetime at spawn
	Radius   float64
	Seed     float64 // turbulence phase offset
}

// AgeFraction is 0 at spawn and approaches 1 at death.
func (p Particle) AgeFraction() float64 {
	return dynamo.Clamp01(1 - p.Life/math.Max(p.Life0, LifeEpsilon))
}

func (p Particle) Alive() bool { return p.Life > 0 }
