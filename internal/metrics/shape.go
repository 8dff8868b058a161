package metrics

import (
	"math"

	"github.com/san-kum/embersim/internal/particles"
	"github.com/san-kum/embersim/internal/sim"
)

// particleMean averages a per-particle quantity over every live particle of
// every observed tick.
type particleMean struct {
	name  string
	fn    func(particles.Particle) float64
	sum   float64
	count int
}

func (m *particleMean) Name() string { return m.name }

func (m *particleMean) Observe(stats sim.TickStats, sys *particles.System) {
	sys.Each(func(p particles.Particle) {
		m.sum += m.fn(p)
		m.count++
	})
}

func (m *particleMean) Value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}

func (m *particleMean) Reset() {
	m.sum = 0
	m.count = 0
}

func NewMeanRadius() sim.Metric {
	return &particleMean{name: "mean_radius", fn: func(p particles.Particle) float64 { return p.Radius }}
}

func NewMeanAge() sim.Metric {
	return &particleMean{name: "mean_age", fn: particles.Particle.AgeFraction}
}

// Containment is the fraction of observed particles that stayed inside an
// axis-aligned box of the given half size centred on the origin.
type Containment struct {
	name     string
	halfSize float64
	inside   int
	samples  int
}

func NewContainment(halfSize float64) *Containment {
	return &Containment{
		name:     "containment",
		halfSize: halfSize,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(stats sim.TickStats, sys *particles.System) {
	sys.Each(func(p particles.Particle) {
		c.samples++
		if math.Abs(p.Position.X) <= c.halfSize &&
			math.Abs(p.Position.Y) <= c.halfSize &&
			math.Abs(p.Position.Z) <= c.halfSize {
			c.inside++
		}
	})
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return float64(c.inside) / float64(c.samples)
}

func (c *Containment) Reset() {
	c.inside = 0
	c.samples = 0
}

// Default returns the metric set used by headless runs.
func Default() []sim.Metric {
	return []sim.Metric{
		NewPopulation(),
		NewSpawnRate(),
		NewMeanRadius(),
		NewMeanAge(),
		NewContainment(1.2),
	}
}
