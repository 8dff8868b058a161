package particles

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/embersim/internal/dynamo"
)

const (
	MaxParticles = 2500

	SpawnRateMin = 1.5
	SpawnRateMax = 10.0

	DefaultGrowth    = 0.25
	DefaultCentering = 0.999
)

// Burner is the centre of the spawn disk.
var Burner = dynamo.V3(0, -1.0, 0)

// PhaseSource supplies the slowly varying turbulence phase in [0,1).
type PhaseSource interface {
	Phase() float64
}

type System struct {
	live  []Particle
	spare []Particle

	rng   *rand.Rand
	phase PhaseSource

	maxParticles int
	growth       float64
	centering    float64

	spawned uint64
	retired uint64
	evicted uint64
	ticks   uint64
}

type Option func(*System)

func WithRand(r *rand.Rand) Option {
	return func(s *System) { s.rng = r }
}

func WithSeed(seed int64) Option {
	return func(s *System) { s.rng = rand.New(rand.NewSource(seed)) }
}

func WithPhase(p PhaseSource) Option {
	return func(s *System) { s.phase = p }
}

// WithMaxParticles overrides the population cap; values below 1 are ignored.
func WithMaxParticles(n int) Option {
	return func(s *System) {
		if n >= 1 {
			s.maxParticles = n
		}
	}
}

func New(opts ...Option) *System {
	s := &System{
		maxParticles: MaxParticles,
		growth:       DefaultGrowth,
		centering:    DefaultCentering,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.live = make([]Particle, 0, s.maxParticles+int(SpawnRateMax)+1)
	s.spare = make([]Particle, 0, cap(s.live))
	return s
}

// Spawn inserts this tick's new particles at the burner and returns how many
// were inserted. The fractional part of the rate is rounded stochastically so
// the long-run mean equals lerp(SpawnRateMin, SpawnRateMax, energy).
func (s *System) Spawn(energy float64) int {
	e := dynamo.Clamp01(energy)

	rate := dynamo.Lerp(SpawnRateMin, SpawnRateMax, e)
	count := int(rate)
	if s.rng.Float64() < rate-float64(count) {
		count++
	}

	for i := 0; i < count; i++ {
		s.live = append(s.live, s.newParticle(e))
	}
	s.spawned += uint64(count)

	s.enforceCap()
	return count
}

func (s *System) newParticle(e float64) Particle {
	// U^0.6 biases samples toward the centre of the disk.
	rMax := 0.18 + 0.10*(1-e)
	angle := s.rng.Float64() * 2 * math.Pi
	rad := math.Pow(s.rng.Float64(), 0.6) * rMax
	pos := dynamo.V3(
		Burner.X+math.Cos(angle)*rad,
		Burner.Y+s.uniform(0, 0.05),
		Burner.Z+math.Sin(angle)*rad,
	)

	baseUp := dynamo.Lerp(0.9, 2.4, e)
	side := dynamo.Lerp(0.45, 0.9, e)
	vel := dynamo.V3(
		s.uniform(-side, side),
		s.uniform(baseUp*0.6, baseUp*1.1),
		s.uniform(-side, side),
	)

	life0 := s.uniform(dynamo.Lerp(0.55, 0.85, e), dynamo.Lerp(0.85, 1.25, e))
	radius := s.uniform(dynamo.Lerp(0.045, 0.030, e), dynamo.Lerp(0.070, 0.050, e))

	return Particle{
		Position: pos,
		Velocity: vel,
		Life:     life0,
		Life0:    life0,
		Radius:   radius,
		Seed:     s.rng.Float64() * 9999.0,
	}
}

func (s *System) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.rng.Float64()
}

// enforceCap trims from the front so the most recently inserted survive.
func (s *System) enforceCap() {
	excess := len(s.live) - s.maxParticles
	if excess <= 0 {
		return
	}
	n := copy(s.live, s.live[excess:])
	s.live = s.live[:n]
	s.evicted += uint64(excess)
}

// Advance ages every particle by dt, drops the ones that die, and integrates
// the survivors. It returns the number retired. Negative or NaN dt is treated
// as zero.
func (s *System) Advance(dt, energy float64) int {
	if math.IsNaN(dt) || dt < 0 {
		dt = 0
	}
	e := dynamo.Clamp01(energy)

	buoyancy := dynamo.Lerp(1.2, 3.2, e)
	swirl := dynamo.Lerp(0.8, 2.1, e)
	damping := dynamo.Lerp(0.985, 0.992, e)
	expand := 1 + s.growth*dt

	t := 0.0
	if s.phase != nil {
		t = s.phase.Phase()
	}

	next := s.spare[:0]
	retired := 0
	for _, p := range s.live {
		p.Life -= dt
		if p.Life <= 0 {
			retired++
			continue
		}

		age := 1 - p.Life/math.Max(p.Life0, LifeEpsilon)

		p.Velocity.Y += buoyancy * dt

		ph := p.Seed*0.001 + age*6.0 + t*3.0
		tx := math.Sin(ph*3.7) * math.Cos(ph*1.9)
		tz := math.Cos(ph*2.9) * math.Sin(ph*2.3)
		p.Velocity.X += tx * swirl * dt
		p.Velocity.Z += tz * swirl * dt

		p.Velocity = p.Velocity.Scale(damping)
		p.Position = p.Position.Add(p.Velocity.Scale(dt))
		p.Radius *= expand

		p.Position.X *= s.centering
		p.Position.Z *= s.centering

		next = append(next, p)
	}

	s.spare = s.live
	s.live = next
	s.retired += uint64(retired)
	s.ticks++
	return retired
}

func (s *System) Len() int { return len(s.live) }

// Each calls fn with a copy of every live particle in insertion order.
func (s *System) Each(fn func(Particle)) {
	for _, p := range s.live {
		fn(p)
	}
}

// Snapshot appends copies of the live particles to dst.
func (s *System) Snapshot(dst []Particle) []Particle {
	return append(dst, s.live...)
}

// Reset drops every particle and zeroes the counters. Tuning is kept.
func (s *System) Reset() {
	s.live = s.live[:0]
	s.spare = s.spare[:0]
	s.spawned, s.retired, s.evicted, s.ticks = 0, 0, 0, 0
}

func (s *System) MaxParticles() int { return s.maxParticles }
func (s *System) Spawned() uint64   { return s.spawned }
func (s *System) Retired() uint64   { return s.retired }
func (s *System) Evicted() uint64   { return s.evicted }
func (s *System) Ticks() uint64     { return s.ticks }

func (s *System) GetParams() map[string]float64 {
	return map[string]float64{
		"max_particles": float64(s.maxParticles),
		"growth":        s.growth,
		"centering":     s.centering,
	}
}

func (s *System) SetParam(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s=%v", dynamo.ErrParameterBounds, name, v)
	}
	switch name {
	case "max_particles":
		if v < 1 {
			return fmt.Errorf("%w: max_particles=%v", dynamo.ErrParameterBounds, v)
		}
		s.maxParticles = int(v)
		s.enforceCap()
	case "growth":
		if v < 0 {
			return fmt.Errorf("%w: growth=%v", dynamo.ErrParameterBounds, v)
		}
		s.growth = v
	case "centering":
		if v <= 0 || v > 1 {
			return fmt.Errorf("%w: centering=%v", dynamo.ErrParameterBounds, v)
		}
		s.centering = v
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParameter, name)
	}
	return nil
}
