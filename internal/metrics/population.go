package metrics

import (
	"github.com/san-kum/embersim/internal/particles"
	"github.com/san-kum/embersim/internal/sim"
)

type Population struct {
	name    string
	samples int
	total   float64
	peak    int
}

func NewPopulation() *Population {
	return &Population{name: "population"}
}

func (p *Population) Name() string { return p.name }

func (p *Population) Observe(stats sim.TickStats, sys *particles.System) {
	p.total += float64(stats.Population)
	p.samples++
	p.peak = max(p.peak, stats.Population)
}

func (p *Population) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.total / float64(p.samples)
}

// Peak is the largest live count seen since the last Reset.
func (p *Population) Peak() int { return p.peak }

func (p *Population) Reset() {
	p.samples = 0
	p.total = 0
	p.peak = 0
}

// SpawnRate is the mean number of particles inserted per tick.
type SpawnRate struct {
	name    string
	samples int
	spawned int
}

func NewSpawnRate() *SpawnRate {
	return &SpawnRate{name: "spawn_rate"}
}

func (s *SpawnRate) Name() string { return s.name }

func (s *SpawnRate) Observe(stats sim.TickStats, sys *particles.System) {
	s.spawned += stats.Spawned
	s.samples++
}

func (s *SpawnRate) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.spawned) / float64(s.samples)
}

func (s *SpawnRate) Reset() {
	s.samples = 0
	s.spawned = 0
}
