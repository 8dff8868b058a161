package sim

import (
	"time"

	"github.com/san-kum/embersim/internal/particles"
)

const (
	DefaultDt       = 1.0 / 120.0
	DefaultInterval = 8 * time.Millisecond

	// MaxCatchUp bounds the ticks a single Pump may run.
	MaxCatchUp = 8
)

type TickStats struct {
	Tick       uint64
	Spawned    int
	Retired    int
	Population int
}

type Metric interface {
	Name() string
	Observe(stats TickStats, sys *particles.System)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(stats TickStats, sys *particles.System)
}

type RunConfig struct {
	Ticks        int
	Energy       float64
	Dt           float64
	Seed         int64
	MaxParticles int
	Phase        string
}

type Result struct {
	Population []int
	Spawns     []int
	Metrics    map[string]float64

	TicksRun int
	Spawned  uint64
	Retired  uint64
	Evicted  uint64
}
