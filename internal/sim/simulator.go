package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/embersim/internal/dynamo"
	"github.com/san-kum/embersim/internal/particles"
	"github.com/san-kum/embersim/internal/phase"
)

// Simulator runs a particle system headless for a fixed number of ticks.
type Simulator struct {
	metrics   []Metric
	observers []Observer
}

func New() *Simulator {
	return &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	src, err := phase.New(cfg.Phase, cfg.Seed)
	if err != nil {
		return nil, err
	}
	opts := []particles.Option{particles.WithSeed(cfg.Seed), particles.WithPhase(src)}
	if cfg.MaxParticles > 0 {
		opts = append(opts, particles.WithMaxParticles(cfg.MaxParticles))
	}
	sys := particles.New(opts...)

	clock := NewClock(sys, cfg.Dt, 0)
	clock.SetEnergy(cfg.Energy)
	for _, o := range s.observers {
		clock.AddObserver(o)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{
		Population: make([]int, 0, cfg.Ticks),
		Spawns:     make([]int, 0, cfg.Ticks),
		Metrics:    make(map[string]float64),
	}

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, sys)
			return result, ctx.Err()
		default:
		}

		stats := clock.Tick()
		for _, m := range s.metrics {
			m.Observe(stats, sys)
		}

		result.Population = append(result.Population, stats.Population)
		result.Spawns = append(result.Spawns, stats.Spawned)
		result.TicksRun++
	}

	s.finish(result, sys)
	return result, nil
}

func (s *Simulator) finish(result *Result, sys *particles.System) {
	result.Spawned = sys.Spawned()
	result.Retired = sys.Retired()
	result.Evicted = sys.Evicted()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg RunConfig) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", dynamo.ErrInvalidConfig, cfg.Ticks)
	}
	if math.IsNaN(cfg.Dt) || cfg.Dt < 0 {
		return fmt.Errorf("%w: dt must not be negative (0 selects the default), got %v", dynamo.ErrInvalidConfig, cfg.Dt)
	}
	if cfg.MaxParticles < 0 {
		return fmt.Errorf("%w: max particles must be positive, got %d", dynamo.ErrInvalidConfig, cfg.MaxParticles)
	}
	return nil
}
