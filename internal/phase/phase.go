// Package phase provides the slowly varying signal that flavours particle
// turbulence. None of these are physically meaningful; they only keep the
// flame from repeating itself.
package phase

import (
	"fmt"
	"math"
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/san-kum/embersim/internal/dynamo"
	"github.com/san-kum/embersim/internal/particles"
)

const (
	NameNoise   = "noise"
	NameTimer   = "timer"
	NameCounter = "counter"
)

// Names lists the accepted source names.
var Names = []string{NameNoise, NameTimer, NameCounter}

// New returns the named phase source.
func New(name string, seed int64) (particles.PhaseSource, error) {
	switch name {
	case NameNoise, "":
		return NewNoise(seed, DefaultNoiseStep), nil
	case NameTimer:
		return NewTimer(time.Now), nil
	case NameCounter:
		return NewCounter(DefaultCounterStep), nil
	default:
		return nil, fmt.Errorf("%w: phase source %q (want one of %v)", dynamo.ErrInvalidConfig, name, Names)
	}
}

// Timer reproduces the wall-clock remainder signal: milliseconds modulo one
// second, scaled to [0,1).
type Timer struct {
	now func() time.Time
}

func NewTimer(now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{now: now}
}

func (t *Timer) Phase() float64 {
	ms := t.now().UnixMilli() % 1000
	if ms < 0 {
		ms += 1000
	}
	return float64(ms) / 1000.0
}

// DefaultCounterStep wraps once per second at the nominal 120 Hz tick.
const DefaultCounterStep = 1.0 / 120.0

// Counter is a deterministic sawtooth that advances a fixed step per sample.
type Counter struct {
	step, v float64
}

func NewCounter(step float64) *Counter {
	return &Counter{step: math.Abs(step)}
}

func (c *Counter) Phase() float64 {
	out := c.v
	c.v = wrap(c.v + c.step)
	return out
}

// DefaultNoiseStep drifts through roughly one noise feature every few seconds.
const DefaultNoiseStep = 0.004

// Noise walks a line through 2D opensimplex noise, one step per sample.
type Noise struct {
	noise opensimplex.Noise
	step  float64
	x     float64
}

func NewNoise(seed int64, step float64) *Noise {
	return &Noise{noise: opensimplex.NewNormalized(seed), step: step}
}

func (n *Noise) Phase() float64 {
	v := n.noise.Eval2(n.x, 0.5)
	n.x += n.step
	return wrap(v)
}

// wrap folds v into [0,1).
func wrap(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	v = v - math.Floor(v)
	if v >= 1 {
		return 0
	}
	return v
}
