package sim

import (
	"math"
	"time"

	"github.com/san-kum/embersim/internal/dynamo"
	"github.com/san-kum/embersim/internal/particles"
)

// Clock drives a particle system at a fixed simulation step. Every tick
// spawns at the current energy and then advances by dt, regardless of how
// much wall time actually passed.
type Clock struct {
	sys      *particles.System
	dt       float64
	interval time.Duration
	energy   float64

	acc       time.Duration
	ticks     uint64
	observers []Observer
}

// NewClock returns a clock for sys. Non-positive dt or interval fall back to
// DefaultDt and DefaultInterval.
func NewClock(sys *particles.System, dt float64, interval time.Duration) *Clock {
	if !(dt > 0) || math.IsInf(dt, 0) {
		dt = DefaultDt
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Clock{sys: sys, dt: dt, interval: interval}
}

func (c *Clock) AddObserver(o Observer) { c.observers = append(c.observers, o) }

// SetEnergy clamps v into [0,1]; NaN becomes 0.
func (c *Clock) SetEnergy(v float64) { c.energy = dynamo.Clamp01(v) }

func (c *Clock) Energy() float64           { return c.energy }
func (c *Clock) Dt() float64               { return c.dt }
func (c *Clock) Interval() time.Duration   { return c.interval }
func (c *Clock) System() *particles.System { return c.sys }
func (c *Clock) Ticks() uint64             { return c.ticks }

func (c *Clock) Tick() TickStats {
	spawned := c.sys.Spawn(c.energy)
	retired := c.sys.Advance(c.dt, c.energy)
	c.ticks++

	stats := TickStats{
		Tick:       c.ticks,
		Spawned:    spawned,
		Retired:    retired,
		Population: c.sys.Len(),
	}
	for _, o := range c.observers {
		o.OnTick(stats, c.sys)
	}
	return stats
}

// Pump adds elapsed wall time and runs every whole interval that fits, up to
// MaxCatchUp. Time beyond the cap is dropped so a stalled host does not
// spiral. It returns the number of ticks run.
func (c *Clock) Pump(elapsed time.Duration) int {
	if elapsed > 0 {
		c.acc += elapsed
	}
	n := 0
	for c.acc >= c.interval && n < MaxCatchUp {
		c.Tick()
		c.acc -= c.interval
		n++
	}
	if c.acc >= c.interval {
		c.acc %= c.interval
	}
	return n
}

// Reset clears the particle system and the pending wall time.
func (c *Clock) Reset() {
	c.sys.Reset()
	c.acc = 0
	c.ticks = 0
}
