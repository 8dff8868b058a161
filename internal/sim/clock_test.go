package sim

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/embersim/internal/particles"
)

type fixedPhase float64

func (f fixedPhase) Phase() float64 { return float64(f) }

func newTestClock() *Clock {
	sys := particles.New(particles.WithSeed(11), particles.WithPhase(fixedPhase(0.5)))
	return NewClock(sys, DefaultDt, DefaultInterval)
}

func TestClockDefaults(t *testing.T) {
	tests := []struct {
		name     string
		dt       float64
		interval time.Duration
	}{
		{"zero", 0, 0},
		{"negative", -1, -time.Second},
		{"NaN dt", math.NaN(), DefaultInterval},
		{"Inf dt", math.Inf(1), DefaultInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClock(particles.New(particles.WithSeed(1)), tt.dt, tt.interval)
			if c.Dt() != DefaultDt {
				t.Errorf("Dt() = %v, want %v", c.Dt(), DefaultDt)
			}
			if c.Interval() != DefaultInterval {
				t.Errorf("Interval() = %v, want %v", c.Interval(), DefaultInterval)
			}
		})
	}
}

func TestClockSetEnergyClamps(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{1.7, 1},
		{math.NaN(), 0},
	}

	c := newTestClock()
	for _, tt := range tests {
		c.SetEnergy(tt.in)
		if got := c.Energy(); got != tt.want {
			t.Errorf("SetEnergy(%v): Energy() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClockTick(t *testing.T) {
	c := newTestClock()
	c.SetEnergy(1)

	stats := c.Tick()
	if stats.Tick != 1 {
		t.Errorf("first tick numbered %d", stats.Tick)
	}
	if stats.Spawned != 10 {
		t.Errorf("spawned %d at full energy, want 10", stats.Spawned)
	}
	if stats.Retired != 0 {
		t.Errorf("retired %d on first tick", stats.Retired)
	}
	if stats.Population != c.System().Len() {
		t.Errorf("population %d, system len %d", stats.Population, c.System().Len())
	}
}

func TestClockPump(t *testing.T) {
	tests := []struct {
		name    string
		elapsed []time.Duration
		want    []int
	}{
		{"under one interval", []time.Duration{5 * time.Millisecond}, []int{0}},
		{"accumulates", []time.Duration{5 * time.Millisecond, 5 * time.Millisecond}, []int{0, 1}},
		{"exact frame", []time.Duration{16 * time.Millisecond}, []int{2}},
		{"negative ignored", []time.Duration{-time.Second, 8 * time.Millisecond}, []int{0, 1}},
		{"catch up capped", []time.Duration{time.Second, 8 * time.Millisecond}, []int{MaxCatchUp, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClock()
			for i, d := range tt.elapsed {
				if got := c.Pump(d); got != tt.want[i] {
					t.Errorf("Pump(%v) #%d = %d, want %d", d, i, got, tt.want[i])
				}
			}
		})
	}
}

type countingObserver struct {
	ticks []uint64
}

func (o *countingObserver) OnTick(stats TickStats, sys *particles.System) {
	o.ticks = append(o.ticks, stats.Tick)
}

func TestClockObserverAndReset(t *testing.T) {
	c := newTestClock()
	obs := &countingObserver{}
	c.AddObserver(obs)
	c.SetEnergy(0.5)

	for i := 0; i < 30; i++ {
		c.Tick()
	}
	if len(obs.ticks) != 30 || obs.ticks[29] != 30 {
		t.Fatalf("observer saw %v", obs.ticks)
	}

	c.Pump(5 * time.Millisecond)
	c.Reset()
	if c.System().Len() != 0 || c.Ticks() != 0 {
		t.Errorf("after reset len=%d ticks=%d", c.System().Len(), c.Ticks())
	}
	if n := c.Pump(5 * time.Millisecond); n != 0 {
		t.Errorf("pending time survived reset: %d ticks", n)
	}
}

func TestAfterSkipsWarmup(t *testing.T) {
	c := newTestClock()
	m := &testMetric{}
	c.AddObserver(After(5, m))
	for i := 0; i < 12; i++ {
		c.Tick()
	}
	if m.count != 7 {
		t.Errorf("metric observed %d ticks, want 7", m.count)
	}
}

func TestSeriesRecorderBounded(t *testing.T) {
	c := newTestClock()
	c.SetEnergy(1)
	rec := NewSeriesRecorder(16)
	c.AddObserver(rec)
	for i := 0; i < 40; i++ {
		c.Tick()
	}
	if len(rec.Series) != 16 {
		t.Fatalf("series length %d, want 16", len(rec.Series))
	}
	if rec.Series[15] != float64(c.System().Len()) {
		t.Errorf("last sample %v, live %d", rec.Series[15], c.System().Len())
	}
}

type populationLog struct {
	pops []float64
}

func (l *populationLog) OnTick(stats TickStats, sys *particles.System) {
	l.pops = append(l.pops, float64(stats.Population))
}

func TestSeriesRecorderReusesBuffer(t *testing.T) {
	c := newTestClock()
	c.SetEnergy(0.7)
	rec := NewSeriesRecorder(8)
	all := &populationLog{}
	c.AddObserver(rec)
	c.AddObserver(all)

	for i := 0; i < 8; i++ {
		c.Tick()
	}
	first := &rec.Series[0]

	for i := 0; i < 50; i++ {
		c.Tick()
		if &rec.Series[0] != first {
			t.Fatalf("tick %d: series buffer reallocated", c.Ticks())
		}
		if len(rec.Series) != 8 {
			t.Fatalf("series length %d, want 8", len(rec.Series))
		}
	}

	want := all.pops[len(all.pops)-8:]
	for i := range want {
		if rec.Series[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, rec.Series[i], want[i])
		}
	}
}
