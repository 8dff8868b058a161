package sim

import "github.com/san-kum/embersim/internal/particles"

type afterObserver struct {
	skip    uint64
	metrics []Metric
}

// After returns an Observer that feeds ms only once the first ticks ticks
// have passed, so warm-up does not skew steady-state measurements.
func After(ticks int, ms ...Metric) Observer {
	if ticks < 0 {
		ticks = 0
	}
	return &afterObserver{skip: uint64(ticks), metrics: ms}
}

func (a *afterObserver) OnTick(stats TickStats, sys *particles.System) {
	if stats.Tick <= a.skip {
		return
	}
	for _, m := range a.metrics {
		m.Observe(stats, sys)
	}
}

// SeriesRecorder keeps the per-tick population, most recent last, bounded
// to Cap entries.
type SeriesRecorder struct {
	Cap    int
	Series []float64
}

func NewSeriesRecorder(capacity int) *SeriesRecorder {
	return &SeriesRecorder{Cap: capacity, Series: make([]float64, 0, capacity)}
}

func (r *SeriesRecorder) OnTick(stats TickStats, sys *particles.System) {
	v := float64(stats.Population)
	if r.Cap > 0 && len(r.Series) >= r.Cap {
		n := copy(r.Series, r.Series[len(r.Series)-r.Cap+1:])
		r.Series = r.Series[:n+1]
		r.Series[n] = v
		return
	}
	r.Series = append(r.Series, v)
}
