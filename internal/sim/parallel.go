package sim

import (
	"context"
	"sync"
)

// Ensemble runs the same configuration over consecutive seeds concurrently.
// newMetrics is called once per run so metric state is never shared.
type Ensemble struct {
	newMetrics func() []Metric
	numRuns    int
	seedStart  int64
}

func NewEnsemble(newMetrics func() []Metric, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{newMetrics: newMetrics, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg RunConfig) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			sim := New()
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					sim.AddMetric(m)
				}
			}

			results[idx], errs[idx] = sim.Run(ctx, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
