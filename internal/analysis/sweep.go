package analysis

import (
	"context"
	"strings"

	"github.com/san-kum/embersim/internal/metrics"
	"github.com/san-kum/embersim/internal/sim"
)

// SweepPoint is the steady state measured at one energy.
type SweepPoint struct {
	Energy         float64
	MeanPopulation float64
	PeakPopulation int
	MeanAge        float64
	MeanRadius     float64
}

// EnergySweep runs cfg once per energy in [lo, hi] and records the steady
// state. The first transient ticks of each run are discarded before
// measuring. cfg.Energy is ignored.
func EnergySweep(ctx context.Context, cfg sim.RunConfig, lo, hi float64, steps, transient int) ([]SweepPoint, error) {
	if steps <= 1 {
		steps = 2
	}
	if transient < 0 {
		transient = 0
	}
	step := (hi - lo) / float64(steps-1)

	results := make([]SweepPoint, 0, steps)
	for i := 0; i < steps; i++ {
		energy := lo + float64(i)*step

		pop := metrics.NewPopulation()
		age := metrics.NewMeanAge()
		radius := metrics.NewMeanRadius()
		s := sim.New()
		s.AddObserver(sim.After(transient, pop, age, radius))

		run := cfg
		run.Energy = energy
		run.Ticks = cfg.Ticks + transient
		if _, err := s.Run(ctx, run); err != nil {
			return results, err
		}

		results = append(results, SweepPoint{
			Energy:         energy,
			MeanPopulation: pop.Value(),
			PeakPopulation: pop.Peak(),
			MeanAge:        age.Value(),
			MeanRadius:     radius.Value(),
		})
	}

	return results, nil
}

// SweepToASCII plots mean population against energy.
func SweepToASCII(data []SweepPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	maxVal := 0.0
	for _, p := range data {
		maxVal = max(maxVal, p.MeanPopulation)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i, p := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}
		row := height - 1 - int(p.MeanPopulation/maxVal*float64(height-1))
		if row >= 0 && row < height {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
