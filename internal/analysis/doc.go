// Package analysis provides offline tools for looking at headless runs.
//
//   - [PowerSpectrum] and [DominantFrequency]: flicker of a per-tick series
//   - [EnergySweep]: steady-state statistics across a range of energies
//   - [SideProfile]: ASCII density plot of the flame seen from the side
//
// # Flicker
//
// The live count oscillates as spawn bursts age out together:
//
//	res, _ := sim.New().Run(ctx, sim.RunConfig{Ticks: 4096, Energy: 0.5})
//	hz := analysis.DominantFrequency(analysis.Ints(res.Population), 120)
package analysis
