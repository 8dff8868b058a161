package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/embersim/internal/analysis"
	"github.com/san-kum/embersim/internal/camera"
	"github.com/san-kum/embersim/internal/metrics"
	"github.com/san-kum/embersim/internal/particles"
	"github.com/san-kum/embersim/internal/render"
	"github.com/san-kum/embersim/internal/sim"
	"github.com/san-kum/embersim/internal/storage"
	"github.com/san-kum/embersim/internal/viz"
	"github.com/spf13/cobra"
)

// Report is the summary printed by the run command.
type Report struct {
	ID        string             `json:"id"`
	Energy    float64            `json:"energy"`
	Seed      int64              `json:"seed"`
	Runs      int                `json:"runs"`
	Ticks     int                `json:"ticks"`
	Elapsed   string             `json:"elapsed"`
	Spawned   uint64             `json:"spawned"`
	Retired   uint64             `json:"retired"`
	Evicted   uint64             `json:"evicted"`
	FlickerHz float64            `json:"flicker_hz"`
	Metrics   map[string]float64 `json:"metrics"`

	result  *sim.Result
	profile string
}

// lastSystem keeps a reference to the system a run ticks.
type lastSystem struct {
	sys *particles.System
}

func (l *lastSystem) OnTick(stats sim.TickStats, sys *particles.System) { l.sys = sys }

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if runs < 1 {
		return fmt.Errorf("--runs must be at least 1, got %d", runs)
	}

	ctx, cancel := signalContext()
	defer cancel()

	runCfg := sim.RunConfig{
		Ticks:        ticks,
		Energy:       cfg.Energy,
		Dt:           cfg.Dt,
		Seed:         cfg.ResolvedSeed(),
		MaxParticles: cfg.MaxParticles,
		Phase:        cfg.Phase,
	}

	logger.Info("running", "ticks", ticks, "energy", cfg.Energy, "seed", runCfg.Seed, "runs", runs)
	start := time.Now()

	var report *Report
	if runs == 1 {
		report, err = runSingle(ctx, runCfg)
	} else {
		report, err = runEnsemble(ctx, runCfg, runs)
	}
	if err != nil {
		return err
	}
	report.Elapsed = time.Since(start).Round(time.Millisecond).String()

	logger.Info("run complete", "id", report.ID, "elapsed", report.Elapsed)

	if save {
		if err := saveRun(report, runCfg); err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(report)
	return nil
}

func newReport(cfg sim.RunConfig, res *sim.Result) *Report {
	return &Report{
		ID:        uuid.NewString(),
		Energy:    cfg.Energy,
		Seed:      cfg.Seed,
		Runs:      1,
		Ticks:     res.TicksRun,
		Spawned:   res.Spawned,
		Retired:   res.Retired,
		Evicted:   res.Evicted,
		FlickerHz: analysis.DominantFrequency(analysis.Ints(res.Population), 1/cfg.Dt),
		Metrics:   res.Metrics,
		result:    res,
	}
}

func runSingle(ctx context.Context, cfg sim.RunConfig) (*Report, error) {
	s := sim.New()
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}
	last := &lastSystem{}
	s.AddObserver(last)

	res, err := s.Run(ctx, cfg)
	if err != nil {
		return nil, err
	}

	report := newReport(cfg, res)
	report.profile = analysis.SideProfile(last.sys, render.BoxHalfSize, 48, 20)
	return report, nil
}

// runEnsemble averages metrics over consecutive seeds. The population
// series and flicker frequency come from the first run.
func runEnsemble(ctx context.Context, cfg sim.RunConfig, n int) (*Report, error) {
	results, err := sim.NewEnsemble(metrics.Default, n, cfg.Seed).Run(ctx, cfg)
	if err != nil {
		return nil, err
	}

	report := newReport(cfg, results[0])
	report.Runs = n
	report.Metrics = make(map[string]float64)
	report.Spawned, report.Retired, report.Evicted = 0, 0, 0
	for _, res := range results {
		for name, v := range res.Metrics {
			report.Metrics[name] += v / float64(n)
		}
		report.Spawned += res.Spawned
		report.Retired += res.Retired
		report.Evicted += res.Evicted
	}
	return report, nil
}

func printReport(r *Report) {
	fmt.Printf("run id: %s\n", r.ID)
	fmt.Printf("energy %.2f, seed %d, %d run(s) of %s ticks in %s\n",
		r.Energy, r.Seed, r.Runs, humanize.Comma(int64(r.Ticks)), r.Elapsed)
	fmt.Printf("spawned %s, retired %s, evicted %s\n",
		humanize.Comma(int64(r.Spawned)), humanize.Comma(int64(r.Retired)), humanize.Comma(int64(r.Evicted)))

	names := make([]string, 0, len(r.Metrics))
	for name := range r.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.4f\n", name, r.Metrics[name])
	}
	w.Flush()

	fmt.Printf("\ndominant flicker: %.2f Hz\n", r.FlickerHz)

	if len(r.result.Population) > 1 {
		fmt.Println()
		fmt.Println(plotPopulation(r.result.Population))
	}
	if r.profile != "" {
		fmt.Println("\nside profile:")
		fmt.Print(r.profile)
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	runCfg := sim.RunConfig{
		Ticks:        ticks,
		Dt:           cfg.Dt,
		Seed:         cfg.ResolvedSeed(),
		MaxParticles: cfg.MaxParticles,
		Phase:        cfg.Phase,
	}
	logger.Info("sweeping", "from", sweepFrom, "to", sweepTo, "steps", sweepSteps, "ticks", ticks)

	points, err := analysis.EnergySweep(ctx, runCfg, sweepFrom, sweepTo, sweepSteps, sweepTransient)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ENERGY\tMEAN POP\tPEAK\tMEAN AGE\tMEAN RADIUS")
	for _, p := range points {
		fmt.Fprintf(w, "%.2f\t%.1f\t%d\t%.3f\t%.4f\n", p.Energy, p.MeanPopulation, p.PeakPopulation, p.MeanAge, p.MeanRadius)
	}
	w.Flush()

	fmt.Println()
	fmt.Print(analysis.SweepToASCII(points, 60, 12))
	return nil
}

func renderSVG(clock *sim.Clock, cam *camera.Camera, width, height int) (*viz.SVGSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image size %dx%d", width, height)
	}
	surface := viz.NewSVGSurface(width, height)
	render.New().Draw(surface, cam, clock.System(), clock.Energy())
	return surface, nil
}

func plotPopulation(population []int) string {
	return asciigraph.Plot(analysis.Ints(population),
		asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption("population"))
}

func saveRun(r *Report, cfg sim.RunConfig) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.RunMetadata{
		ID:           r.ID,
		Energy:       r.Energy,
		Seed:         r.Seed,
		Dt:           cfg.Dt,
		Phase:        cfg.Phase,
		MaxParticles: cfg.MaxParticles,
		Spawned:      r.Spawned,
		Retired:      r.Retired,
		Evicted:      r.Evicted,
		FlickerHz:    r.FlickerHz,
		Metrics:      r.Metrics,
	}, r.result)
	if err != nil {
		return err
	}
	logger.Info("run saved", "id", id, "dir", dataDir)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tENERGY\tTICKS\tSPAWNED\tFLICKER")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\t%.2f Hz\n",
			r.ID, humanize.Time(r.Timestamp), r.Energy, humanize.Comma(int64(r.Ticks)), humanize.Comma(int64(r.Spawned)), r.FlickerHz)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	population, spawns, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(population) < 2 {
		return fmt.Errorf("run %s has too few ticks to plot", args[0])
	}

	fmt.Printf("run %s: energy %.2f, seed %d, %s ticks\n\n", meta.ID, meta.Energy, meta.Seed, humanize.Comma(int64(meta.Ticks)))
	fmt.Println(plotPopulation(population))
	fmt.Println()
	fmt.Println(asciigraph.Plot(analysis.Ints(spawns),
		asciigraph.Height(6), asciigraph.Width(70), asciigraph.Caption("spawned per tick")))
	return nil
}
