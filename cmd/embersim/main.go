package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/embersim/internal/camera"
	"github.com/san-kum/embersim/internal/config"
	"github.com/san-kum/embersim/internal/dynamo"
	"github.com/san-kum/embersim/internal/gui"
	"github.com/san-kum/embersim/internal/particles"
	"github.com/san-kum/embersim/internal/phase"
	"github.com/san-kum/embersim/internal/sim"
	"github.com/san-kum/embersim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	dataDir    string
	logLevel   string
	logger     *slog.Logger

	energy       float64
	dt           float64
	seed         int64
	maxParticles int
	phaseName    string
	audioOn      bool

	ticks     int
	runs      int
	jsonOut   bool
	save      bool
	outPath   string
	outWidth  int
	outHeight int

	sweepFrom      float64
	sweepTo        float64
	sweepSteps     int
	sweepTransient int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "embersim",
		Short:         "particle fire simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
		RunE: runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".embersim", "data directory for saved runs")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	addSimFlags(rootCmd)
	rootCmd.Flags().BoolVar(&audioOn, "audio", false, "enable crackle audio")

	guiCmd := &cobra.Command{
		Use:   "gui [preset]",
		Short: "open the raylib window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	addSimFlags(guiCmd)
	guiCmd.Flags().BoolVar(&audioOn, "audio", false, "enable crackle audio")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run the fire in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run headless and report metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	addSimFlags(runCmd)
	runCmd.Flags().IntVar(&ticks, "ticks", 1200, "number of ticks")
	runCmd.Flags().IntVar(&runs, "runs", 1, "number of seeds to run concurrently")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "print the report as JSON")
	runCmd.Flags().BoolVar(&save, "save", false, "save the run under the data directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "measure steady-state population across energies",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&ticks, "ticks", 600, "measured ticks per energy")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "lowest energy")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1, "highest energy")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 11, "number of energies")
	sweepCmd.Flags().IntVar(&sweepTransient, "transient", 240, "ticks discarded before measuring")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [preset]",
		Short: "render one frame to SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSnapshot,
	}
	addSimFlags(snapshotCmd)
	snapshotCmd.Flags().IntVar(&ticks, "ticks", 240, "ticks to run before rendering")
	snapshotCmd.Flags().StringVar(&outPath, "out", "embersim.svg", "output file")
	snapshotCmd.Flags().IntVar(&outWidth, "width", config.DefaultWidth, "image width")
	snapshotCmd.Flags().IntVar(&outHeight, "height", config.DefaultHeight, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list energy presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tENERGY\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.2f\t%s\n", name, p.Energy, p.Description)
			}
			w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file with default values",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(guiCmd, liveCmd, runCmd, listCmd, plotCmd, sweepCmd, snapshotCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&energy, "energy", config.DefaultEnergy, "fire energy in [0,1]")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep in seconds")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	cmd.Flags().IntVar(&maxParticles, "max-particles", particles.MaxParticles, "particle cap")
	cmd.Flags().StringVar(&phaseName, "phase", phase.NameNoise, "turbulence phase source ("+strings.Join(phase.Names, "|")+")")
}

func setupLogger() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// resolveConfig layers defaults, the optional preset argument, the config
// file and finally any flags set on the command line.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if len(args) > 0 {
		p := config.GetPreset(args[0])
		if p == nil {
			return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownPreset, args[0], config.ListPresets())
		}
		p.Apply(cfg)
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		logger.Info("config loaded", "path", configFile)
	}

	flags := cmd.Flags()
	if flags.Changed("energy") {
		cfg.Energy = energy
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("max-particles") {
		cfg.MaxParticles = maxParticles
	}
	if flags.Changed("phase") {
		cfg.Phase = phaseName
	}
	if flags.Lookup("audio") != nil && flags.Changed("audio") {
		cfg.Audio = audioOn
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newClock builds a particle system and clock from cfg.
func newClock(cfg *config.Config) (*sim.Clock, error) {
	s := cfg.ResolvedSeed()
	src, err := phase.New(cfg.Phase, s)
	if err != nil {
		return nil, err
	}
	sys := particles.New(
		particles.WithSeed(s),
		particles.WithPhase(src),
		particles.WithMaxParticles(cfg.MaxParticles),
	)
	clock := sim.NewClock(sys, cfg.Dt, cfg.TickInterval)
	clock.SetEnergy(cfg.Energy)
	return clock, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	return gui.Run(cfg, logger)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	clock, err := newClock(cfg)
	if err != nil {
		return err
	}
	logger.Debug("live view starting", "energy", cfg.Energy, "phase", cfg.Phase)
	return viz.Run(clock, camera.New(cfg.Camera.Pitch, cfg.Camera.Yaw))
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if ticks < 0 {
		return fmt.Errorf("%w: ticks must not be negative", dynamo.ErrInvalidConfig)
	}
	clock, err := newClock(cfg)
	if err != nil {
		return err
	}
	for i := 0; i < ticks; i++ {
		clock.Tick()
	}

	frame, err := renderSVG(clock, camera.New(cfg.Camera.Pitch, cfg.Camera.Yaw), outWidth, outHeight)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := frame.WriteTo(f); err != nil {
		return err
	}

	logger.Info("snapshot written", "path", outPath, "ticks", ticks, "particles", clock.System().Len())
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "embersim.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

// signalContext cancels on interrupt so long headless runs stop cleanly.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
