package main

import (
	"fmt"
	"os"

	"github.com/san-kum/dpendulum/internal/config"
	"github.com/san-kum/dpendulum/internal/integrators"
	"github.com/san-kum/dpendulum/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string

	dt       float64
	duration float64
	theta1   float64
	theta2   float64
	plotFreq int
	gridSide int
	workers  int
	scheme   string
	gravity  float64
	length   float64
	mass     float64

	logger *zap.Logger
)

// main registers the dpendulum commands and exits with status 1 when the
// selected command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "dpendulum",
		Short:         "double pendulum simulator and flip-time scanner",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(verbose)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate a trajectory and plot it",
		Args:  cobra.NoArgs,
		RunE:  runTrajectory,
	}
	addSimFlags(runCmd)
	runCmd.Flags().String("csv", "", "also write the sampled trajectory to this CSV file")
	runCmd.Flags().Bool("ascii", false, "print a terminal preview of the angles")
	runCmd.Flags().Bool("animate", false, "play the trajectory in the terminal")

	flipCmd := &cobra.Command{
		Use:   "flip",
		Short: "time until the lower rod flips for one initial condition",
		Args:  cobra.NoArgs,
		RunE:  runFlip,
	}
	addSimFlags(flipCmd)
	flipCmd.Flags().Bool("lyapunov", false, "also estimate the largest Lyapunov exponent")

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "flip times over a grid of initial angles",
		Args:  cobra.NoArgs,
		RunE:  runScan,
	}
	addSimFlags(scanCmd)
	scanCmd.Flags().IntVar(&gridSide, "grid", config.DefaultGridSide, "grid side length")
	scanCmd.Flags().IntVar(&workers, "workers", 0, "concurrent rows (0 = all CPUs)")
	scanCmd.Flags().Bool("tui", false, "show a progress view")
	scanCmd.Flags().String("image", "flip.png", "flip image written next to flip.ppm (any format convert supports, empty to skip)")
	scanCmd.Flags().Bool("heatmap", false, "also plot an annotated heat map")
	scanCmd.Flags().Bool("xlsx", false, "also export the matrix as an Excel workbook")

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "redraw the images of a stored scan",
		Args:  cobra.ExactArgs(1),
		RunE:  renderScan,
	}
	renderCmd.Flags().String("image", "flip.png", "flip image written next to flip.ppm (empty to skip)")
	renderCmd.Flags().Bool("heatmap", false, "also plot an annotated heat map")

	convertCmd := &cobra.Command{
		Use:   "convert [src] [dst]",
		Short: "convert an image by file extension",
		Args:  cobra.ExactArgs(2),
		RunE:  convertImage,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().String("column", "theta2", "series to analyze (theta1, theta2, p1, p2)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the resolved configuration as YAML",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}
	addSimFlags(configCmd)
	configCmd.Flags().IntVar(&gridSide, "grid", config.DefaultGridSide, "grid side length")
	configCmd.Flags().IntVar(&workers, "workers", 0, "concurrent rows (0 = all CPUs)")

	rootCmd.AddCommand(runCmd, flipCmd, scanCmd, renderCmd, convertCmd, analyzeCmd, listCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	f.Float64Var(&duration, "time", config.DefaultDuration, "simulated duration (s)")
	f.Float64Var(&theta1, "theta1", config.DefaultTheta1, "initial angle of the upper rod (rad)")
	f.Float64Var(&theta2, "theta2", config.DefaultTheta2, "initial angle of the lower rod (rad)")
	f.IntVar(&plotFreq, "plot-freq", config.DefaultPlotFreq, "stored samples per simulated second")
	f.StringVar(&scheme, "scheme", integrators.Symmetric.String(), fmt.Sprintf("stepping scheme %v", integrators.Schemes()))
	f.Float64Var(&gravity, "g", config.DefaultGravity, "gravitational acceleration")
	f.Float64Var(&length, "length", config.DefaultRodLength, "rod length")
	f.Float64Var(&mass, "mass", config.DefaultMass, "rod mass")
}

// resolveConfig applies the preset, then the config file on top of it, then
// any flag set on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	overrides := []struct {
		name  string
		apply func()
	}{
		{"dt", func() { cfg.Dt = dt }},
		{"time", func() { cfg.Duration = duration }},
		{"theta1", func() { cfg.InitState.Theta1 = theta1 }},
		{"theta2", func() { cfg.InitState.Theta2 = theta2 }},
		{"plot-freq", func() { cfg.PlotFreq = plotFreq }},
		{"scheme", func() { cfg.Scheme = scheme }},
		{"g", func() { cfg.Constants.Gravity = gravity }},
		{"length", func() { cfg.Constants.RodLength = length }},
		{"mass", func() { cfg.Constants.Mass = mass }},
		{"grid", func() { cfg.GridSide = gridSide }},
		{"workers", func() { cfg.Workers = workers }},
		{"data", func() { cfg.DataDir = dataDir }},
	}
	for _, o := range overrides {
		if flags.Lookup(o.name) != nil && flags.Changed(o.name) {
			o.apply()
		}
	}

	logger.Debug("configuration resolved",
		zap.String("preset", preset),
		zap.String("config", configFile),
		zap.Float64("dt", cfg.Dt),
		zap.Float64("duration", cfg.Duration),
		zap.String("scheme", cfg.Scheme),
		zap.Int("grid", cfg.GridSide),
	)
	return cfg, nil
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if _, err := cfg.Params(); err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return nil
}
