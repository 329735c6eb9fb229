package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/dpendulum/internal/analysis"
	"github.com/san-kum/dpendulum/internal/config"
	"github.com/san-kum/dpendulum/internal/dynamo"
	"github.com/san-kum/dpendulum/internal/metrics"
	"github.com/san-kum/dpendulum/internal/render"
	"github.com/san-kum/dpendulum/internal/sim"
	"github.com/san-kum/dpendulum/internal/storage"
	"github.com/san-kum/dpendulum/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// setup resolves the configuration into validated parameters and a
// simulator bound to the configured stepper.
func setup(cmd *cobra.Command, opts ...sim.Option) (*config.Config, dynamo.Params, *sim.Simulator, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, dynamo.Params{}, nil, err
	}
	p, err := cfg.Params()
	if err != nil {
		return nil, dynamo.Params{}, nil, err
	}
	st, err := cfg.Stepper()
	if err != nil {
		return nil, dynamo.Params{}, nil, err
	}
	s := sim.New(append([]sim.Option{
		sim.WithStepper(st),
		sim.WithLogger(logger),
		sim.WithWorkers(cfg.Workers),
	}, opts...)...)
	return cfg, p, s, nil
}

func runTrajectory(cmd *cobra.Command, args []string) error {
	cfg, p, s, err := setup(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "simulating %d steps (scheme %s)...\n", p.StepCount, cfg.Scheme)
	start := time.Now()

	traj, err := s.Trajectory(cfg.InitState.Theta1, cfg.InitState.Theta2, p.Constants, p)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	values := metrics.Evaluate(traj, p.Dt, metrics.Default(p.Constants)...)
	flip := traj.FirstFlip(p.Dt)
	values["flip_time"] = flip.Seconds()

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.SaveTrajectory(storage.RunMetadata{
		Scheme:  cfg.Scheme,
		Theta1:  cfg.InitState.Theta1,
		Theta2:  cfg.InitState.Theta2,
		Params:  p,
		Metrics: values,
	}, traj)
	if err != nil {
		return err
	}

	samples := traj.Sample(p.SampleStride())
	interval := p.Dt * float64(p.SampleStride())
	runDir := st.RunDir(runID)

	plots := []struct {
		name string
		draw func(path string) error
	}{
		{"trajectory.png", func(path string) error { return render.TrajectoryPlot(path, samples, interval) }},
		{"phase.png", func(path string) error { return render.PhasePlot(path, samples) }},
	}
	for _, pl := range plots {
		if err := pl.draw(filepath.Join(runDir, pl.name)); err != nil {
			logger.Warn("plot failed", zap.String("file", pl.name), zap.Error(err))
			continue
		}
		if err := st.AddFile(runID, pl.name); err != nil {
			return err
		}
	}

	if path, _ := cmd.Flags().GetString("csv"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := storage.WriteSamples(f, samples); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	rows := []viz.Row{
		{Label: "run id", Value: runID},
		{Label: "elapsed", Value: elapsed.Round(time.Millisecond).String()},
		{Label: "samples", Value: fmt.Sprintf("%d", len(samples))},
		{Label: "flip time", Value: formatFlip(flip)},
	}
	rows = append(rows, metricRows(values, "flip_time")...)
	fmt.Fprintln(out, viz.Summary("Trajectory", rows))

	if ascii, _ := cmd.Flags().GetBool("ascii"); ascii {
		fmt.Fprintln(out, render.PreviewAngles(samples, 80, 12))
	}

	if animate, _ := cmd.Flags().GetBool("animate"); animate {
		prog := tea.NewProgram(viz.NewPlayerModel(samples, interval, p.Constants), tea.WithAltScreen())
		if _, err := prog.Run(); err != nil {
			return err
		}
	}
	return nil
}

func runFlip(cmd *cobra.Command, args []string) error {
	cfg, p, s, err := setup(cmd)
	if err != nil {
		return err
	}

	flip, err := s.Flip(cfg.InitState.Theta1, cfg.InitState.Theta2, p.Constants, p)
	if err != nil {
		return err
	}

	rows := []viz.Row{
		{Label: "theta1", Value: fmt.Sprintf("%.4f", cfg.InitState.Theta1)},
		{Label: "theta2", Value: fmt.Sprintf("%.4f", cfg.InitState.Theta2)},
		{Label: "flip time", Value: formatFlip(flip)},
	}

	if lyap, _ := cmd.Flags().GetBool("lyapunov"); lyap {
		stepper, err := cfg.Stepper()
		if err != nil {
			return err
		}
		x0 := dynamo.Rest(cfg.InitState.Theta1, cfg.InitState.Theta2)
		lambda := analysis.LyapunovExponent(stepper, x0, p.Constants, p.Dt, p.StepCount-2, 1e-8)
		rows = append(rows, viz.Row{Label: "lyapunov", Value: fmt.Sprintf("%.4f /s", lambda)})
	}

	fmt.Fprintln(cmd.OutOrStdout(), viz.Summary("Flip", rows))
	return nil
}

func formatFlip(f dynamo.FlipTime) string {
	if !f.Flipped() {
		return "no flip"
	}
	return fmt.Sprintf("%.4fs", f.Seconds())
}

func metricRows(values map[string]float64, skip ...string) []viz.Row {
	names := make([]string, 0, len(values))
	for name := range values {
		if !slices.Contains(skip, name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	rows := make([]viz.Row, len(names))
	for i, name := range names {
		rows[i] = viz.Row{Label: name, Value: fmt.Sprintf("%.6g", values[name])}
	}
	return rows
}
