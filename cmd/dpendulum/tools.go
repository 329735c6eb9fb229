package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/san-kum/dpendulum/internal/analysis"
	"github.com/san-kum/dpendulum/internal/config"
	"github.com/san-kum/dpendulum/internal/dynamo"
	"github.com/san-kum/dpendulum/internal/render"
	"github.com/san-kum/dpendulum/internal/storage"
	"github.com/spf13/cobra"
)

var columns = map[string]func(dynamo.State) float64{
	"theta1": func(s dynamo.State) float64 { return s.Theta1 },
	"theta2": func(s dynamo.State) float64 { return s.Theta2 },
	"p1":     func(s dynamo.State) float64 { return s.P1 },
	"p2":     func(s dynamo.State) float64 { return s.P2 },
}

func convertImage(cmd *cobra.Command, args []string) error {
	if err := render.Convert(args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[1])
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	column, _ := cmd.Flags().GetString("column")
	field, ok := columns[column]
	if !ok {
		return fmt.Errorf("unknown column: %s (available: theta1, theta2, p1, p2)", column)
	}

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	if meta.Kind != storage.KindTrajectory {
		return fmt.Errorf("run %s is a %s, not a trajectory", runID, meta.Kind)
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("no data")
	}

	interval := meta.Params.Dt * float64(meta.Params.SampleStride())
	spectrum, err := analysis.PowerSpectrum(dynamo.Trajectory(samples).Column(field), 1/interval)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "frequency analysis: %s\n", meta.ID)
	fmt.Fprintf(out, "scheme: %s, %d samples every %.4fs\n\n", meta.Scheme, len(samples), interval)

	plotData := spectrum.Power[:max(2, len(spectrum.Power)/4)]
	fmt.Fprintln(out, render.Preview(plotData, "power spectrum ("+column+")", 80, 15))
	fmt.Fprintln(out)

	freq := spectrum.Dominant()
	fmt.Fprintf(out, "dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Fprintf(out, "period: %.3f s\n", 1.0/freq)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTIME\tSTEPS\tDT\tGRID\tSCHEME")

	for _, run := range runs {
		grid := "-"
		if run.Kind == storage.KindScan {
			grid = fmt.Sprintf("%d", run.Params.GridSide)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%s\t%s\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Params.StepCount,
			run.Params.Dt,
			grid,
			run.Scheme,
		)
	}

	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDT\tDURATION\tGRID\tSCHEME\tG\tTHETA1\tTHETA2")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%g\t%gs\t%d\t%s\t%g\t%g\t%g\n",
			name, p.Dt, p.Duration, p.GridSide, p.Scheme,
			p.Constants.Gravity, p.InitState.Theta1, p.InitState.Theta2)
	}
	return w.Flush()
}

