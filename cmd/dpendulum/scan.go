package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/dpendulum/internal/dynamo"
	"github.com/san-kum/dpendulum/internal/integrators"
	"github.com/san-kum/dpendulum/internal/logging"
	"github.com/san-kum/dpendulum/internal/metrics"
	"github.com/san-kum/dpendulum/internal/render"
	"github.com/san-kum/dpendulum/internal/sim"
	"github.com/san-kum/dpendulum/internal/storage"
	"github.com/san-kum/dpendulum/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const flipPPM = "flip.ppm"

type scanResult struct {
	m   *dynamo.FlipMatrix
	err error
}

func runScan(cmd *cobra.Command, args []string) error {
	out := cmd.ErrOrStderr()
	cfg, p, s, err := setup(cmd, sim.WithProgress(func(done, total int) {
		fmt.Fprintf(out, "\r%s %d/%d rows", viz.ProgressBar(float64(done)/float64(total), 30), done, total)
		if done == total {
			fmt.Fprintln(out)
		}
	}))
	if err != nil {
		return err
	}
	if err := p.ValidateGrid(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	title := fmt.Sprintf("Scanning %dx%d grid, %d steps", p.GridSide, p.GridSide, p.StepCount)
	useTUI, _ := cmd.Flags().GetBool("tui")

	var m *dynamo.FlipMatrix
	if useTUI {
		m, err = scanWithTUI(ctx, title, cfg.Workers, s.Stepper(), p)
	} else {
		fmt.Fprintln(out, title)
		m, err = s.GridScan(ctx, p.Constants, p)
	}
	if err != nil {
		return err
	}

	stats := metrics.ComputeFlipStats(m)

	store := storage.New(cfg.DataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.SaveScan(storage.RunMetadata{
		Scheme:  cfg.Scheme,
		Params:  p,
		Metrics: stats.Map(),
	}, m)
	if err != nil {
		return err
	}
	runDir := store.RunDir(runID)

	if _, err := writeScanImages(cmd, store, runID, m, p.TotalTime); err != nil {
		return err
	}
	if xlsx, _ := cmd.Flags().GetBool("xlsx"); xlsx {
		if err := storage.WriteFlipXLSX(filepath.Join(runDir, "flip.xlsx"), m, p, stats.Map()); err != nil {
			return err
		}
		if err := store.AddFile(runID, "flip.xlsx"); err != nil {
			return err
		}
	}

	rows := append([]viz.Row{
		{Label: "run id", Value: runID},
		{Label: "directory", Value: runDir},
	}, scanRows(stats)...)
	fmt.Fprintln(cmd.OutOrStdout(), viz.Summary("Scan", rows))
	return nil
}

// writeScanImages writes flip.ppm into the run directory, converts it to the
// --image file and plots the heat map when --heatmap is set. Every file
// written is recorded in the run metadata.
func writeScanImages(cmd *cobra.Command, store *storage.Store, runID string, m *dynamo.FlipMatrix, totalTime float64) ([]string, error) {
	runDir := store.RunDir(runID)

	ppm := filepath.Join(runDir, flipPPM)
	if err := render.WriteFlipPPM(ppm, m, totalTime); err != nil {
		return nil, err
	}
	files := []string{flipPPM}

	if name, _ := cmd.Flags().GetString("image"); name != "" {
		if err := render.Convert(ppm, filepath.Join(runDir, name)); err != nil {
			return nil, err
		}
		files = append(files, name)
	}
	if heat, _ := cmd.Flags().GetBool("heatmap"); heat {
		if err := render.FlipHeatMap(filepath.Join(runDir, "heatmap.png"), m); err != nil {
			logger.Warn("heat map failed", zap.Error(err))
		} else {
			files = append(files, "heatmap.png")
		}
	}

	for _, f := range files {
		if err := store.AddFile(runID, f); err != nil {
			return nil, err
		}
	}
	return files, nil
}

// renderScan redraws the images of a stored scan from its flip matrix.
func renderScan(cmd *cobra.Command, args []string) error {
	runID := args[0]
	store := storage.New(dataDir)
	meta, err := store.Load(runID)
	if err != nil {
		return err
	}
	if meta.Kind != storage.KindScan {
		return fmt.Errorf("run %s is a %s, not a scan", runID, meta.Kind)
	}

	m, err := store.LoadMatrix(runID)
	if err != nil {
		return err
	}
	files, err := writeScanImages(cmd, store, runID, m, meta.Params.TotalTime)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, f := range files {
		fmt.Fprintf(out, "wrote %s\n", filepath.Join(store.RunDir(runID), f))
	}
	return nil
}

// scanWithTUI runs the scan in the background while a progress view owns
// the terminal. Quitting the view cancels the scan.
func scanWithTUI(ctx context.Context, title string, workers int, st integrators.Stepper, p dynamo.Params) (*dynamo.FlipMatrix, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := tea.NewProgram(viz.NewScanModel(title, p.GridSide, cancel))
	s := sim.New(
		sim.WithStepper(st),
		sim.WithLogger(logging.Quiet()),
		sim.WithWorkers(workers),
		sim.WithProgress(viz.ProgressSender(prog)),
	)

	results := make(chan scanResult, 1)
	go func() {
		m, err := s.GridScan(ctx, p.Constants, p)
		msg := viz.ScanDoneMsg{Err: err}
		if err == nil {
			msg.Summary = scanRows(metrics.ComputeFlipStats(m))
		}
		prog.Send(msg)
		results <- scanResult{m: m, err: err}
	}()

	if _, err := prog.Run(); err != nil {
		cancel()
		<-results
		return nil, err
	}
	res := <-results
	return res.m, res.err
}

func scanRows(stats metrics.FlipStats) []viz.Row {
	rows := []viz.Row{
		{Label: "cells", Value: fmt.Sprintf("%d", stats.Cells)},
		{Label: "flipped", Value: fmt.Sprintf("%d (%.1f%%)", stats.Flipped, 100*stats.Ratio)},
	}
	if stats.Flipped > 0 {
		rows = append(rows,
			viz.Row{Label: "fastest flip", Value: fmt.Sprintf("%.4fs", stats.Min)},
			viz.Row{Label: "slowest flip", Value: fmt.Sprintf("%.4fs", stats.Max)},
			viz.Row{Label: "mean flip", Value: fmt.Sprintf("%.4fs", stats.Mean)},
		)
	}
	return rows
}
