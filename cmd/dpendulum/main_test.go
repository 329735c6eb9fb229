package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/dpendulum/internal/dynamo"
	"github.com/san-kum/dpendulum/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	logger = zap.NewNop()
	preset, configFile = "", ""

	cmd := &cobra.Command{Use: "test"}
	addSimFlags(cmd)
	cmd.Flags().IntVar(&gridSide, "grid", 64, "")
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func TestResolveConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	yaml := "dt: 0.002\nduration: 5\ngrid_side: 16\nscheme: legacy\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		dt       float64
		duration float64
		grid     int
		scheme   string
	}{
		{"defaults", nil, 0.001, 20, 64, "symmetric"},
		{"preset", []string{"--preset", "quick"}, 0.005, 10, 32, "symmetric"},
		{"config overrides preset", []string{"--preset", "quick", "--config", path}, 0.002, 5, 16, "legacy"},
		{"flags override config", []string{"--config", path, "--dt", "0.0005", "--grid", "8"}, 0.0005, 5, 8, "legacy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newTestCommand(t, tt.args...)
			cfg, err := resolveConfig(cmd)
			if err != nil {
				t.Fatalf("resolve failed: %v", err)
			}
			if cfg.Dt != tt.dt || cfg.Duration != tt.duration || cfg.GridSide != tt.grid || cfg.Scheme != tt.scheme {
				t.Errorf("got dt=%v duration=%v grid=%d scheme=%s", cfg.Dt, cfg.Duration, cfg.GridSide, cfg.Scheme)
			}
		})
	}
}

func TestResolveConfigLayersFileOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scheme.yaml")
	if err := os.WriteFile(path, []byte("scheme: legacy\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := newTestCommand(t, "--preset", "quick", "--config", path)
	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Scheme != "legacy" {
		t.Errorf("expected scheme from file, got %s", cfg.Scheme)
	}
	if cfg.Dt != 0.005 || cfg.Duration != 10 || cfg.GridSide != 32 || cfg.PlotFreq != 50 {
		t.Errorf("expected quick preset values to survive, got dt=%v duration=%v grid=%d plot=%d",
			cfg.Dt, cfg.Duration, cfg.GridSide, cfg.PlotFreq)
	}
}

func TestRenderScan(t *testing.T) {
	logger = zap.NewNop()
	dataDir = t.TempDir()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	m, err := dynamo.NewFlipMatrix([]float64{-dynamo.Pi, 0, dynamo.Pi})
	if err != nil {
		t.Fatal(err)
	}
	m.Set(0, 0, dynamo.NoFlip)
	m.Set(1, 2, 0.5)
	m.Set(2, 1, 1.5)
	runID, err := st.SaveScan(storage.RunMetadata{
		Scheme: "symmetric",
		Params: dynamo.Params{StepCount: 1000, Dt: 0.002, TotalTime: 2, GridSide: 3},
	}, m)
	if err != nil {
		t.Fatal(err)
	}

	cmd := &cobra.Command{Use: "render"}
	cmd.Flags().String("image", "flip.png", "")
	cmd.Flags().Bool("heatmap", false, "")
	cmd.SetOut(io.Discard)
	if err := cmd.ParseFlags([]string{"--image", "redrawn.bmp"}); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := renderScan(cmd, []string{runID}); err != nil {
			t.Fatalf("render failed: %v", err)
		}
	}

	for _, name := range []string{flipPPM, "redrawn.bmp"} {
		if info, err := os.Stat(filepath.Join(st.RunDir(runID), name)); err != nil || info.Size() == 0 {
			t.Errorf("expected %s to be written: %v", name, err)
		}
	}
	meta, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, f := range meta.Files {
		if f == "redrawn.bmp" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected redrawn.bmp recorded once, got files %v", meta.Files)
	}
}

func TestRenderScanRejectsTrajectory(t *testing.T) {
	logger = zap.NewNop()
	dataDir = t.TempDir()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	traj := dynamo.Trajectory{dynamo.Rest(1, 1), dynamo.Rest(1, 1)}
	runID, err := st.SaveTrajectory(storage.RunMetadata{
		Params: dynamo.Params{StepCount: 2, Dt: 0.01, SampleFreq: 100, PlotFreq: 100},
	}, traj)
	if err != nil {
		t.Fatal(err)
	}

	cmd := &cobra.Command{Use: "render"}
	cmd.Flags().String("image", "", "")
	cmd.Flags().Bool("heatmap", false, "")
	if err := renderScan(cmd, []string{runID}); err == nil {
		t.Error("expected an error for a trajectory run")
	}
}

func TestResolveConfigUnknownPreset(t *testing.T) {
	cmd := newTestCommand(t, "--preset", "jupiter")
	if _, err := resolveConfig(cmd); err == nil {
		t.Error("expected error for unknown preset")
	}
}
