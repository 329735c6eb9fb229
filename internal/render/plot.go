package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/dpendulum/internal/dynamo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 6 * vg.Inch
)

// TrajectoryPlot draws theta1(t) and theta2(t) for samples taken every
// interval seconds. The output format follows the extension of path
// (.png, .svg, .pdf, ...).
func TrajectoryPlot(path string, samples []dynamo.State, interval float64) error {
	if len(samples) == 0 {
		return errors.New("no samples to plot")
	}

	p := plot.New()
	p.Title.Text = "Double pendulum"
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "angle (rad)"
	p.Add(plotter.NewGrid())

	theta1 := make(plotter.XYs, len(samples))
	theta2 := make(plotter.XYs, len(samples))
	for k, s := range samples {
		t := float64(k) * interval
		theta1[k] = plotter.XY{X: t, Y: s.Theta1}
		theta2[k] = plotter.XY{X: t, Y: s.Theta2}
	}

	if err := plotutil.AddLines(p, "theta1", theta1, "theta2", theta2); err != nil {
		return err
	}
	return save(p, path)
}

// PhasePlot draws the (theta, p) phase portrait of both rods.
func PhasePlot(path string, samples []dynamo.State) error {
	if len(samples) == 0 {
		return errors.New("no samples to plot")
	}

	p := plot.New()
	p.Title.Text = "Phase portrait"
	p.X.Label.Text = "angle (rad)"
	p.Y.Label.Text = "momentum"

	upper := make(plotter.XYs, len(samples))
	lower := make(plotter.XYs, len(samples))
	for k, s := range samples {
		upper[k] = plotter.XY{X: s.Theta1, Y: s.P1}
		lower[k] = plotter.XY{X: s.Theta2, Y: s.P2}
	}

	if err := plotutil.AddLines(p, "rod 1", upper, "rod 2", lower); err != nil {
		return err
	}
	return save(p, path)
}

// flipGrid exposes a FlipMatrix as plotter.GridXYZ with theta2 on the x
// axis and theta1 on the y axis.
type flipGrid struct {
	m *dynamo.FlipMatrix
}

func (g flipGrid) Dims() (c, r int)   { return g.m.Side, g.m.Side }
func (g flipGrid) Z(c, r int) float64 { return float64(g.m.At(r, c)) }
func (g flipGrid) X(c int) float64    { return g.m.Angles[c] }
func (g flipGrid) Y(r int) float64    { return g.m.Angles[r] }

// FlipHeatMap draws the flip matrix as a heat map. NoFlip cells take the
// coldest color.
func FlipHeatMap(path string, m *dynamo.FlipMatrix) error {
	if m == nil || m.Side < 2 {
		return errors.New("flip matrix too small to plot")
	}

	h := plotter.NewHeatMap(flipGrid{m}, palette.Heat(64, 1))
	if h.Max == h.Min {
		h.Max = h.Min + 1
	}

	p := plot.New()
	p.Title.Text = "Time to flip"
	p.X.Label.Text = "theta2 (rad)"
	p.Y.Label.Text = "theta1 (rad)"
	p.Add(h)
	return save(p, path)
}

func save(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	return p.Save(plotWidth, plotHeight, path)
}
