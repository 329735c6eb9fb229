package sim

import (
	"context"
	"runtime"
	"sync"

	"github.com/san-kum/dpendulum/internal/dynamo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// Linspace returns n evenly spaced angles from -Pi to Pi. Both endpoints are
// exact.
func Linspace(n int) ([]float64, error) {
	if n < 2 {
		return nil, &dynamo.ParamError{Field: "grid_side", Value: float64(n), Reason: "must be at least 2"}
	}
	return floats.Span(make([]float64, n), -dynamo.Pi, dynamo.Pi), nil
}

// GridScan computes the flip time for every pair of grid angles. Rows are
// distributed over a bounded pool of workers, each writing only its own rows.
// A cancelled context stops the scan between rows and no matrix is returned.
func (s *Simulator) GridScan(ctx context.Context, c dynamo.Constants, p dynamo.Params) (*dynamo.FlipMatrix, error) {
	p.Constants = c
	if err := p.ValidateGrid(); err != nil {
		return nil, err
	}

	angles, err := Linspace(p.GridSide)
	if err != nil {
		return nil, err
	}
	m, err := dynamo.NewFlipMatrix(angles)
	if err != nil {
		return nil, err
	}

	workers := s.workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	s.logger.Info("grid scan started",
		zap.Int("side", p.GridSide),
		zap.Int("steps", p.StepCount),
		zap.Float64("dt", p.Dt),
		zap.Int("workers", workers),
	)

	var (
		mu   sync.Mutex
		done int
	)
	rowDone := func(row int) {
		mu.Lock()
		defer mu.Unlock()
		done++
		s.logger.Debug("row computed", zap.Int("row", row+1), zap.Int("done", done), zap.Int("total", m.Side))
		for _, fn := range s.progress {
			fn(done, m.Side)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < m.Side; i++ {
		row := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for j, theta2 := range angles {
				m.Set(row, j, s.flip(angles[row], theta2, c, p))
			}
			rowDone(row)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Warn("grid scan aborted", zap.Error(err))
		return nil, err
	}

	s.logger.Info("grid scan complete", zap.Int("cells", len(m.Cells)))
	return m, nil
}

// RunGridScan runs [Simulator.GridScan] with the symmetric stepper on all CPUs.
func RunGridScan(ctx context.Context, c dynamo.Constants, p dynamo.Params) (*dynamo.FlipMatrix, error) {
	return defaultSimulator.GridScan(ctx, c, p)
}
