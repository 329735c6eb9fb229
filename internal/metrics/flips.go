package metrics

import (
	"github.com/san-kum/dpendulum/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// FlipStats summarizes a flip matrix. Min, Max and Mean cover flipped cells
// only and are NoFlip when no cell flipped.
type FlipStats struct {
	Cells   int
	Flipped int
	Ratio   float64
	Min     float64
	Max     float64
	Mean    float64
}

func ComputeFlipStats(m *dynamo.FlipMatrix) FlipStats {
	stats := FlipStats{
		Cells: len(m.Cells),
		Min:   float64(dynamo.NoFlip),
		Max:   float64(dynamo.NoFlip),
		Mean:  float64(dynamo.NoFlip),
	}

	flipped := make([]float64, 0, len(m.Cells))
	for _, v := range m.Cells {
		if dynamo.FlipTime(v).Flipped() {
			flipped = append(flipped, v)
		}
	}
	stats.Flipped = len(flipped)
	if stats.Cells > 0 {
		stats.Ratio = float64(stats.Flipped) / float64(stats.Cells)
	}
	if len(flipped) == 0 {
		return stats
	}

	stats.Min = floats.Min(flipped)
	stats.Max = floats.Max(flipped)
	stats.Mean = floats.Sum(flipped) / float64(len(flipped))
	return stats
}

func (s FlipStats) Map() map[string]float64 {
	return map[string]float64{
		"cells":         float64(s.Cells),
		"flipped":       float64(s.Flipped),
		"flip_ratio":    s.Ratio,
		"flip_time_min": s.Min,
		"flip_time_max": s.Max,
		"flip_time_avg": s.Mean,
	}
}
