package render

import (
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dpendulum/internal/dynamo"
)

// Preview plots a single series in the terminal.
func Preview(data []float64, caption string, width, height int) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// PreviewAngles plots theta1 and theta2 of samples on one chart.
func PreviewAngles(samples []dynamo.State, width, height int) string {
	if len(samples) == 0 {
		return ""
	}
	theta1 := dynamo.Trajectory(samples).Column(func(s dynamo.State) float64 { return s.Theta1 })
	theta2 := dynamo.Trajectory(samples).Column(func(s dynamo.State) float64 { return s.Theta2 })
	return asciigraph.PlotMany([][]float64{theta1, theta2},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
		asciigraph.Caption("theta1 (red), theta2 (blue)"),
	)
}
