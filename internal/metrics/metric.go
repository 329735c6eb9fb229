// Package metrics summarizes trajectories and flip matrices.
package metrics

import "github.com/san-kum/dpendulum/internal/dynamo"

type Metric interface {
	Name() string
	Observe(x dynamo.State, t float64)
	Value() float64
	Reset()
}

// Evaluate feeds every state of traj to the metrics, state k at time k*dt,
// and returns their values keyed by name.
func Evaluate(traj dynamo.Trajectory, dt float64, ms ...Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for k, x := range traj {
		t := float64(k) * dt
		for _, m := range ms {
			m.Observe(x, t)
		}
	}

	values := make(map[string]float64, len(ms))
	for _, m := range ms {
		values[m.Name()] = m.Value()
	}
	return values
}

// Default returns the metrics recorded for every trajectory run.
func Default(c dynamo.Constants) []Metric {
	return []Metric{
		NewEnergy(c),
		NewEnergyDrift(c),
		NewUpright(),
	}
}
