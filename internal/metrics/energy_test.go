package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/dpendulum/internal/dynamo"
	"github.com/san-kum/dpendulum/internal/physics"
)

var unit = dynamo.Constants{RodLength: 1, Mass: 1, Gravity: 9.81}

func TestEnergyMean(t *testing.T) {
	m := NewEnergy(unit)

	a := dynamo.State{Theta1: math.Pi / 4}
	b := dynamo.State{Theta2: 1, P1: 0.5}
	m.Observe(a, 0)
	m.Observe(b, 0.01)

	expected := (physics.Energy(a, unit) + physics.Energy(b, unit)) / 2
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected energy %f, got %f", expected, m.Value())
	}
}

func TestEnergyReset(t *testing.T) {
	m := NewEnergy(unit)

	m.Observe(dynamo.State{Theta1: 1, P1: 1}, 0)
	if m.Value() == 0 {
		t.Error("expected non-zero energy")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	x0 := dynamo.State{Theta1: 0.5, Theta2: 0.5}
	x1 := dynamo.State{Theta1: 0.6, Theta2: 0.5}
	e0 := physics.Energy(x0, unit)
	e1 := physics.Energy(x1, unit)

	tests := []struct {
		name string
		traj dynamo.Trajectory
		want float64
	}{
		{"constant", dynamo.Trajectory{x0, x0, x0}, 0},
		{"relative", dynamo.Trajectory{x0, x1, x0}, math.Abs(e1-e0) / math.Abs(e0)},
		{"zero initial energy", dynamo.Trajectory{{}, x0}, math.Abs(e0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.traj, 0.01, NewEnergyDrift(unit))["energy_drift"]
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("expected drift %g, got %g", tt.want, got)
			}
		})
	}
}

func TestUpright(t *testing.T) {
	traj := dynamo.Trajectory{
		{Theta2: 0},
		{Theta2: 3},
		{Theta2: 3.5},
		{Theta2: -4},
	}
	got := Evaluate(traj, 0.01, NewUpright())["upright"]
	if got != 0.5 {
		t.Errorf("expected 0.5, got %f", got)
	}

	if v := NewUpright().Value(); v != 1 {
		t.Errorf("expected 1 with no samples, got %f", v)
	}
}

func TestEvaluateDefault(t *testing.T) {
	traj := dynamo.Trajectory{{Theta1: 0.1}, {Theta1: 0.1}}
	values := Evaluate(traj, 0.01, Default(unit)...)

	for _, name := range []string{"energy", "energy_drift", "upright"} {
		if _, ok := values[name]; !ok {
			t.Errorf("missing metric %s", name)
		}
	}
	if values["energy_drift"] != 0 {
		t.Errorf("expected no drift, got %g", values["energy_drift"])
	}
}
