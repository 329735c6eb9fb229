package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/dpendulum/internal/dynamo"
	"github.com/san-kum/dpendulum/internal/physics"
)

var unit = dynamo.Constants{RodLength: 1, Mass: 1, Gravity: 9.81}

func TestRK4EnergyConservation(t *testing.T) {
	integ := NewRK4()
	x := dynamo.Rest(0.5, -0.3)
	initial := physics.Energy(x, unit)

	h := 0.0005
	for i := 0; i < 2000; i++ {
		x = integ.Step(x, x, unit, h)
	}

	drift := math.Abs(physics.Energy(x, unit)-initial) / initial
	if drift > 1e-4 {
		t.Errorf("RK4 energy drift too high: %e", drift)
	}
}

func TestRK4IgnoresOldState(t *testing.T) {
	integ := NewRK4()
	prev := dynamo.State{Theta1: 0.4, Theta2: 0.1, P1: 0.2, P2: -0.1}

	a := integ.Step(dynamo.State{}, prev, unit, 0.001)
	b := integ.Step(dynamo.Rest(3, 3), prev, unit, 0.001)
	if a != b {
		t.Errorf("expected identical steps, got %+v and %+v", a, b)
	}
}
