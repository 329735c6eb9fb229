package integrators

import (
	"github.com/san-kum/dpendulum/internal/dynamo"
	"github.com/san-kum/dpendulum/internal/physics"
)

// RK4 integrates Hamilton's equations directly. Each stage recomputes the
// angular velocities from its own momenta, so the older state is unused.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(old, prev dynamo.State, c dynamo.Constants, h float64) dynamo.State {
	dt := 2 * h

	k1 := hamilton(prev, c)
	k2 := hamilton(advance(prev, k1, dt*0.5), c)
	k3 := hamilton(advance(prev, k2, dt*0.5), c)
	k4 := hamilton(advance(prev, k3, dt), c)

	dt6 := dt / 6.0
	return dynamo.State{
		Theta1: prev.Theta1 + dt6*(k1.Theta1+2*k2.Theta1+2*k3.Theta1+k4.Theta1),
		Theta2: prev.Theta2 + dt6*(k1.Theta2+2*k2.Theta2+2*k3.Theta2+k4.Theta2),
		P1:     prev.P1 + dt6*(k1.P1+2*k2.P1+2*k3.P1+k4.P1),
		P2:     prev.P2 + dt6*(k1.P2+2*k2.P2+2*k3.P2+k4.P2),
	}
}

func hamilton(x dynamo.State, c dynamo.Constants) dynamo.State {
	w1, w2 := physics.Velocities(x, c)
	return derive(x, w1, w2, c)
}
