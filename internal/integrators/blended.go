package integrators

import (
	"github.com/san-kum/dpendulum/internal/dynamo"
	"github.com/san-kum/dpendulum/internal/physics"
)

// Stepper advances the pendulum by one full step of 2h given the two
// preceding states.
type Stepper interface {
	Step(old, prev dynamo.State, c dynamo.Constants, h float64) dynamo.State
}

// Blended is a four-stage explicit scheme. Unlike textbook RK4 the momentum
// derivatives take angular velocities from outside the stage point: a finite
// difference over old/prev in stage 0, then the previous stage's angle
// derivatives.
type Blended struct {
	scheme Scheme
}

// NewBlended returns a blended stepper wired according to scheme.
func NewBlended(scheme Scheme) *Blended {
	return &Blended{scheme: scheme}
}

// NewStepper returns the stepper for the named scheme.
func NewStepper(name string) (Stepper, error) {
	scheme, err := ParseScheme(name)
	if err != nil {
		return nil, err
	}
	if scheme == Classical {
		return NewRK4(), nil
	}
	return NewBlended(scheme), nil
}

func (b *Blended) Scheme() Scheme { return b.scheme }

// Step returns the state 2h after prev.
func (b *Blended) Step(old, prev dynamo.State, c dynamo.Constants, h float64) dynamo.State {
	var k [4]dynamo.State

	// stage 0
	w1 := (prev.Theta1 - old.Theta1) / (2 * h)
	w2 := (prev.Theta2 - old.Theta2) / (2 * h)
	k[0] = derive(prev, w1, w2, c)

	// stage 1
	at := advance(prev, k[0], h)
	k[1] = derive(at, k[0].Theta1, k[0].Theta2, c)

	// stage 2
	at = advance(prev, k[1], h)
	k[2] = derive(at, k[1].Theta1, k[1].Theta2, c)
	if b.scheme == Legacy {
		k[2].P2 = physics.DP2(prev.Theta1+h*k[0].Theta1, at.Theta2, k[1].Theta1, k[1].Theta2, c)
	}

	// stage 3
	at = advance(prev, k[2], 2*h)
	k[3] = derive(at, k[2].Theta1, k[2].Theta2, c)
	if b.scheme == Legacy {
		k[3].Theta2 = physics.DTheta2(at.Theta1, at.Theta2, at.P1, prev.P2+h*k[2].P2, c)
	}

	return dynamo.State{
		Theta1: prev.Theta1 + (k[0].Theta1+2*k[1].Theta1+2*k[2].Theta1+k[3].Theta1)*h/3,
		Theta2: prev.Theta2 + (k[0].Theta2+2*k[1].Theta2+2*k[2].Theta2+k[3].Theta2)*h/3,
		P1:     prev.P1 + (k[0].P1+2*k[1].P1+2*k[2].P1+k[3].P1)*h/3,
		P2:     prev.P2 + (k[0].P2+2*k[1].P2+2*k[2].P2+k[3].P2)*h/3,
	}
}

// Step advances with the symmetric scheme.
func Step(old, prev dynamo.State, c dynamo.Constants, h float64) dynamo.State {
	return defaultStepper.Step(old, prev, c, h)
}

var defaultStepper = NewBlended(Symmetric)

// derive evaluates all four derivatives at x, feeding w1, w2 to the momentum
// equations as angular velocities.
func derive(x dynamo.State, w1, w2 float64, c dynamo.Constants) dynamo.State {
	return dynamo.State{
		Theta1: physics.DTheta1(x.Theta1, x.Theta2, x.P1, x.P2, c),
		Theta2: physics.DTheta2(x.Theta1, x.Theta2, x.P1, x.P2, c),
		P1:     physics.DP1(x.Theta1, x.Theta2, w1, w2, c),
		P2:     physics.DP2(x.Theta1, x.Theta2, w1, w2, c),
	}
}

func advance(prev, k dynamo.State, f float64) dynamo.State {
	return dynamo.State{
		Theta1: prev.Theta1 + f*k.Theta1,
		Theta2: prev.Theta2 + f*k.Theta2,
		P1:     prev.P1 + f*k.P1,
		P2:     prev.P2 + f*k.P2,
	}
}
