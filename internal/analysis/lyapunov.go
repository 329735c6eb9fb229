package analysis

import (
	"math"

	"github.com/san-kum/dpendulum/internal/dynamo"
	"github.com/san-kum/dpendulum/internal/integrators"
)

// LyapunovExponent estimates the largest Lyapunov exponent using the
// trajectory separation method. A positive value indicates chaos.
//
// Both runs start from rest, the second with theta1 offset by perturbation.
// After every step the separation d is measured in (theta1, theta2, p1, p2)
// space, ln(d/d0) is accumulated and the perturbed run is pulled back to
// distance d0 along the same direction.
func LyapunovExponent(
	st integrators.Stepper,
	x0 dynamo.State,
	c dynamo.Constants,
	dt float64,
	steps int,
	perturbation float64,
) float64 {
	if steps < 1 || !(dt > 0) || !(perturbation > 0) {
		return 0
	}

	d0 := perturbation
	x0p := x0
	x0p.Theta1 += perturbation

	old, prev := x0, x0
	oldP, prevP := x0p, x0p
	h := dt / 2

	sumLog := 0.0
	count := 0
	for i := 0; i < steps; i++ {
		cur := st.Step(old, prev, c, h)
		curP := st.Step(oldP, prevP, c, h)

		sep := distance(cur, curP)
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			break
		}
		sumLog += math.Log(sep / d0)
		count++

		// Renormalize both history points so the finite-difference
		// velocity of the perturbed run stays consistent.
		scale := d0 / sep
		oldP = renormalize(prev, prevP, scale)
		prevP = renormalize(cur, curP, scale)
		old, prev = prev, cur
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}

func distance(a, b dynamo.State) float64 {
	d := b.Add(a.Scale(-1))
	return math.Sqrt(d.Theta1*d.Theta1 + d.Theta2*d.Theta2 + d.P1*d.P1 + d.P2*d.P2)
}

func renormalize(ref, x dynamo.State, scale float64) dynamo.State {
	return ref.Add(x.Add(ref.Scale(-1)).Scale(scale))
}
