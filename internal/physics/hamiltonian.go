package physics

import (
	"math"

	"github.com/san-kum/dpendulum/internal/dynamo"
)

func denominator(cosD float64) float64 {
	return 16 - 9*cosD*cosD
}

// DTheta1 is the angular velocity of the upper rod given both momenta.
func DTheta1(theta1, theta2, p1, p2 float64, c dynamo.Constants) float64 {
	cosD := math.Cos(theta1 - theta2)
	return (6 / c.Inertia()) * (2*p1 - 3*cosD*p2) / denominator(cosD)
}

// DTheta2 is the angular velocity of the lower rod given both momenta.
func DTheta2(theta1, theta2, p1, p2 float64, c dynamo.Constants) float64 {
	cosD := math.Cos(theta1 - theta2)
	return (6 / c.Inertia()) * (8*p2 - 3*cosD*p1) / denominator(cosD)
}

// DP1 is the momentum derivative of the upper rod given angular velocities w1, w2.
func DP1(theta1, theta2, w1, w2 float64, c dynamo.Constants) float64 {
	return -0.5 * c.Inertia() * (w1*w2*math.Sin(theta1-theta2) + 3*c.Gravity*math.Sin(theta1)/c.RodLength)
}

// DP2 is the momentum derivative of the lower rod given angular velocities w1, w2.
func DP2(theta1, theta2, w1, w2 float64, c dynamo.Constants) float64 {
	return -0.5 * c.Inertia() * (-w1*w2*math.Sin(theta1-theta2) + c.Gravity*math.Sin(theta2)/c.RodLength)
}

// Velocities returns the angular velocities implied by the momenta of s.
func Velocities(s dynamo.State, c dynamo.Constants) (w1, w2 float64) {
	return DTheta1(s.Theta1, s.Theta2, s.P1, s.P2, c), DTheta2(s.Theta1, s.Theta2, s.P1, s.P2, c)
}

// Energy is the total mechanical energy of s, zero with both rods hanging
// straight down.
func Energy(s dynamo.State, c dynamo.Constants) float64 {
	w1, w2 := Velocities(s, c)
	ml2 := c.Inertia()

	// T = (ml²/6)(w2² + 4w1² + 3w1w2cos(Δ))
	ke := ml2 / 6 * (w2*w2 + 4*w1*w1 + 3*w1*w2*math.Cos(s.Theta1-s.Theta2))

	// V = -(mgl/2)(3cos θ1 + cos θ2), shifted so the rest state is zero
	mgl := c.Mass * c.Gravity * c.RodLength
	pe := 0.5 * mgl * (4 - 3*math.Cos(s.Theta1) - math.Cos(s.Theta2))

	return ke + pe
}
