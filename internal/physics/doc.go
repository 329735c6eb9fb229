// Package physics evaluates the Hamiltonian equations of motion of a double
// pendulum built from two identical uniform rods.
//
// The four derivative functions are pure. [DTheta1] and [DTheta2] take the
// momenta; [DP1] and [DP2] take angular velocity estimates supplied by the
// stepper instead of recomputing them from the momenta:
//
//	w1 := physics.DTheta1(s.Theta1, s.Theta2, s.P1, s.P2, c)
//	w2 := physics.DTheta2(s.Theta1, s.Theta2, s.P1, s.P2, c)
//	dp1 := physics.DP1(s.Theta1, s.Theta2, w1, w2, c)
//
// The shared denominator 16 - 9cos²(θ1-θ2) lies in [7, 16]; the only
// singular input is m·l² = 0, which [dynamo.Constants.Validate] rejects.
package physics
