// Package dynamo provides the core data model for double pendulum runs.
//
// The package defines the value types shared by the physics model, the
// stepper and the scanners:
//
//   - [Constants]: rod length, mass and gravity of one run
//   - [State]: a point (theta1, theta2, p1, p2) in phase space
//   - [Params]: step count, timestep, output rates and grid size
//   - [Trajectory]: the full state history of one run
//   - [FlipMatrix]: flip times over a grid of initial angles
//
// # Example
//
//	c := dynamo.Constants{RodLength: 1, Mass: 1, Gravity: 9.81}
//	p := dynamo.Params{StepCount: 10000, Dt: 0.001, GridSide: 64, Constants: c}
//	if err := p.ValidateGrid(); err != nil {
//	    return err
//	}
//
// # Errors
//
// Invalid input is reported as [ErrInvalidParameter] before any stepping
// happens. Storage that cannot be obtained is reported as [ErrAllocation].
// Neither is ever encoded as [NoFlip].
package dynamo
