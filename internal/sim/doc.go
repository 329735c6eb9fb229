// Package sim drives the stepper over whole runs.
//
//   - [Simulator.Trajectory] keeps every state of one run.
//   - [Simulator.Flip] keeps only the last two states and stops at the first
//     flip of the lower rod.
//   - [Simulator.GridScan] runs Flip for every pair of angles on a uniform
//     grid over [-π, π] and fills a [dynamo.FlipMatrix].
//
// Flip and Trajectory share the step formula and the flip predicate, so the
// flip time of a run equals [dynamo.Trajectory.FirstFlip] of its trajectory.
//
// # Thread Safety
//
// A Simulator holds no mutable state and may be shared between goroutines.
// GridScan parallelizes by row; cells never share state.
package sim
