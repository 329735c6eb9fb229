// Package analysis characterizes double pendulum motion.
//
//   - [PowerSpectrum]: spectrum of a sampled angle series
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(stepper, x0, c, dt, steps, 1e-8)
//	if lambda > 0 {
//	    // chaotic
//	}
package analysis
