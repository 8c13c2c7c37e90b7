// Package analysis provides post-hoc diagnostics over a recorded engine
// run: spectral content of a tracked degree of freedom, 2D phase
// portraits, sensitivity to initial conditions, and a restitution
// bifurcation sweep for colliding pairs.
//
// # Sensitivity to initial conditions
//
// A positive exponent from [Divergence] indicates the tracked body's
// trajectory is sensitive to its initial condition:
//
//	lambda := analysis.Divergence(base, perturbed, 0, 600, 1.0/60, 1e-3)
//	if lambda > 0 {
//	    // nearby trajectories separate exponentially
//	}
package analysis
