// Package analysis characterizes simulated trajectories.
//
//   - [PowerSpectrum], [DominantPeriod]: frequency content of a series
//   - [TurningPoints], [IsOscillatory]: cycle detection without FFT
//   - [CompareOutcomes]: difference between two implementations' outputs
//
// # Cycle Length
//
// Lotka-Volterra populations cycle around the coexistence equilibrium:
//
//	period, ok := analysis.DominantPeriod(traj.Prey, dt)
//	if ok {
//	    // roughly 2*pi/sqrt(birth*loss) for small orbits
//	}
package analysis
