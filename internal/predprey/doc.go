// Package predprey implements the two-species Lotka-Volterra model:
//
//	d(prey)/dt      = preyBirthRate*prey - predationRate*prey*predators
//	d(predators)/dt = predatorEfficiency*prey*predators - predatorLossRate*predators
//
// [Simulate] is a pure function of its [Params]: no randomness, no hidden
// state and no I/O, so it is safe to call from any number of goroutines.
// [Model] exposes the same computation through the named-mapping contract
// used by experiment drivers: parameter name to value in, outcome name to
// series ("TIME", "prey", "predators") out.
//
// Populations are neither clamped nor checked for plausibility; they may
// approach zero or grow without bound.
package predprey
