// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types for fixed-step
// numerical simulation of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical stepping scheme
//   - [Simulator]: orchestrates a single simulation run
//
// # Example
//
//	sys := predprey.NewSystem(params)
//	sim := dynamo.New(sys, integrators.NewEuler())
//	result, _ := sim.Run(ctx, x0, dynamo.Config{Dt: 0.25, Duration: 365})
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe: integrators may keep scratch
// buffers. Build one Simulator per goroutine; runs never share state.
package dynamo
