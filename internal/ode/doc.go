// Package ode provides the numerical core for integrating ordinary
// differential equations dX/dt = f(X, t).
//
// The package defines:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE right-hand sides
//   - [Integrator]: fixed-step method (Euler, RK4)
//   - [AdaptiveIntegrator]: embedded method with error estimate (RK45)
//   - [Solve]: drives an integrator across an evaluation grid
//
// # Example
//
//	grid := floats.Span(make([]float64, 500), 0, 100)
//	traj, err := ode.Solve(ctx, sys, ode.State{0}, grid, ode.NewRK45(), ode.DefaultConfig())
//
// Solve reports only the requested grid points. Adaptive integrators are
// free to take any internal step, but every grid time is hit exactly.
package ode
