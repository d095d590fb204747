// Package dynamo provides core simulation primitives for the scalar
// double-well oscillator.
//
// The package defines the small set of types shared by every other package:
//
//   - [Field]: a two-argument derivative function dx/dt = f(t, x)
//   - [Params]: the bifurcation parameter r and constant forcing h
//   - [Stepper]: fixed-step numerical integrator interface
//   - [Configurable]: runtime parameter adjustment by name
//
// # Example
//
//	well := physics.NewDoubleWell(1, 0)
//	t, x, err := integrators.Advance(integrators.NewRK4(), well.Field(), 0.1, 0, 1.0/60, 4)
//
// # Non-finite values
//
// Nothing in this module clamps or rejects NaN/Inf states. A diverging
// trajectory propagates to the caller unchanged; use [Finite] to detect it.
package dynamo
