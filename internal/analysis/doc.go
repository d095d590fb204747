// Package analysis provides sampling and equilibrium tools for the
// double-well field.
//
//   - [Linspace], [SampleField]: the static curve drawn under the particle
//   - [FixedPoints]: closed-form equilibria with stability classification
//   - [BifurcationDiagram]: equilibria swept over r at fixed h
//   - [Surface]: the cusp catastrophe manifold h = x^3 - r*x
//
// # Hysteresis
//
// For r > 0 and |h| small the field has two stable wells. Sweeping h past
// the fold at |h| = 2(r/3)^(3/2) removes one of them:
//
//	pts := analysis.FixedPoints(3, 0) // -sqrt(3), 0, sqrt(3)
package analysis
