// Package physics provides the double-well vector field.
//
// [DoubleWell] implements [dynamo.Configurable] so the live view can adjust
// r and h by name, and binds its coefficients into a [dynamo.Field] for the
// integrators:
//
//	well := physics.NewDoubleWell(1, 0)
//	f := well.Field()
//	dx := f(0, 0.5) // 0.5 - 0.125
package physics
