// Package viz provides the terminal live view for the double-well simulation.
//
// The view is a Bubble Tea program that ticks the [sim.Session] at the
// configured frame rate and draws each frame on a braille [Canvas]: the zero
// axis, the field curve f(0, x) and the particle at (x, 0).
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	N     - Add/Remove noise
//	Tab   - Select r or h
//	↑/↓   - Adjust selected parameter
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
