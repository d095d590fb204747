// Package sim runs the tick-driven double-well simulation.
//
// A [Session] holds (t, x, noiseEnabled) for the lifetime of the process.
// A control source drives it with three kinds of events:
//
//   - [Session.Tick]: integrate one tick, apply noise, return a new [Payload]
//   - [Session.Reset]: restore the initial state when the trigger count is positive
//   - [Session.ToggleNoise]: enable noise on odd click counts
//
// Ticks never mutate the payload they are given; the rendering sink applies
// the returned frame.
package sim
