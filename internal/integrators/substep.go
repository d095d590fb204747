package integrators

import (
	"fmt"
	"math"

	"github.com/san-kum/bistable/internal/dynamo"
)

// Advance integrates one tick of length dtTotal as n equal substeps,
// chaining each step's output into the next.
func Advance(s dynamo.Stepper, f dynamo.Field, x0, t0, dtTotal float64, n int) (float64, float64, error) {
	if n < 1 {
		return t0, x0, fmt.Errorf("%w, got %d", dynamo.ErrInvalidSubsteps, n)
	}
	if !(dtTotal > 0) || math.IsInf(dtTotal, 0) {
		return t0, x0, fmt.Errorf("%w, got %v", dynamo.ErrInvalidStep, dtTotal)
	}

	dt := dtTotal / float64(n)
	t, x := t0, x0
	for i := 0; i < n; i++ {
		t, x = s.Step(f, x, t, dt)
	}
	return t, x, nil
}

// New returns the stepper registered under name.
func New(name string) (dynamo.Stepper, error) {
	switch name {
	case "", "rk4":
		return NewRK4(), nil
	case "euler":
		return NewEuler(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}

// Names lists the integrators accepted by New.
func Names() []string { return []string{"rk4", "euler"} }
