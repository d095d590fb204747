package integrators

import (
	"math"
	"testing"
)

func growth(t, x float64) float64 { return x }

func zero(t, x float64) float64 { return 0 }

func TestRK4ZeroField(t *testing.T) {
	integ := NewRK4()

	for _, tc := range []struct{ x, t, dt float64 }{
		{0, 0, 1.0 / 60},
		{3.5, 12.25, 0.5},
		{-1e3, -4, 1e-4},
	} {
		nt, nx := integ.Step(zero, tc.x, tc.t, tc.dt)
		if nx != tc.x {
			t.Errorf("x changed: %v -> %v", tc.x, nx)
		}
		if nt != tc.t+tc.dt {
			t.Errorf("t = %v, want %v", nt, tc.t+tc.dt)
		}
	}
}

func TestRK4Accuracy(t *testing.T) {
	integ := NewRK4()

	x, tm := 1.0, 0.0
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		tm, x = integ.Step(growth, x, tm, dt)
	}

	if math.Abs(x-math.E) > 1e-8 {
		t.Errorf("error too large: got %.12f, expected %.12f", x, math.E)
	}
	if math.Abs(tm-1.0) > 1e-12 {
		t.Errorf("time drifted: %v", tm)
	}
}

func TestRK4Order(t *testing.T) {
	integ := NewRK4()

	errAt := func(dt float64) float64 {
		x, tm := 1.0, 0.0
		for i := 0; i < int(math.Round(1/dt)); i++ {
			tm, x = integ.Step(growth, x, tm, dt)
		}
		return math.Abs(x - math.E)
	}

	// halving dt should cut the global error by roughly 2^4
	ratio := errAt(0.1) / errAt(0.05)
	if ratio < 12 || ratio > 20 {
		t.Errorf("convergence ratio %.2f, expected ~16", ratio)
	}
}

func TestRK4Deterministic(t *testing.T) {
	integ := NewRK4()
	f := func(t, x float64) float64 { return 2*x - x*x*x + 0.3 }

	t1, x1 := integ.Step(f, 0.4, 1, 0.02)
	t2, x2 := integ.Step(f, 0.4, 1, 0.02)
	if t1 != t2 || x1 != x2 {
		t.Error("identical inputs gave different results")
	}
}

func TestEulerFirstOrder(t *testing.T) {
	integ := NewEuler()
	tm, x := integ.Step(growth, 2, 0, 0.1)
	if math.Abs(x-2.2) > 1e-15 || tm != 0.1 {
		t.Errorf("got (%v, %v)", tm, x)
	}
}
