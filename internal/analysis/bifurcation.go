package analysis

import (
	"math"
	"sort"
)

// Stability classifies an equilibrium by the sign of df/dx.
type Stability int

const (
	Stable Stability = iota
	Unstable
	Marginal
)

func (s Stability) String() string {
	switch s {
	case Stable:
		return "stable"
	case Unstable:
		return "unstable"
	default:
		return "marginal"
	}
}

// FixedPoint is a real root of r*x - x^3 + h.
type FixedPoint struct {
	X         float64
	Slope     float64
	Stability Stability
}

const rootTol = 1e-9

// FixedPoints returns the equilibria of the field in ascending order.
// Repeated roots are reported once.
func FixedPoints(r, h float64) []FixedPoint {
	// x^3 + p x + q = 0
	p, q := -r, -h

	var roots []float64
	disc := 4*p*p*p + 27*q*q
	switch {
	case math.Abs(disc) < rootTol:
		if math.Abs(p) < rootTol {
			roots = []float64{0}
		} else {
			roots = []float64{3 * q / p, -3 * q / (2 * p)}
		}
	case disc < 0:
		m := 2 * math.Sqrt(-p/3)
		arg := 3 * q / (2 * p) * math.Sqrt(-3/p)
		theta := math.Acos(math.Max(-1, math.Min(1, arg))) / 3
		for k := 0; k < 3; k++ {
			roots = append(roots, m*math.Cos(theta-2*math.Pi*float64(k)/3))
		}
	default:
		s := math.Sqrt(q*q/4 + p*p*p/27)
		roots = []float64{math.Cbrt(-q/2+s) + math.Cbrt(-q/2-s)}
	}

	for i, x := range roots {
		roots[i] = polish(x, r, h)
	}
	sort.Float64s(roots)

	points := make([]FixedPoint, 0, len(roots))
	for i, x := range roots {
		if i > 0 && math.Abs(x-roots[i-1]) < 1e-7 {
			continue
		}
		slope := r - 3*x*x
		points = append(points, FixedPoint{X: x, Slope: slope, Stability: classify(slope)})
	}
	return points
}

func classify(slope float64) Stability {
	switch {
	case math.Abs(slope) < 1e-7:
		return Marginal
	case slope < 0:
		return Stable
	default:
		return Unstable
	}
}

// polish refines a root with Newton steps, stopping at flat points where
// the step would blow up.
func polish(x, r, h float64) float64 {
	for i := 0; i < 4; i++ {
		f := r*x - x*x*x + h
		df := r - 3*x*x
		if math.Abs(df) < 1e-6 {
			break
		}
		x -= f / df
	}
	return x
}

// BifurcationPoint records the equilibria for one parameter value.
type BifurcationPoint struct {
	Param  float64
	Points []FixedPoint
}

// BifurcationDiagram sweeps r over [rMin, rMax] at fixed h and records the
// equilibria at each step.
func BifurcationDiagram(h, rMin, rMax float64, steps int) ([]BifurcationPoint, error) {
	rs, err := Linspace(rMin, rMax, steps)
	if err != nil {
		return nil, err
	}
	results := make([]BifurcationPoint, 0, len(rs))
	for _, r := range rs {
		results = append(results, BifurcationPoint{Param: r, Points: FixedPoints(r, h)})
	}
	return results, nil
}
