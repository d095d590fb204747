package physics

import (
	"fmt"

	"github.com/san-kum/bistable/internal/dynamo"
)

// Derivative is the normal form of the cusp bifurcation, r*x - x^3 + h.
func Derivative(_ float64, x, r, h float64) float64 {
	return r*x - x*x*x + h
}

// DoubleWell models an overdamped particle in a tilted bistable potential.
type DoubleWell struct {
	R, H float64
}

func NewDoubleWell(r, h float64) *DoubleWell {
	return &DoubleWell{R: r, H: h}
}

func FromParams(p dynamo.Params) *DoubleWell { return &DoubleWell{R: p.R, H: p.H} }

func (d *DoubleWell) Params() dynamo.Params { return dynamo.Params{R: d.R, H: d.H} }

func (d *DoubleWell) Derive(t, x float64) float64 { return Derivative(t, x, d.R, d.H) }

// Field binds the current coefficients. Later SetParam calls do not affect
// a Field that was already returned.
func (d *DoubleWell) Field() dynamo.Field {
	r, h := d.R, d.H
	return func(t, x float64) float64 { return Derivative(t, x, r, h) }
}

// Potential returns V with f = -dV/dx.
func (d *DoubleWell) Potential(x float64) float64 {
	x2 := x * x
	return -0.5*d.R*x2 + 0.25*x2*x2 - d.H*x
}

// Slope is df/dx, negative at stable equilibria.
func (d *DoubleWell) Slope(x float64) float64 {
	return d.R - 3*x*x
}

func (d *DoubleWell) GetParams() map[string]float64 {
	return map[string]float64{"r": d.R, "h": d.H}
}

func (d *DoubleWell) SetParam(n string, v float64) error {
	switch n {
	case "r":
		d.R = v
	case "h":
		d.H = v
	default:
		return fmt.Errorf("%w: %q", dynamo.ErrUnknownParam, n)
	}
	return nil
}
