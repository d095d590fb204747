package dynamo

import (
	"fmt"
	"math"
)

// Field is a scalar vector field dx/dt = f(t, x).
type Field func(t, x float64) float64

// Params are the externally supplied coefficients of the double-well field.
type Params struct {
	R float64 `yaml:"r" json:"r"`
	H float64 `yaml:"h" json:"h"`
}

func (p Params) String() string {
	return fmt.Sprintf("r=%.2f h=%.2f", p.R, p.H)
}

// Stepper advances (t, x) by a single fixed step of size dt.
type Stepper interface {
	Step(f Field, x, t, dt float64) (float64, float64)
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Finite reports whether every value is neither NaN nor infinite.
func Finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
