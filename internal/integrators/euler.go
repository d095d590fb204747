package integrators

import "github.com/san-kum/bistable/internal/dynamo"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f dynamo.Field, x, t, dt float64) (float64, float64) {
	return t + dt, x + dt*f(t, x)
}
