package integrators

import "github.com/san-kum/bistable/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta stepper.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(f dynamo.Field, x, t, dt float64) (float64, float64) {
	half := dt * 0.5

	k1 := dt * f(t, x)
	k2 := dt * f(t+half, x+k1*0.5)
	k3 := dt * f(t+half, x+k2*0.5)
	k4 := dt * f(t+dt, x+k3)

	return t + dt, x + (k1+2*k2+2*k3+k4)/6.0
}
