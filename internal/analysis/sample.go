package analysis

import (
	"fmt"

	"github.com/san-kum/bistable/internal/dynamo"
	"github.com/san-kum/bistable/internal/physics"
)

// Linspace returns count evenly spaced values over [start, stop]. The last
// element is exactly stop.
func Linspace(start, stop float64, count int) ([]float64, error) {
	if count < 2 {
		return nil, fmt.Errorf("%w, got %d", dynamo.ErrInvalidSampleCount, count)
	}
	step := (stop - start) / float64(count-1)
	xs := make([]float64, count)
	for i := range xs {
		xs[i] = start + step*float64(i)
	}
	xs[count-1] = stop
	return xs, nil
}

// SampleField evaluates the double-well field over xs at a fixed time.
func SampleField(xs []float64, t, r, h float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = physics.Derivative(t, x, r, h)
	}
	return ys
}
