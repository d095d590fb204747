package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestFinite(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   bool
	}{
		{"empty", nil, true},
		{"normal", []float64{1.0, -2.0, 0}, true},
		{"with NaN", []float64{1.0, math.NaN()}, false},
		{"with +Inf", []float64{math.Inf(1)}, false},
		{"with -Inf", []float64{0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Finite(tt.values...); got != tt.want {
				t.Errorf("Finite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParamsString(t *testing.T) {
	p := Params{R: 1.5, H: -0.25}
	if got := p.String(); got != "r=1.50 h=-0.25" {
		t.Errorf("String() = %q", got)
	}
}

func TestTickErrorUnwrap(t *testing.T) {
	err := &TickError{Time: 1, X: 2, Wrapped: ErrInvalidSubsteps}
	if !errors.Is(err, ErrInvalidSubsteps) {
		t.Error("TickError does not unwrap to its cause")
	}
	if err.Error() != ErrInvalidSubsteps.Error() {
		t.Errorf("Error() = %q", err.Error())
	}
}
