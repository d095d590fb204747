package sim

import (
	"fmt"

	"github.com/san-kum/bistable/internal/dynamo"
)

// Series indices inside a Payload.
const (
	AxisSeries = iota
	CurveSeries
	MarkerSeries
	seriesCount
)

// Series is one plotted data set.
type Series struct {
	Name string    `json:"name"`
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`
}

// Payload is the frame handed to a rendering sink after each tick.
type Payload struct {
	Title  string   `json:"title"`
	Series []Series `json:"data"`
}

// Validate checks that p has the axis, curve and marker series.
func (p Payload) Validate() error {
	if len(p.Series) < seriesCount {
		return fmt.Errorf("%w: want %d series, got %d", dynamo.ErrMalformedPayload, seriesCount, len(p.Series))
	}
	return nil
}

func (p Payload) Curve() Series  { return p.Series[CurveSeries] }
func (p Payload) Marker() Series { return p.Series[MarkerSeries] }

// clone copies p deeply enough that writes to the curve and marker series
// do not reach the caller's slices.
func (p Payload) clone() Payload {
	c := Payload{Title: p.Title, Series: make([]Series, len(p.Series))}
	copy(c.Series, p.Series)
	return c
}

// Snapshot is a read-only copy of the simulation state.
type Snapshot struct {
	T            float64
	X            float64
	NoiseEnabled bool
}

// Finite reports whether the trajectory has not diverged.
func (s Snapshot) Finite() bool { return dynamo.Finite(s.T, s.X) }

func Title(t float64) string { return fmt.Sprintf("t=%.2f", t) }
