package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/san-kum/bistable/internal/dynamo"
	"github.com/san-kum/bistable/internal/sim"
)

type Format string

const (
	PNG  Format = "png"
	SVG  Format = "svg"
	JSON Format = "json"
)

// FormatFromPath picks the output format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")); f {
	case PNG, SVG, JSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", filepath.Ext(path))
	}
}

var styles = map[string]chart.Style{
	"axis":  {StrokeColor: drawing.ColorBlack, StrokeWidth: 3},
	"field": {StrokeColor: drawing.ColorBlue, StrokeWidth: 2},
	"state": {StrokeWidth: chart.Disabled, DotWidth: 6, DotColor: drawing.ColorRed},
}

// Frame renders one payload as a chart: the zero axis, the field curve and
// the particle marker. Non-finite points are dropped.
func Frame(w io.Writer, p sim.Payload, format Format, width, height int) error {
	if err := p.Validate(); err != nil {
		return err
	}

	series := make([]chart.Series, 0, len(p.Series))
	for _, s := range p.Series {
		xs, ys := finitePoints(s.X, s.Y)
		if len(xs) == 0 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   styles[s.Name],
		})
	}

	graph := chart.Chart{
		Title:  p.Title,
		Width:  width,
		Height: height,
		XAxis:  chart.XAxis{Name: "x"},
		YAxis:  chart.YAxis{Name: "dx/dt"},
		Series: series,
	}

	switch format {
	case PNG:
		return graph.Render(chart.PNG, w)
	case SVG:
		return graph.Render(chart.SVG, w)
	case JSON:
		return WritePayload(w, p)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func finitePoints(xs, ys []float64) ([]float64, []float64) {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	outX := make([]float64, 0, n)
	outY := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if dynamo.Finite(xs[i], ys[i]) {
			outX = append(outX, xs[i])
			outY = append(outY, ys[i])
		}
	}
	return outX, outY
}
