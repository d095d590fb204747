package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/bistable/internal/analysis"
	"github.com/san-kum/bistable/internal/sim"
)

// WritePayload encodes one frame as indented JSON.
func WritePayload(w io.Writer, p sim.Payload) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(p)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// WriteSurface writes the cusp surface as r,h,x,stable rows.
func WriteSurface(w io.Writer, pts []analysis.SurfacePoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"r", "h", "x", "stable"}); err != nil {
		return err
	}
	for _, p := range pts {
		row := []string{formatFloat(p.R), formatFloat(p.H), formatFloat(p.X), strconv.FormatBool(p.Stable)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteBifurcation writes one row per equilibrium of each swept parameter.
func WriteBifurcation(w io.Writer, diag []analysis.BifurcationPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"r", "x", "stability"}); err != nil {
		return err
	}
	for _, bp := range diag {
		for _, fp := range bp.Points {
			if err := cw.Write([]string{formatFloat(bp.Param), formatFloat(fp.X), fp.Stability.String()}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
