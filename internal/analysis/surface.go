package analysis

// SurfacePoint is one vertex of the cusp catastrophe surface.
type SurfacePoint struct {
	R, X, H float64
	Stable  bool
}

// Surface evaluates the equilibrium manifold h = x^3 - r*x over the grid
// rs x xs. A vertex is stable where the field slope r - 3x^2 is negative.
func Surface(rs, xs []float64) []SurfacePoint {
	pts := make([]SurfacePoint, 0, len(rs)*len(xs))
	for _, r := range rs {
		for _, x := range xs {
			pts = append(pts, SurfacePoint{
				R:      r,
				X:      x,
				H:      x*x*x - r*x,
				Stable: r-3*x*x < 0,
			})
		}
	}
	return pts
}
