// Package noise applies the additive uniform perturbation used by the
// "Add Noise" control.
package noise

import (
	"math/rand"
	"sync"
)

// DefaultHalfWidth bounds each perturbation to [-0.0025, 0.0025).
const DefaultHalfWidth = 0.0025

// Injector draws perturbations from its own seeded source so runs are
// reproducible under a fixed seed.
type Injector struct {
	mu        sync.Mutex
	rng       *rand.Rand
	halfWidth float64
}

func New(seed int64, halfWidth float64) *Injector {
	return &Injector{
		rng:       rand.New(rand.NewSource(seed)),
		halfWidth: halfWidth,
	}
}

func (n *Injector) HalfWidth() float64 { return n.halfWidth }

// Draw returns one sample from U(0,1)*2w - w.
func (n *Injector) Draw() float64 {
	n.mu.Lock()
	u := n.rng.Float64()
	n.mu.Unlock()
	return u*2*n.halfWidth - n.halfWidth
}

// MaybeApply perturbs x when enabled. A disabled call consumes no draw.
func (n *Injector) MaybeApply(x float64, enabled bool) float64 {
	if !enabled {
		return x
	}
	return x + n.Draw()
}
