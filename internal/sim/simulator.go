package sim

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/san-kum/bistable/internal/analysis"
	"github.com/san-kum/bistable/internal/config"
	"github.com/san-kum/bistable/internal/dynamo"
	"github.com/san-kum/bistable/internal/integrators"
	"github.com/san-kum/bistable/internal/noise"
	"github.com/san-kum/bistable/internal/physics"
)

const (
	LabelAddNoise    = "Add Noise"
	LabelRemoveNoise = "Remove Noise"
)

// Session owns the mutable simulation state. All methods are safe for
// concurrent use; state is guarded by a single mutex.
type Session struct {
	mu           sync.Mutex
	t, x         float64
	noiseEnabled bool

	cfg        config.Config
	integrator dynamo.Stepper
	noise      *noise.Injector
	xs         []float64
	log        *slog.Logger
}

// New builds a session at the configured initial state.
func New(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	xs, err := analysis.Linspace(cfg.Domain.Min, cfg.Domain.Max, cfg.Domain.Samples)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		t:            cfg.Initial.T,
		x:            cfg.Initial.X,
		noiseEnabled: cfg.Noise.Enabled,
		cfg:          *cfg,
		integrator:   integ,
		noise:        noise.New(cfg.Noise.Seed, cfg.Noise.HalfWidth),
		xs:           xs,
		log:          logger,
	}, nil
}

func (s *Session) Config() config.Config { return s.cfg }

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{T: s.t, X: s.x, NoiseEnabled: s.noiseEnabled}
}

// NewPayload returns the initial frame: the zero axis, the field curve for
// p and the marker at the current state.
func (s *Session) NewPayload(p dynamo.Params) Payload {
	snap := s.Snapshot()
	zeros := make([]float64, len(s.xs))
	return Payload{
		Title: Title(snap.T),
		Series: []Series{
			{Name: "axis", X: append([]float64(nil), s.xs...), Y: zeros},
			{Name: "field", X: append([]float64(nil), s.xs...), Y: analysis.SampleField(s.xs, 0, p.R, p.H)},
			{Name: "state", X: []float64{snap.X}, Y: []float64{0}},
		},
	}
}

// Step runs Tick with the configured substep count and tick length.
func (s *Session) Step(p dynamo.Params, prev Payload) (Payload, error) {
	return s.Tick(p, s.cfg.Substeps, s.cfg.Dt, prev)
}

// Tick advances the state by dt split into n substeps, applies noise once,
// and returns a new frame derived from prev. The curve is always sampled at
// t = 0. On error the state is left untouched and prev is returned as is.
func (s *Session) Tick(p dynamo.Params, n int, dt float64, prev Payload) (Payload, error) {
	if err := prev.Validate(); err != nil {
		s.log.Warn("tick rejected", "err", err)
		return prev, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f := physics.FromParams(p).Field()
	t, x, err := integrators.Advance(s.integrator, f, s.x, s.t, dt, n)
	if err != nil {
		s.log.Warn("tick rejected", "err", err, "substeps", n, "dt", dt)
		return prev, &dynamo.TickError{Time: s.t, X: s.x, Wrapped: err}
	}
	x = s.noise.MaybeApply(x, s.noiseEnabled)

	if dynamo.Finite(s.x) && !dynamo.Finite(x) {
		s.log.Warn("state diverged", "t", t, "r", p.R, "h", p.H)
	}
	s.t, s.x = t, x

	next := prev.clone()
	next.Title = Title(t)
	next.Series[CurveSeries].X = append([]float64(nil), s.xs...)
	next.Series[CurveSeries].Y = analysis.SampleField(s.xs, 0, p.R, p.H)
	next.Series[MarkerSeries].X = []float64{x}
	next.Series[MarkerSeries].Y = []float64{0}
	return next, nil
}

// Reset restores the initial state when count > 0 and returns (0, true) so
// the caller can re-arm its trigger counter. A non-positive count is the
// control's initial invocation and changes nothing.
func (s *Session) Reset(count int) (int, bool) {
	if count <= 0 {
		return 0, false
	}
	s.mu.Lock()
	s.t, s.x = s.cfg.Initial.T, s.cfg.Initial.X
	s.mu.Unlock()

	s.log.Debug("simulation reset", "t", s.cfg.Initial.T, "x", s.cfg.Initial.X)
	return 0, true
}

// ToggleNoise sets the noise flag from the parity of clicks and returns the
// label for the control that fired it.
func (s *Session) ToggleNoise(clicks int) string {
	enabled := clicks%2 != 0

	s.mu.Lock()
	s.noiseEnabled = enabled
	s.mu.Unlock()

	s.log.Debug("noise toggled", "enabled", enabled, "clicks", clicks)
	if enabled {
		return LabelRemoveNoise
	}
	return LabelAddNoise
}

func (s *Session) String() string {
	snap := s.Snapshot()
	return fmt.Sprintf("%s x=%.4f noise=%v", Title(snap.T), snap.X, snap.NoiseEnabled)
}
