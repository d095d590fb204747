package sim_test

import (
	"io"
	"log/slog"
	"math"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bistable/internal/config"
	"github.com/san-kum/bistable/internal/dynamo"
	"github.com/san-kum/bistable/internal/sim"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

var _ = Describe("Session", func() {
	var (
		cfg     *config.Config
		session *sim.Session
		frame   sim.Payload
		params  dynamo.Params
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		params = dynamo.Params{R: 1, H: 0}
	})

	JustBeforeEach(func() {
		var err error
		session, err = sim.New(cfg, discard)
		Expect(err).NotTo(HaveOccurred())
		frame = session.NewPayload(params)
	})

	Describe("New", func() {
		It("starts at the configured initial state", func() {
			Expect(session.Snapshot()).To(Equal(sim.Snapshot{T: 0, X: 0, NoiseEnabled: false}))
		})

		It("rejects an invalid configuration", func() {
			bad := config.DefaultConfig()
			bad.Substeps = 0
			_, err := sim.New(bad, discard)
			Expect(err).To(MatchError(config.ErrInvalidConfig))
		})

		It("rejects an unknown integrator", func() {
			bad := config.DefaultConfig()
			bad.Integrator = "leapfrog"
			_, err := sim.New(bad, discard)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("NewPayload", func() {
		It("has the axis, curve and marker series", func() {
			Expect(frame.Validate()).To(Succeed())
			Expect(frame.Title).To(Equal("t=0.00"))
			Expect(frame.Curve().X).To(HaveLen(100))
			Expect(frame.Curve().X[0]).To(Equal(-5.0))
			Expect(frame.Curve().X[99]).To(Equal(5.0))
			Expect(frame.Marker().X).To(Equal([]float64{0}))
			Expect(frame.Marker().Y).To(Equal([]float64{0}))
		})
	})

	Describe("Tick", func() {
		It("keeps zero as a fixed point without forcing or noise", func() {
			next, err := session.Tick(params, 1, 1.0/60, frame)
			Expect(err).NotTo(HaveOccurred())

			snap := session.Snapshot()
			Expect(snap.X).To(Equal(0.0))
			Expect(snap.T).To(Equal(1.0 / 60))
			Expect(next.Title).To(Equal("t=0.02"))
			Expect(next.Marker().X).To(Equal([]float64{0}))
		})

		It("moves toward the forcing direction", func() {
			_, err := session.Tick(dynamo.Params{R: 1, H: 0.5}, 1, 1.0/60, frame)
			Expect(err).NotTo(HaveOccurred())
			Expect(session.Snapshot().X).To(BeNumerically(">", 0))
		})

		It("samples the curve at t = 0 from the tick's parameters", func() {
			next, err := session.Tick(dynamo.Params{R: 2, H: 1}, 1, 1.0/60, frame)
			Expect(err).NotTo(HaveOccurred())
			curve := next.Curve()
			for i, x := range curve.X {
				Expect(curve.Y[i]).To(BeNumerically("~", 2*x-x*x*x+1, 1e-12))
			}
		})

		It("advances t monotonically", func() {
			last := 0.0
			for i := 0; i < 120; i++ {
				var err error
				frame, err = session.Step(params, frame)
				Expect(err).NotTo(HaveOccurred())
				t := session.Snapshot().T
				Expect(t).To(BeNumerically(">", last))
				last = t
			}
			Expect(last).To(BeNumerically("~", 2.0, 1e-9))
			Expect(frame.Title).To(Equal("t=2.00"))
		})

		It("does not modify the payload it was given", func() {
			before := frame.Marker().X[0]
			_, err := session.Tick(dynamo.Params{R: 1, H: 3}, 1, 1.0/60, frame)
			Expect(err).NotTo(HaveOccurred())
			Expect(frame.Title).To(Equal("t=0.00"))
			Expect(frame.Marker().X[0]).To(Equal(before))
		})

		It("keeps extra series from the previous frame", func() {
			frame.Series = append(frame.Series, sim.Series{Name: "overlay", X: []float64{1}, Y: []float64{1}})
			next, err := session.Tick(params, 1, 1.0/60, frame)
			Expect(err).NotTo(HaveOccurred())
			Expect(next.Series).To(HaveLen(4))
			Expect(next.Series[3].Name).To(Equal("overlay"))
		})

		DescribeTable("rejects invalid input without mutating state",
			func(n int, dt float64, malformed bool, want error) {
				_, err := session.Tick(dynamo.Params{R: 1, H: 1}, 1, 1.0/60, frame)
				Expect(err).NotTo(HaveOccurred())
				before := session.Snapshot()

				prev := frame
				if malformed {
					prev = sim.Payload{Title: "t=0.00", Series: frame.Series[:2]}
				}
				out, err := session.Tick(dynamo.Params{R: 1, H: 1}, n, dt, prev)
				Expect(err).To(MatchError(want))
				Expect(out.Title).To(Equal(prev.Title))
				Expect(session.Snapshot()).To(Equal(before))
			},
			Entry("zero substeps", 0, 1.0/60, false, dynamo.ErrInvalidSubsteps),
			Entry("negative substeps", -1, 1.0/60, false, dynamo.ErrInvalidSubsteps),
			Entry("zero dt", 1, 0.0, false, dynamo.ErrInvalidStep),
			Entry("malformed payload", 1, 1.0/60, true, dynamo.ErrMalformedPayload),
		)

		It("reports a typed error for rejected substeps", func() {
			_, err := session.Tick(params, 0, 1.0/60, frame)
			var tickErr *dynamo.TickError
			Expect(err).To(BeAssignableToTypeOf(tickErr))
		})

		It("matches a single tick split into substeps to the same end time", func() {
			_, err := session.Tick(dynamo.Params{R: 1, H: 0.2}, 8, 1.0/60, frame)
			Expect(err).NotTo(HaveOccurred())
			Expect(session.Snapshot().T).To(BeNumerically("~", 1.0/60, 1e-15))
		})

		It("propagates divergence without clamping", func() {
			cfg2 := config.DefaultConfig()
			cfg2.Initial.X = 1e200
			s, err := sim.New(cfg2, discard)
			Expect(err).NotTo(HaveOccurred())
			_, err = s.Tick(params, 1, 1.0/60, s.NewPayload(params))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Snapshot().Finite()).To(BeFalse())
		})
	})

	Describe("noise", func() {
		BeforeEach(func() {
			params = dynamo.Params{R: 0, H: 0}
			cfg.Noise.Seed = 11
		})

		It("stays within the cumulative half-width bound", func() {
			Expect(session.ToggleNoise(1)).To(Equal(sim.LabelRemoveNoise))
			for i := 1; i <= 500; i++ {
				var err error
				frame, err = session.Step(params, frame)
				Expect(err).NotTo(HaveOccurred())
				Expect(math.Abs(session.Snapshot().X)).To(BeNumerically("<=", 0.0025*float64(i)))
			}
			Expect(session.Snapshot().X).NotTo(Equal(0.0))
		})

		It("is reproducible for a fixed seed", func() {
			other, err := sim.New(cfg, discard)
			Expect(err).NotTo(HaveOccurred())
			session.ToggleNoise(1)
			other.ToggleNoise(1)
			otherFrame := other.NewPayload(params)
			for i := 0; i < 10; i++ {
				frame, _ = session.Step(params, frame)
				otherFrame, _ = other.Step(params, otherFrame)
			}
			Expect(session.Snapshot()).To(Equal(other.Snapshot()))
		})

		It("is not applied while disabled", func() {
			for i := 0; i < 10; i++ {
				frame, _ = session.Step(params, frame)
			}
			Expect(session.Snapshot().X).To(Equal(0.0))
		})

		Context("enabled from configuration", func() {
			BeforeEach(func() { cfg.Noise.Enabled = true })

			It("starts enabled", func() {
				Expect(session.Snapshot().NoiseEnabled).To(BeTrue())
			})
		})
	})

	Describe("ToggleNoise", func() {
		DescribeTable("follows click parity",
			func(clicks int, label string, enabled bool) {
				Expect(session.ToggleNoise(clicks)).To(Equal(label))
				Expect(session.Snapshot().NoiseEnabled).To(Equal(enabled))
			},
			Entry("no clicks", 0, "Add Noise", false),
			Entry("one click", 1, "Remove Noise", true),
			Entry("two clicks", 2, "Add Noise", false),
			Entry("seven clicks", 7, "Remove Noise", true),
		)
	})

	Describe("Reset", func() {
		JustBeforeEach(func() {
			for i := 0; i < 30; i++ {
				frame, _ = session.Step(dynamo.Params{R: 1, H: 2}, frame)
			}
		})

		It("restores the initial state and re-arms the trigger", func() {
			count, ok := session.Reset(1)
			Expect(ok).To(BeTrue())
			Expect(count).To(Equal(0))
			Expect(session.Snapshot().T).To(Equal(0.0))
			Expect(session.Snapshot().X).To(Equal(0.0))
		})

		It("is idempotent", func() {
			session.Reset(1)
			first := session.Snapshot()
			session.Reset(1)
			Expect(session.Snapshot()).To(Equal(first))
			Expect(first.T).To(Equal(0.0))
			Expect(first.X).To(Equal(0.0))
		})

		It("ignores the initial invocation", func() {
			before := session.Snapshot()
			_, ok := session.Reset(0)
			Expect(ok).To(BeFalse())
			_, ok = session.Reset(-2)
			Expect(ok).To(BeFalse())
			Expect(session.Snapshot()).To(Equal(before))
		})

		It("keeps the noise flag", func() {
			session.ToggleNoise(1)
			session.Reset(3)
			Expect(session.Snapshot().NoiseEnabled).To(BeTrue())
		})

		Context("with a non-zero initial state", func() {
			BeforeEach(func() {
				cfg.Initial.T = 1.5
				cfg.Initial.X = -0.75
			})

			It("returns to it", func() {
				session.Reset(5)
				Expect(session.Snapshot().T).To(Equal(1.5))
				Expect(session.Snapshot().X).To(Equal(-0.75))
			})
		})
	})

	It("serializes concurrent ticks", func() {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				for j := 0; j < 50; j++ {
					_, err := session.Step(params, frame)
					Expect(err).NotTo(HaveOccurred())
				}
			}()
		}
		wg.Wait()
		Expect(session.Snapshot().T).To(BeNumerically("~", 400.0/60, 1e-9))
	})
})
