package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/san-kum/bistable/internal/analysis"
	"github.com/san-kum/bistable/internal/config"
	"github.com/san-kum/bistable/internal/dynamo"
	"github.com/san-kum/bistable/internal/export"
	"github.com/san-kum/bistable/internal/integrators"
	"github.com/san-kum/bistable/internal/sim"
	"github.com/san-kum/bistable/internal/viz"
)

var (
	configFile string
	preset     string
	logLevel   string

	dt         float64
	substeps   int
	r          float64
	h          float64
	x0         float64
	seed       int64
	noiseOn    bool
	integrator string
	frameRate  int
	themeName  string

	ticks  int
	plot   bool
	width  int
	height int

	rMin, rMax float64
	steps      int
	points     int
)

var logger = slog.Default()

func main() {
	rootCmd := &cobra.Command{
		Use:   "bistable",
		Short: "double-well oscillator lab",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(cmd.ErrOrStderr(), logLevel)
			if err != nil {
				return err
			}
			logger = l
			slog.SetDefault(l)
			return nil
		},
		RunE:          runLive,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	addSimFlags(rootCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "ticks per second")
	liveCmd.Flags().StringVar(&themeName, "theme", "cyberpunk", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "advance the simulation headlessly",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	addSimFlags(runCmd)
	runCmd.Flags().IntVar(&ticks, "ticks", 600, "number of ticks")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot x(t) and the final field curve")

	exportCmd := &cobra.Command{
		Use:   "export [file]",
		Short: "render the frame after N ticks (png, svg or json)",
		Args:  cobra.ExactArgs(1),
		RunE:  exportFrame,
	}
	addSimFlags(exportCmd)
	exportCmd.Flags().IntVar(&ticks, "ticks", 60, "number of ticks before rendering")
	exportCmd.Flags().IntVar(&width, "width", 800, "image width")
	exportCmd.Flags().IntVar(&height, "height", 480, "image height")

	fixedCmd := &cobra.Command{
		Use:   "fixed",
		Short: "list equilibria for r and h",
		Args:  cobra.NoArgs,
		RunE:  listFixedPoints,
	}
	fixedCmd.Flags().Float64Var(&r, "r", config.DefaultR, "bifurcation parameter")
	fixedCmd.Flags().Float64Var(&h, "h", config.DefaultH, "constant forcing")

	bifurcationCmd := &cobra.Command{
		Use:   "bifurcation [file]",
		Short: "sweep r at fixed h and write equilibria as csv",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeBifurcation,
	}
	bifurcationCmd.Flags().Float64Var(&h, "h", 0, "constant forcing")
	bifurcationCmd.Flags().Float64Var(&rMin, "r-min", -10, "sweep start")
	bifurcationCmd.Flags().Float64Var(&rMax, "r-max", 10, "sweep end")
	bifurcationCmd.Flags().IntVar(&steps, "steps", 201, "number of r values")

	surfaceCmd := &cobra.Command{
		Use:   "surface [file]",
		Short: "write the cusp catastrophe surface as csv",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeSurface,
	}
	surfaceCmd.Flags().IntVar(&points, "points", 401, "grid points per axis over [-10, 10]")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(out, "  %-12s %s x0=%.2f noise=%v\n", name, p.Params, p.Initial.X, p.Noise.Enabled)
			}
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [file]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
	addSimFlags(initCmd)

	rootCmd.AddCommand(liveCmd, runCmd, exportCmd, fixedCmd, bifurcationCmd, surfaceCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&dt, "dt", config.DefaultDt, "tick length")
	f.IntVar(&substeps, "substeps", config.DefaultSubsteps, "integrator substeps per tick")
	f.Float64Var(&r, "r", config.DefaultR, "bifurcation parameter")
	f.Float64Var(&h, "h", config.DefaultH, "constant forcing")
	f.Float64Var(&x0, "x0", 0, "initial state")
	f.Int64Var(&seed, "seed", time.Now().UnixNano(), "noise seed")
	f.BoolVar(&noiseOn, "noise", false, "start with noise enabled")
	f.StringVar(&integrator, "integrator", "rk4", "integrator ("+strings.Join(integrators.Names(), ", ")+")")
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: "15:04:05",
	})), nil
}

// loadConfig resolves preset, config file and explicitly set flags, in that
// order of precedence from lowest to highest.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("dt") {
		cfg.Dt = dt
	}
	if f.Changed("substeps") {
		cfg.Substeps = substeps
	}
	if f.Changed("r") {
		cfg.Params.R = r
	}
	if f.Changed("h") {
		cfg.Params.H = h
	}
	if f.Changed("x0") {
		cfg.Initial.X = x0
	}
	if f.Changed("seed") || cfg.Noise.Seed == 0 {
		cfg.Noise.Seed = seed
	}
	if f.Changed("noise") {
		cfg.Noise.Enabled = noiseOn
	}
	if f.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if f.Lookup("fps") != nil && f.Changed("fps") {
		cfg.FrameRate = frameRate
	}
	if f.Lookup("theme") != nil && f.Changed("theme") {
		cfg.Theme = themeName
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("config resolved", "integrator", cfg.Integrator, "dt", cfg.Dt, "substeps", cfg.Substeps, "params", cfg.Params.String())
	return cfg, nil
}

func newSession(cmd *cobra.Command) (*sim.Session, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	s, err := sim.New(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return s, cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	s, _, err := newSession(cmd)
	if err != nil {
		return err
	}
	return viz.Run(s, logger)
}

// advance runs n ticks at fixed params and returns the last frame and the
// visited x values.
func advance(s *sim.Session, p dynamo.Params, n int) (sim.Payload, []float64, error) {
	if n < 0 {
		return sim.Payload{}, nil, fmt.Errorf("ticks must be non-negative, got %d", n)
	}
	frame := s.NewPayload(p)
	xs := make([]float64, 0, n+1)
	xs = append(xs, s.Snapshot().X)
	for i := 0; i < n; i++ {
		var err error
		frame, err = s.Step(p, frame)
		if err != nil {
			return frame, xs, fmt.Errorf("tick %d: %w", i, err)
		}
		xs = append(xs, s.Snapshot().X)
	}
	return frame, xs, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	s, cfg, err := newSession(cmd)
	if err != nil {
		return err
	}

	start := time.Now()
	frame, xs, err := advance(s, cfg.Params, ticks)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	snap := s.Snapshot()
	fmt.Fprintf(out, "%s  x=%.6f  (%s, %s, %d ticks in %v)\n", frame.Title, snap.X, cfg.Params, cfg.Integrator, ticks, elapsed)
	if !snap.Finite() {
		fmt.Fprintln(out, "warning: state diverged")
	}

	if plot && snap.Finite() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(xs,
			asciigraph.Height(12),
			asciigraph.Width(70),
			asciigraph.Caption("x(t)")))
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(frame.Curve().Y,
			asciigraph.Height(12),
			asciigraph.Width(70),
			asciigraph.Caption(fmt.Sprintf("dx/dt over [%.0f, %.0f], particle at x=%.3f", cfg.Domain.Min, cfg.Domain.Max, snap.X))))
	}
	return nil
}

func exportFrame(cmd *cobra.Command, args []string) error {
	format, err := export.FormatFromPath(args[0])
	if err != nil {
		return err
	}
	s, cfg, err := newSession(cmd)
	if err != nil {
		return err
	}
	frame, _, err := advance(s, cfg.Params, ticks)
	if err != nil {
		return err
	}

	file, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	if err := export.Frame(file, frame, format, width, height); err != nil {
		return fmt.Errorf("render %s: %w", args[0], err)
	}
	logger.Info("frame exported", "path", args[0], "title", frame.Title)
	fmt.Fprintf(cmd.OutOrStdout(), "exported %s (%s)\n", args[0], frame.Title)
	return nil
}

func listFixedPoints(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "X\tSLOPE\tSTABILITY\n")
	for _, fp := range analysis.FixedPoints(r, h) {
		fmt.Fprintf(w, "%.6f\t%.4f\t%s\n", fp.X, fp.Slope, fp.Stability)
	}
	return w.Flush()
}

func outputFile(cmd *cobra.Command, args []string) (io.Writer, func() error, error) {
	if len(args) == 0 {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	file, err := os.Create(args[0])
	if err != nil {
		return nil, nil, err
	}
	return file, file.Close, nil
}

func writeBifurcation(cmd *cobra.Command, args []string) error {
	diag, err := analysis.BifurcationDiagram(h, rMin, rMax, steps)
	if err != nil {
		return err
	}
	w, closeFn, err := outputFile(cmd, args)
	if err != nil {
		return err
	}
	if err := export.WriteBifurcation(w, diag); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func writeSurface(cmd *cobra.Command, args []string) error {
	grid, err := analysis.Linspace(-10, 10, points)
	if err != nil {
		return err
	}
	w, closeFn, err := outputFile(cmd, args)
	if err != nil {
		return err
	}
	if err := export.WriteSurface(w, analysis.Surface(grid, grid)); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}
