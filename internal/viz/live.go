package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/bistable/internal/analysis"
	"github.com/san-kum/bistable/internal/config"
	"github.com/san-kum/bistable/internal/dynamo"
	"github.com/san-kum/bistable/internal/physics"
	"github.com/san-kum/bistable/internal/sim"
)

const (
	canvasWidth  = 72
	canvasHeight = 20
)

type TickMsg time.Time

// Model is the live view. It is both the control source for the session
// (ticks, sliders, buttons) and the sink that renders each frame.
type Model struct {
	session  *sim.Session
	cfg      config.Config
	well     *physics.DoubleWell
	frame    sim.Payload
	canvas   *Canvas
	running  bool
	showHelp bool
	theme    Theme
	styles   styles
	selected string
	log      *slog.Logger
	err      error

	resetClicks int
	noiseClicks int
	noiseLabel  string
}

func NewModel(session *sim.Session, logger *slog.Logger) Model {
	cfg := session.Config()
	well := physics.FromParams(cfg.Params)
	noiseClicks := 0
	if session.Snapshot().NoiseEnabled {
		noiseClicks = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	theme := GetTheme(cfg.Theme)
	return Model{
		session:     session,
		cfg:         cfg,
		well:        well,
		frame:       session.NewPayload(well.Params()),
		canvas:      NewCanvas(canvasWidth, canvasHeight),
		running:     true,
		theme:       theme,
		styles:      newStyles(theme),
		selected:    "r",
		log:         logger,
		noiseClicks: noiseClicks,
		noiseLabel:  session.ToggleNoise(noiseClicks),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FrameRate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.pressReset()
		case "n":
			m.pressNoise()
		case "tab":
			if m.selected == "r" {
				m.selected = "h"
			} else {
				m.selected = "r"
			}
		case "up", "k", "right", "l":
			m.adjustParam(m.selected, m.cfg.Slider.Step)
		case "down", "j", "left", "h":
			m.adjustParam(m.selected, -m.cfg.Slider.Step)
		case "t":
			m.theme = nextTheme(m.theme.Name)
			m.styles = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	next, err := m.session.Step(m.well.Params(), m.frame)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.frame = next
}

// pressReset mirrors a reset button: the click counter goes up, and is
// re-armed to zero once the session has applied it.
func (m *Model) pressReset() {
	m.resetClicks++
	if c, ok := m.session.Reset(m.resetClicks); ok {
		m.resetClicks = c
	}
}

func (m *Model) pressNoise() {
	m.noiseClicks++
	m.noiseLabel = m.session.ToggleNoise(m.noiseClicks)
}

func (m *Model) adjustParam(name string, delta float64) {
	v := m.cfg.Slider.Clamp(m.well.GetParams()[name] + delta)
	if err := m.well.SetParam(name, v); err != nil {
		m.log.Error("set param", "name", name, "err", err)
	}
}

// Params returns the slider values the next tick will use.
func (m Model) Params() dynamo.Params { return m.well.Params() }

func (m Model) Frame() sim.Payload { return m.frame }

func (m Model) NoiseLabel() string { return m.noiseLabel }

// draw renders the current frame onto the braille canvas.
func (m *Model) draw() {
	m.canvas.Clear()
	axis := m.frame.Series[sim.AxisSeries]
	curve := m.frame.Curve()
	marker := m.frame.Marker()

	vp := FitViewport(curve.X, curve.Y)
	m.canvas.DrawSeries(vp, axis.X, axis.Y)
	m.canvas.DrawSeries(vp, curve.X, curve.Y)
	if len(marker.X) > 0 && len(marker.Y) > 0 {
		m.canvas.DrawMarker(vp, marker.X[0], marker.Y[0])
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	s := m.styles
	snap := m.session.Snapshot()

	var b strings.Builder
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	b.WriteString(s.title.Render(fmt.Sprintf("DOUBLE WELL  %s  %s", m.frame.Title, status)) + "\n")

	plot := s.curve.Render(m.canvas.String())

	var p strings.Builder
	row := func(label, value string) {
		p.WriteString(s.label.Render(label) + s.value.Render(value) + "\n")
	}
	param := func(name string, v float64) {
		text := fmt.Sprintf("%+.2f", v)
		if name == m.selected {
			text = s.active.Render(text + " ◀")
		}
		row(name, text)
	}
	param("r", m.well.R)
	param("h", m.well.H)
	row("x", fmt.Sprintf("%+.4f", snap.X))
	row("V(x)", fmt.Sprintf("%+.4f", m.well.Potential(snap.X)))
	row("noise", m.noiseLabel)
	p.WriteString(s.separator(30) + "\n")
	p.WriteString(s.label.Render("equilibria") + "\n")
	for _, fp := range analysis.FixedPoints(m.well.R, m.well.H) {
		row("", fmt.Sprintf("%+.3f %s", fp.X, fp.Stability))
	}
	if !snap.Finite() {
		p.WriteString(s.warning.Render("state diverged, press r to reset") + "\n")
	}
	if m.err != nil {
		p.WriteString(s.warning.Render(m.err.Error()) + "\n")
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, plot, s.panel.Render(p.String())))
	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(s.help.Render(helpText))
	} else {
		b.WriteString(s.help.Render("space pause · r reset · n noise · tab select · ↑/↓ adjust · t theme · ? help · q quit"))
	}
	return b.String()
}

const helpText = `space  pause / resume
r      reset to the initial state
n      add / remove noise
tab    select r or h
↑ ↓    adjust the selected parameter by one slider step
t      cycle color theme
q      quit`

// Run starts the live view and blocks until the user quits.
func Run(session *sim.Session, logger *slog.Logger) error {
	p := tea.NewProgram(NewModel(session, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
