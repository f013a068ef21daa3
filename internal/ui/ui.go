// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/orrery"
	"github.com/litescript/ls-orrery/internal/version"
)

// Layout rows outside the canvas.
const (
	headerRows = 1
	panelRows  = 6
)

// Frame rate limits.
const (
	DefaultFPS = 30
	MinFPS     = 5
	MaxFPS     = 60
)

// FrameMsg drives one animation frame.
type FrameMsg time.Time

// Model is the root Bubble Tea model.
type Model struct {
	app    *orrery.App
	logger *logging.Logger
	frame  time.Duration

	width  int
	height int
	ready  bool

	// Sub-models
	view  SolarSystemModel
	panel ControlPanelModel
}

// New creates the root model around app. fps is clamped to [MinFPS, MaxFPS].
func New(app *orrery.App, logger *logging.Logger, fps int) Model {
	if logger == nil {
		logger = logging.Discard()
	}
	fps = ClampFPS(fps)
	return Model{
		app:    app,
		logger: logger,
		frame:  time.Second / time.Duration(fps),
		view:   NewSolarSystemModel(app, logger.With("view")),
		panel:  NewControlPanelModel(app, logger.With("panel")),
	}
}

// ClampFPS keeps fps inside [MinFPS, MaxFPS]; zero selects DefaultFPS.
func ClampFPS(fps int) int {
	switch {
	case fps == 0:
		return DefaultFPS
	case fps < MinFPS:
		return MinFPS
	case fps > MaxFPS:
		return MaxFPS
	}
	return fps
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.frame)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "p", " ":
			m.apply(orrery.TogglePause{})
		case "r":
			m.apply(orrery.ResetSpeeds{})
		case "t":
			m.apply(orrery.ToggleTheme{})
		default:
			m.view, _ = m.view.Update(msg)
			m.panel, cmd = m.panel.Update(msg)
		}

	case tea.MouseMsg:
		if msg.Y >= m.panel.top {
			m.view = m.view.Leave()
			m.panel, cmd = m.panel.Update(msg)
		} else {
			m.view, cmd = m.view.Update(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		canvasRows := max(msg.Height-headerRows-panelRows, 0)
		m.view = m.view.SetSize(msg.Width, canvasRows, headerRows)
		m.panel = m.panel.SetSize(msg.Width, headerRows+canvasRows)

	case FrameMsg:
		m.app.Tick()
		cmd = frameCmd(m.frame)
	}

	return m, cmd
}

func (m Model) apply(c orrery.Command) {
	if err := m.app.Apply(c); err != nil {
		m.logger.Warn("%s: %v", c.Name(), err)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	parts := []string{m.renderHeader()}
	if canvas := m.view.View(); canvas != "" {
		parts = append(parts, canvas)
	}
	parts = append(parts, m.panel.View())
	return strings.Join(parts, "\n")
}

func (m Model) renderHeader() string {
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	state := "running"
	if m.app.Paused() {
		state = "paused"
	}
	line := accent.Render(" ls-orrery") +
		dim.Render(fmt.Sprintf(" v%s · %s · %s theme", version.Version, state, m.app.Theme()))

	if h := m.app.Hover(); h.Visible {
		line += dim.Render(" · ") + accent.Render(h.Name)
	}
	return lipgloss.NewStyle().MaxWidth(max(m.width, 1)).Render(line)
}

// App returns the application state the model drives.
func (m Model) App() *orrery.App {
	return m.app
}

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
