package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/orrery"
)

// Slider layout within a panel column.
const (
	sliderRows  = 4
	nameWidth   = 8
	trackWidth  = 10
	trackOffset = 2 + nameWidth + 2 // marker, space, name, space, "["
)

// ControlPanelModel shows the speed sliders and buttons below the canvas.
type ControlPanelModel struct {
	app    *orrery.App
	logger *logging.Logger

	width    int
	top      int // Screen row of the first slider row
	selected int
}

// NewControlPanelModel creates the panel with the first slider selected.
func NewControlPanelModel(app *orrery.App, logger *logging.Logger) ControlPanelModel {
	return ControlPanelModel{app: app, logger: logger}
}

// SetSize sets the panel width and the screen row it starts on.
func (m ControlPanelModel) SetSize(width, top int) ControlPanelModel {
	m.width = width
	m.top = top
	return m
}

// Selected returns the index of the selected slider.
func (m ControlPanelModel) Selected() int {
	return m.selected
}

// Update handles slider keys and clicks on slider tracks.
func (m ControlPanelModel) Update(msg tea.Msg) (ControlPanelModel, tea.Cmd) {
	sliders := m.app.Sliders()
	if len(sliders) == 0 {
		return m, nil
	}
	step := m.app.Config().SpeedStep

	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "tab":
			m.selected = (m.selected + 1) % len(sliders)
		case "shift+tab":
			m.selected = (m.selected - 1 + len(sliders)) % len(sliders)
		case "left", "h":
			m.apply(orrery.NudgeSpeed{Body: sliders[m.selected].Body, Delta: -step})
		case "right", "l":
			m.apply(orrery.NudgeSpeed{Body: sliders[m.selected].Body, Delta: step})
		default:
			if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
				if i := int(key[0] - '1'); i < len(sliders) {
					m.selected = i
				}
			}
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			break
		}
		if i, v, ok := m.trackHit(msg.X, msg.Y); ok {
			m.selected = i
			m.apply(orrery.SetSpeed{Body: sliders[i].Body, Value: v})
		}
	}
	return m, nil
}

func (m ControlPanelModel) columnWidth() int {
	return max(m.width/2, 1)
}

// trackHit maps a screen cell to a slider index and the value at that point
// of its track.
func (m ControlPanelModel) trackHit(x, y int) (int, float64, bool) {
	row := y - m.top
	if row < 0 || row >= sliderRows {
		return 0, 0, false
	}
	col := x / m.columnWidth()
	i := col*sliderRows + row
	if col > 1 || i >= len(m.app.Sliders()) {
		return 0, 0, false
	}

	pos := x - col*m.columnWidth() - trackOffset
	if pos < 0 || pos >= trackWidth {
		return 0, 0, false
	}
	cfg := m.app.Config()
	// The first and last cells of the track are the range ends.
	v := cfg.SpeedMin + float64(pos)/(trackWidth-1)*(cfg.SpeedMax-cfg.SpeedMin)
	if cfg.SpeedStep > 0 {
		v = math.Round(v/cfg.SpeedStep) * cfg.SpeedStep
	}
	return i, v, true
}

func (m ControlPanelModel) apply(c orrery.Command) {
	if err := m.app.Apply(c); err != nil {
		m.logger.Debug("%s: %v", c.Name(), err)
	}
}

// Track renders a slider bar for value in [lo, hi].
func Track(value, lo, hi float64) string {
	filled := 0
	if hi > lo {
		filled = int(math.Round((value - lo) / (hi - lo) * trackWidth))
	}
	filled = max(0, min(trackWidth, filled))
	return strings.Repeat("■", filled) + strings.Repeat("─", trackWidth-filled)
}

// View renders the sliders, button row and help line.
func (m ControlPanelModel) View() string {
	bg, fg := m.app.Theme().Palette()
	base := lipgloss.NewStyle().Foreground(lipgloss.Color(fg.Hex())).Background(lipgloss.Color(bg.Hex()))
	selected := base.Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dim := base.Foreground(lipgloss.Color("244"))

	cfg := m.app.Config()
	sliders := m.app.Sliders()
	colW := m.columnWidth()

	var lines []string
	for row := 0; row < sliderRows; row++ {
		var b strings.Builder
		for col := 0; col < 2; col++ {
			i := col*sliderRows + row
			if i >= len(sliders) {
				continue
			}
			s := sliders[i]
			marker := " "
			style := base
			if i == m.selected {
				marker = "▸"
				style = selected
			}
			cell := fmt.Sprintf("%s %-*s [%s] %s", marker, nameWidth, s.Body, Track(s.Value, cfg.SpeedMin, cfg.SpeedMax), s.Readout)
			b.WriteString(style.Render(fit(cell, colW)))
		}
		lines = append(lines, b.String())
	}

	buttons := fmt.Sprintf(" [p] %s  [r] Reset  [t] %s", m.app.PauseLabel(), m.app.ThemeLabel())
	lines = append(lines, base.Render(fit(buttons, m.width)))

	help := " 1-8/tab: select | ←/→: speed | wasd/drag: orbit | +/-/wheel: zoom | c: camera | q: quit"
	lines = append(lines, dim.Render(fit(help, m.width)))

	return strings.Join(lines, "\n")
}

// fit pads or truncates s to exactly w cells.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) > w {
		return string(r[:w])
	}
	return s + strings.Repeat(" ", w-len(r))
}
