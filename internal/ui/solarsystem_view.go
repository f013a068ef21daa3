package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/orrery"
)

// Camera input steps.
const (
	orbitStep    = 0.1  // Radians per key press
	dragRadians  = 0.02 // Radians per dragged cell
	zoomInFactor = 0.9
)

// SolarSystemModel renders the 3D scene canvas and turns pointer and camera
// input over it into commands.
type SolarSystemModel struct {
	app    *orrery.App
	logger *logging.Logger

	width int
	rows  int // Canvas height in cells
	top   int // Screen row of the first canvas row

	dragging     bool
	lastX, lastY int
	inside       bool
}

// NewSolarSystemModel creates the canvas view.
func NewSolarSystemModel(app *orrery.App, logger *logging.Logger) SolarSystemModel {
	return SolarSystemModel{app: app, logger: logger}
}

// SetSize updates the canvas size in cells and resizes the render surface.
func (m SolarSystemModel) SetSize(width, rows, top int) SolarSystemModel {
	m.width = width
	m.rows = rows
	m.top = top
	m.apply(orrery.Resize{Width: width, Height: rows * 2})
	return m
}

// Update handles camera keys and mouse input over the canvas.
func (m SolarSystemModel) Update(msg tea.Msg) (SolarSystemModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "a":
			m.apply(orrery.OrbitCamera{Azimuth: -orbitStep})
		case "d":
			m.apply(orrery.OrbitCamera{Azimuth: orbitStep})
		case "w":
			m.apply(orrery.OrbitCamera{Polar: -orbitStep})
		case "s":
			m.apply(orrery.OrbitCamera{Polar: orbitStep})
		case "+", "=":
			m.apply(orrery.ZoomCamera{Factor: zoomInFactor})
		case "-":
			m.apply(orrery.ZoomCamera{Factor: 1 / zoomInFactor})
		case "c":
			m.apply(orrery.ResetCamera{})
		}

	case tea.MouseMsg:
		m = m.handleMouse(msg)
	}
	return m, nil
}

func (m SolarSystemModel) handleMouse(msg tea.MouseMsg) SolarSystemModel {
	if !m.contains(msg.X, msg.Y) {
		m.dragging = false
		return m.Leave()
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.apply(orrery.ZoomCamera{Factor: zoomInFactor})
		return m
	case msg.Button == tea.MouseButtonWheelDown:
		m.apply(orrery.ZoomCamera{Factor: 1 / zoomInFactor})
		return m

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.dragging = true
		m.lastX, m.lastY = msg.X, msg.Y
		return m

	case msg.Action == tea.MouseActionRelease:
		m.dragging = false
		return m

	case msg.Action == tea.MouseActionMotion && m.dragging:
		dx, dy := msg.X-m.lastX, msg.Y-m.lastY
		m.lastX, m.lastY = msg.X, msg.Y
		// Rows are twice as tall as columns are wide.
		m.apply(orrery.OrbitCamera{
			Azimuth: -float64(dx) * dragRadians,
			Polar:   -float64(dy) * 2 * dragRadians,
		})
		return m
	}

	px, py := PointerPixel(msg.X, msg.Y-m.top)
	m.inside = true
	m.apply(orrery.PointerMove{X: px, Y: py})
	return m
}

// Leave hides the hover label if the pointer was over the canvas.
func (m SolarSystemModel) Leave() SolarSystemModel {
	if m.inside {
		m.inside = false
		m.apply(orrery.PointerLeave{})
	}
	return m
}

func (m SolarSystemModel) contains(x, y int) bool {
	return x >= 0 && x < m.width && y >= m.top && y < m.top+m.rows
}

// PointerPixel maps a canvas cell to the surface pixel under its center.
func PointerPixel(col, row int) (float64, float64) {
	return float64(col) + 0.5, float64(2*row + 1)
}

func (m SolarSystemModel) apply(c orrery.Command) {
	if err := m.app.Apply(c); err != nil {
		m.logger.Debug("%s: %v", c.Name(), err)
	}
}

// View renders the canvas.
func (m SolarSystemModel) View() string {
	if m.width <= 0 || m.rows <= 0 {
		return ""
	}
	return m.app.Render().Styled()
}
