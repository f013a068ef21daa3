package orrery

import "errors"

var (
	ErrUnknownBody    = errors.New("unknown or non-orbiting body")
	ErrInvalidSpeed   = errors.New("invalid speed value")
	ErrEmptyViewport  = errors.New("viewport has zero area")
	ErrUnknownCommand = errors.New("unknown command")
)

// Command is a single UI action consumed by App.Apply.
type Command interface {
	Name() string
}

// SetSpeed is slider input for one body.
type SetSpeed struct {
	Body  string
	Value float64
}

// NudgeSpeed moves a slider by Delta from its current value.
type NudgeSpeed struct {
	Body  string
	Delta float64
}

// TogglePause flips the pause flag.
type TogglePause struct{}

// ResetSpeeds puts every slider back to its default.
type ResetSpeeds struct{}

// ToggleTheme switches between dark and light.
type ToggleTheme struct{}

// Resize reports new container dimensions in surface pixels.
type Resize struct {
	Width, Height int
}

// PointerMove reports the pointer position in surface pixels.
type PointerMove struct {
	X, Y float64
}

// PointerLeave reports that the pointer left the viewport.
type PointerLeave struct{}

// OrbitCamera rotates the camera around its target, in radians.
type OrbitCamera struct {
	Azimuth, Polar float64
}

// ZoomCamera scales the camera distance; Factor < 1 moves closer.
type ZoomCamera struct {
	Factor float64
}

// ResetCamera returns the camera to its starting position.
type ResetCamera struct{}

func (SetSpeed) Name() string     { return "set_speed" }
func (NudgeSpeed) Name() string   { return "nudge_speed" }
func (TogglePause) Name() string  { return "toggle_pause" }
func (ResetSpeeds) Name() string  { return "reset_speeds" }
func (ToggleTheme) Name() string  { return "toggle_theme" }
func (Resize) Name() string       { return "resize" }
func (PointerMove) Name() string  { return "pointer_move" }
func (PointerLeave) Name() string { return "pointer_leave" }
func (OrbitCamera) Name() string  { return "orbit_camera" }
func (ZoomCamera) Name() string   { return "zoom_camera" }
func (ResetCamera) Name() string  { return "reset_camera" }
