package orrery

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/render"
	"github.com/litescript/ls-orrery/internal/scene"
)

// Slider is the control for one orbiting body's speed multiplier.
type Slider struct {
	Body    string
	Value   float64
	Readout string
}

// Observer receives activity notifications, e.g. for metrics.
type Observer interface {
	Frame(delta float64)
	Command(name string)
	Hover(body string)
}

type nopObserver struct{}

func (nopObserver) Frame(float64)  {}
func (nopObserver) Command(string) {}
func (nopObserver) Hover(string)   {}

// Option customizes an App.
type Option func(*App)

// WithClock replaces the wall clock used for frame deltas.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.clock = scene.NewClock(now) }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithObserver sets the activity observer.
func WithObserver(o Observer) Option {
	return func(a *App) { a.observer = o }
}

// WithCatalog replaces the default catalog.
func WithCatalog(c catalog.Catalog) Option {
	return func(a *App) { a.catalog = c }
}

// App is the complete application state. Frame updates and commands are
// applied from a single goroutine.
type App struct {
	cfg      Config
	catalog  catalog.Catalog
	logger   *logging.Logger
	observer Observer

	sys      *System
	camera   *scene.PerspectiveCamera
	controls *scene.OrbitControls
	renderer *render.Renderer
	clock    *scene.Clock
	anim     AnimationState
	animator *Animator
	resolver *HoverResolver

	theme   Theme
	sliders []Slider
	hover   Hover
}

// New builds the scene and wires camera, controls and renderer. The viewport
// starts empty until the first Resize.
func New(cfg Config, opts ...Option) (*App, error) {
	a := &App{
		cfg:      cfg,
		catalog:  catalog.Default(),
		logger:   logging.Discard(),
		observer: nopObserver{},
		clock:    scene.NewClock(nil),
	}
	for _, opt := range opts {
		opt(a)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	sys, err := BuildScene(a.catalog, cfg, rng)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	a.sys = sys
	a.logger.Info("Scene built around %s: %d bodies, %d orbit guides, %d stars (seed %d)",
		a.catalog.Central().Name, len(sys.Bodies), len(sys.Guides), cfg.StarCount, seed)

	a.camera = scene.NewPerspectiveCamera(cfg.FOV, 1, cfg.Near, cfg.Far)
	a.camera.Position = cfg.CameraPos
	a.camera.Target = mgl64.Vec3{}
	a.controls = scene.NewOrbitControls(a.camera, cfg.Damping)
	a.renderer = render.New(0, 0)

	a.animator = &Animator{Bodies: sys.Bodies, State: &a.anim, Wrap: cfg.WrapAngles}
	a.resolver = NewHoverResolver(a.camera, sys, cfg.HoverOffset)

	for _, b := range a.catalog.Orbiting() {
		a.sliders = append(a.sliders, Slider{Body: b.Name})
		if err := a.setSpeed(len(a.sliders)-1, cfg.SpeedDefault); err != nil {
			return nil, err
		}
	}
	a.applyTheme()
	return a, nil
}

// Tick samples the clock, advances the animation and updates the controls.
func (a *App) Tick() {
	delta := a.clock.Delta()
	a.Advance(delta)
	a.controls.Update()
}

// Advance runs the animator for delta seconds.
func (a *App) Advance(delta float64) {
	a.animator.Advance(delta)
	a.observer.Frame(a.anim.LastDelta)
}

// Apply executes one command.
func (a *App) Apply(cmd Command) error {
	if cmd == nil {
		return ErrUnknownCommand
	}
	a.observer.Command(cmd.Name())

	switch c := cmd.(type) {
	case SetSpeed:
		i, err := a.sliderIndex(c.Body)
		if err != nil {
			return err
		}
		return a.setSpeed(i, c.Value)

	case NudgeSpeed:
		i, err := a.sliderIndex(c.Body)
		if err != nil {
			return err
		}
		return a.setSpeed(i, a.sliders[i].Value+c.Delta)

	case TogglePause:
		a.anim.Paused = !a.anim.Paused
		a.logger.Debug("Animation paused=%v", a.anim.Paused)

	case ResetSpeeds:
		for _, s := range a.sliders {
			if err := a.Apply(SetSpeed{Body: s.Body, Value: a.cfg.SpeedDefault}); err != nil {
				return err
			}
		}
		a.logger.Debug("Speeds reset to %.1fx", a.cfg.SpeedDefault)

	case ToggleTheme:
		a.theme = a.theme.Toggle()
		a.applyTheme()
		a.logger.Debug("Theme set to %s", a.theme)

	case Resize:
		if c.Width <= 0 || c.Height <= 0 {
			return fmt.Errorf("%w: %dx%d", ErrEmptyViewport, c.Width, c.Height)
		}
		a.camera.SetAspect(float64(c.Width) / float64(c.Height))
		a.renderer.SetSize(c.Width, c.Height)
		a.logger.Debug("Viewport resized to %dx%d", c.Width, c.Height)

	case PointerMove:
		w, h := a.renderer.Size()
		a.hover = a.resolver.Resolve(c.X, c.Y, w, h)
		if a.hover.Visible {
			a.observer.Hover(a.hover.Name)
		}

	case PointerLeave:
		a.hover = Hover{}

	case OrbitCamera:
		a.controls.Rotate(c.Azimuth, c.Polar)

	case ZoomCamera:
		a.controls.Dolly(c.Factor)

	case ResetCamera:
		a.controls.Reset()

	default:
		return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
	return nil
}

// sliderIndex maps an orbiting body to its slider; sliders follow catalog
// order after the central body.
func (a *App) sliderIndex(body string) (int, error) {
	i := a.catalog.Index(body) - 1
	if i < 0 || i >= len(a.sliders) {
		return -1, fmt.Errorf("%w: %q", ErrUnknownBody, body)
	}
	return i, nil
}

// setSpeed stores the clamped slider value, then propagates it to the body
// multiplier and the readout. NaN leaves the slider unchanged.
func (a *App) setSpeed(i int, v float64) error {
	s := &a.sliders[i]
	if math.IsNaN(v) {
		return fmt.Errorf("%w: %v for %s", ErrInvalidSpeed, v, s.Body)
	}
	v = math.Max(a.cfg.SpeedMin, math.Min(a.cfg.SpeedMax, v))
	// Drop float noise left by repeated keyboard steps.
	v = math.Round(v*1e6) / 1e6

	s.Value = v
	s.Readout = fmt.Sprintf("%.1fx", v)
	if b, ok := a.sys.Body(s.Body); ok {
		b.Multiplier = v
	}
	return nil
}

func (a *App) applyTheme() {
	bg, _ := a.theme.Palette()
	a.renderer.Background = bg
}

// Render draws the current frame with the hover label overlaid.
func (a *App) Render() *render.Canvas {
	bg, fg := a.theme.Palette()
	canvas := a.renderer.Render(a.sys.Scene, a.camera).Canvas(bg)
	if a.hover.Visible {
		col := int(a.hover.X)
		row := int(a.hover.Y) / 2
		canvas.PutText(col, row, a.hover.Name, fg, bg)
	}
	return canvas
}

// System returns the built scene and bodies.
func (a *App) System() *System { return a.sys }

// Camera returns the camera.
func (a *App) Camera() *scene.PerspectiveCamera { return a.camera }

// Renderer returns the renderer.
func (a *App) Renderer() *render.Renderer { return a.renderer }

// Config returns the configuration the app was built with.
func (a *App) Config() Config { return a.cfg }

// Sliders returns a copy of the slider states.
func (a *App) Sliders() []Slider {
	out := make([]Slider, len(a.sliders))
	copy(out, a.sliders)
	return out
}

// Paused reports whether the animation is paused.
func (a *App) Paused() bool { return a.anim.Paused }

// LastDelta returns the last frame delta in seconds.
func (a *App) LastDelta() float64 { return a.anim.LastDelta }

// PauseLabel is the pause button text.
func (a *App) PauseLabel() string {
	if a.anim.Paused {
		return "Resume"
	}
	return "Pause"
}

// Theme returns the current theme.
func (a *App) Theme() Theme { return a.theme }

// ThemeLabel is the theme button text.
func (a *App) ThemeLabel() string { return a.theme.ButtonLabel() }

// Hover returns the current hover label state.
func (a *App) Hover() Hover { return a.hover }
