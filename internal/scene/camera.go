package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PerspectiveCamera looks from Position toward Target.
type PerspectiveCamera struct {
	FOV      float64 // Vertical field of view in degrees
	Aspect   float64
	Near     float64
	Far      float64
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	projection mgl64.Mat4
}

// NewPerspectiveCamera creates a camera at the origin looking down -Z.
func NewPerspectiveCamera(fov, aspect, near, far float64) *PerspectiveCamera {
	c := &PerspectiveCamera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Target: mgl64.Vec3{0, 0, -1},
		Up:     mgl64.Vec3{0, 1, 0},
	}
	c.UpdateProjection()
	return c
}

// SetAspect changes the aspect ratio and rebuilds the projection.
// Non-positive or non-finite ratios are ignored.
func (c *PerspectiveCamera) SetAspect(aspect float64) {
	if !(aspect > 0) || math.IsInf(aspect, 0) {
		return
	}
	c.Aspect = aspect
	c.UpdateProjection()
}

// UpdateProjection recomputes the projection matrix from FOV, Aspect, Near and Far.
func (c *PerspectiveCamera) UpdateProjection() {
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// Projection returns the projection matrix.
func (c *PerspectiveCamera) Projection() mgl64.Mat4 {
	return c.projection
}

// View returns the world-to-camera matrix.
func (c *PerspectiveCamera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

// ViewProjection returns Projection * View.
func (c *PerspectiveCamera) ViewProjection() mgl64.Mat4 {
	return c.projection.Mul4(c.View())
}

// Forward returns the unit viewing direction.
func (c *PerspectiveCamera) Forward() mgl64.Vec3 {
	d := c.Target.Sub(c.Position)
	if d.Len() == 0 {
		return mgl64.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

// ProjectNDC maps a world point to normalized device coordinates.
// ok is false when the point is behind the camera.
func (c *PerspectiveCamera) ProjectNDC(p mgl64.Vec3) (ndc mgl64.Vec3, ok bool) {
	clip := c.ViewProjection().Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return mgl64.Vec3{}, false
	}
	return clip.Vec3().Mul(1 / clip.W()), true
}

// Depth returns the distance from the camera plane to p along the view axis.
func (c *PerspectiveCamera) Depth(p mgl64.Vec3) float64 {
	return p.Sub(c.Position).Dot(c.Forward())
}
