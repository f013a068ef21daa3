package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Orbit control limits.
const (
	minPolar        = 0.01
	maxPolar        = math.Pi - 0.01
	DefaultMinDist  = 10.0
	DefaultMaxDist  = 800.0
	settleThreshold = 1e-6
)

// OrbitControls moves a camera on a sphere around a target. Input is
// accumulated and bled off over several updates when damping is enabled.
type OrbitControls struct {
	camera  *PerspectiveCamera
	Target  mgl64.Vec3
	Damping float64 // Fraction of pending motion applied per update; 0 applies it at once
	MinDist float64
	MaxDist float64

	azimuth  float64
	polar    float64
	distance float64

	pendingAz    float64
	pendingPolar float64
	pendingScale float64 // Multiplicative, 1 = no change

	home mgl64.Vec3
}

// NewOrbitControls derives spherical coordinates from the camera's current position.
func NewOrbitControls(cam *PerspectiveCamera, damping float64) *OrbitControls {
	oc := &OrbitControls{
		camera:       cam,
		Target:       cam.Target,
		Damping:      damping,
		MinDist:      DefaultMinDist,
		MaxDist:      DefaultMaxDist,
		pendingScale: 1,
		home:         cam.Position,
	}
	oc.syncFromCamera()
	return oc
}

func (oc *OrbitControls) syncFromCamera() {
	off := oc.camera.Position.Sub(oc.Target)
	oc.distance = off.Len()
	if oc.distance == 0 {
		oc.distance = oc.MinDist
		off = mgl64.Vec3{0, 0, oc.distance}
	}
	oc.polar = math.Acos(mgl64.Clamp(off.Y()/oc.distance, -1, 1))
	oc.azimuth = math.Atan2(off.X(), off.Z())
}

// Rotate queues an orbit by the given azimuth and polar deltas in radians.
func (oc *OrbitControls) Rotate(dAzimuth, dPolar float64) {
	oc.pendingAz += dAzimuth
	oc.pendingPolar += dPolar
}

// Dolly queues a distance change; factor < 1 moves closer.
func (oc *OrbitControls) Dolly(factor float64) {
	if factor > 0 {
		oc.pendingScale *= factor
	}
}

// Reset returns the camera to where it started and drops pending input.
func (oc *OrbitControls) Reset() {
	oc.pendingAz, oc.pendingPolar, oc.pendingScale = 0, 0, 1
	oc.camera.Position = oc.home
	oc.camera.Target = oc.Target
	oc.syncFromCamera()
}

// Distance returns the current camera distance from the target.
func (oc *OrbitControls) Distance() float64 {
	return oc.distance
}

// Settled reports whether no queued motion remains.
func (oc *OrbitControls) Settled() bool {
	return math.Abs(oc.pendingAz) < settleThreshold &&
		math.Abs(oc.pendingPolar) < settleThreshold &&
		math.Abs(oc.pendingScale-1) < settleThreshold
}

// Update applies pending motion and writes the camera position. It returns
// true if the camera moved.
func (oc *OrbitControls) Update() bool {
	if oc.Settled() {
		oc.pendingAz, oc.pendingPolar, oc.pendingScale = 0, 0, 1
		return false
	}

	f := 1.0
	if oc.Damping > 0 && oc.Damping < 1 {
		f = oc.Damping
	}

	oc.azimuth += oc.pendingAz * f
	oc.polar = mgl64.Clamp(oc.polar+oc.pendingPolar*f, minPolar, maxPolar)
	step := math.Pow(oc.pendingScale, f)
	oc.distance = mgl64.Clamp(oc.distance*step, oc.MinDist, oc.MaxDist)

	oc.pendingAz *= 1 - f
	oc.pendingPolar *= 1 - f
	oc.pendingScale /= step

	sinP := math.Sin(oc.polar)
	oc.camera.Position = oc.Target.Add(mgl64.Vec3{
		oc.distance * sinP * math.Sin(oc.azimuth),
		oc.distance * math.Cos(oc.polar),
		oc.distance * sinP * math.Cos(oc.azimuth),
	})
	oc.camera.Target = oc.Target
	return true
}
