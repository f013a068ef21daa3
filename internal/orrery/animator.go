package orrery

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const twoPi = 2 * math.Pi

// AnimationState is the process-wide clock state.
type AnimationState struct {
	Paused    bool
	LastDelta float64 // Seconds, as last sampled from the clock
}

// Animator advances orbital and self-rotation angles.
type Animator struct {
	Bodies []*BodyState
	State  *AnimationState
	Wrap   bool
}

// Advance moves every body forward by delta seconds. Nothing is written
// while paused. Negative, NaN and infinite deltas count as zero.
func (a *Animator) Advance(delta float64) {
	if !(delta > 0) || math.IsInf(delta, 1) {
		delta = 0
	}
	a.State.LastDelta = delta
	if a.State.Paused {
		return
	}

	for i, b := range a.Bodies {
		rot := b.Node.Rotation.Y() + b.Body.RotationSpeed*delta
		if a.Wrap {
			rot = wrapAngle(rot)
		}
		b.Node.Rotation = mgl64.Vec3{b.Node.Rotation.X(), rot, b.Node.Rotation.Z()}

		// The central body only spins.
		if i == 0 {
			continue
		}

		b.Angle += b.Body.OrbitalSpeed * b.Multiplier * delta
		if a.Wrap {
			b.Angle = wrapAngle(b.Angle)
		}
		b.Node.Position = orbitPosition(b.Angle, b.Body.Distance)
	}
}

// wrapAngle maps a into [0, 2π).
func wrapAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}
