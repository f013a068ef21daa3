// Package orrery builds the animated solar system scene and holds the
// application state that frame updates and control commands act on.
package orrery

import "github.com/go-gl/mathgl/mgl64"

// Config holds tunables for scene construction, animation and controls.
type Config struct {
	Seed          uint64 // Random seed for star field and starting angles; 0 picks one from the clock
	StarCount     int
	StarExtent    float64 // Stars fill a cube of ±StarExtent
	OrbitSegments int
	SpeedMin      float64
	SpeedMax      float64
	SpeedStep     float64 // Keyboard slider increment
	SpeedDefault  float64
	WrapAngles    bool // Keep orbital and rotation angles in [0, 2π)
	FOV           float64
	Near          float64
	Far           float64
	CameraPos     mgl64.Vec3
	Damping       float64
	HoverOffset   float64 // Label offset from the pointer, in surface pixels
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		StarCount:     5000,
		StarExtent:    1000,
		OrbitSegments: 100,
		SpeedMin:      0,
		SpeedMax:      5,
		SpeedStep:     0.1,
		SpeedDefault:  1,
		WrapAngles:    true,
		FOV:           75,
		Near:          0.1,
		Far:           1000,
		CameraPos:     mgl64.Vec3{0, 50, 100},
		Damping:       0.05,
		HoverOffset:   2,
	}
}
