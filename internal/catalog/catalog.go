// Package catalog holds the static descriptions of the sun and planets.
package catalog

import (
	"errors"
	"fmt"
	"math"
)

// RingedBody is the name of the single body that carries a ring.
const RingedBody = "Saturn"

// Ring dimensions relative to the ringed body's radius.
const (
	RingInnerGap  = 3.0
	RingOuterGap  = 8.0
	RingSegments  = 32
	RingColor     = 0xddbb88
	OrbitColor    = 0x888888
	OrbitOpacity  = 0.3
	StarColor     = 0xffffff
	SphereSegment = 32
)

var (
	ErrEmpty             = errors.New("catalog is empty")
	ErrNoCentralBody     = errors.New("first catalog entry must be a central body")
	ErrDuplicateName     = errors.New("duplicate body name")
	ErrInvalidBody       = errors.New("invalid body")
	ErrRingedBodyMissing = errors.New("ringed body not in catalog")
)

// Body describes one celestial body. Values are display units, not physical ones.
type Body struct {
	Name          string  // Unique display name
	Radius        float64 // Sphere radius
	Color         uint32  // 0xRRGGBB
	Distance      float64 // Orbit radius from origin (0 for the central body)
	OrbitalSpeed  float64 // Radians per second at multiplier 1.0
	RotationSpeed float64 // Self-rotation, radians per second
}

// IsCentral reports whether the body sits at the origin without orbiting.
func (b Body) IsCentral() bool {
	return b.Distance == 0 && b.OrbitalSpeed == 0
}

// HasRing reports whether this is the ringed body.
func (b Body) HasRing() bool {
	return b.Name == RingedBody
}

// RingRadii returns the inner and outer ring radii for this body.
func (b Body) RingRadii() (inner, outer float64) {
	return b.Radius + RingInnerGap, b.Radius + RingOuterGap
}

// Catalog is an ordered list of bodies. Index 0 is the central body.
type Catalog []Body

// Default returns the sun and the eight planets in order from the sun.
func Default() Catalog {
	out := make(Catalog, len(defaultBodies))
	copy(out, defaultBodies)
	return out
}

var defaultBodies = []Body{
	{"Sun", 10, 0xffff00, 0, 0, 0.005},
	{"Mercury", 1.5, 0xaaaaaa, 20, 0.04, 0.004},
	{"Venus", 3.7, 0xffaa66, 30, 0.015, 0.002},
	{"Earth", 3.9, 0x3366ff, 40, 0.01, 0.02},
	{"Mars", 2.1, 0xff3300, 50, 0.008, 0.018},
	{"Jupiter", 8, 0xffcc99, 70, 0.002, 0.04},
	{"Saturn", 7, 0xffdd55, 90, 0.0009, 0.038},
	{"Uranus", 5, 0x66ccff, 110, 0.0004, 0.03},
	{"Neptune", 4.8, 0x3366ff, 130, 0.0001, 0.032},
}

// Central returns the central body.
func (c Catalog) Central() Body {
	if len(c) == 0 {
		return Body{}
	}
	return c[0]
}

// Orbiting returns every body except the central one.
func (c Catalog) Orbiting() []Body {
	if len(c) < 2 {
		return nil
	}
	return c[1:]
}

// Index returns the position of name in the catalog, or -1.
func (c Catalog) Index(name string) int {
	for i, b := range c {
		if b.Name == name {
			return i
		}
	}
	return -1
}

// Validate checks the invariants the scene builder relies on.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return ErrEmpty
	}
	if !c[0].IsCentral() {
		return fmt.Errorf("%w: %q has distance %g", ErrNoCentralBody, c[0].Name, c[0].Distance)
	}

	seen := make(map[string]bool, len(c))
	ringed := false
	for i, b := range c {
		if b.Name == "" {
			return fmt.Errorf("%w: entry %d has no name", ErrInvalidBody, i)
		}
		if seen[b.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, b.Name)
		}
		seen[b.Name] = true

		if !(b.Radius > 0) || math.IsInf(b.Radius, 0) {
			return fmt.Errorf("%w: %q radius %g", ErrInvalidBody, b.Name, b.Radius)
		}
		if b.Distance < 0 || math.IsNaN(b.Distance) {
			return fmt.Errorf("%w: %q distance %g", ErrInvalidBody, b.Name, b.Distance)
		}
		if i > 0 && b.Distance == 0 {
			return fmt.Errorf("%w: %q orbits at distance 0", ErrInvalidBody, b.Name)
		}
		if b.HasRing() {
			ringed = true
		}
	}
	if !ringed {
		return fmt.Errorf("%w: %q", ErrRingedBodyMissing, RingedBody)
	}
	return nil
}
