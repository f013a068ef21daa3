// Package scene is a small retained-mode scene graph: nodes with transforms,
// primitive geometries, materials, lights, a perspective camera with orbit
// controls, and a ray caster for picking.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Hex converts a 0xRRGGBB value to a color.
func Hex(v uint32) colorful.Color {
	return colorful.Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
	}
}

// AmbientLight lights every surface equally.
type AmbientLight struct {
	Color     colorful.Color
	Intensity float64
}

// DirectionalLight shines from Position toward the origin.
type DirectionalLight struct {
	Color     colorful.Color
	Intensity float64
	Position  mgl64.Vec3
}

// Direction returns the unit vector pointing from the surface toward the light.
func (l DirectionalLight) Direction() mgl64.Vec3 {
	if l.Position.Len() == 0 {
		return mgl64.Vec3{0, 1, 0}
	}
	return l.Position.Normalize()
}

// Scene owns every node that gets rendered.
type Scene struct {
	root    *Node
	Ambient AmbientLight
	Lights  []DirectionalLight
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{root: NewGroup("scene")}
}

// Add inserts nodes at the top level.
func (s *Scene) Add(nodes ...*Node) {
	for _, n := range nodes {
		s.root.Add(n)
	}
}

// AddLight registers a directional light.
func (s *Scene) AddLight(l DirectionalLight) {
	s.Lights = append(s.Lights, l)
}

// Children returns the top-level nodes.
func (s *Scene) Children() []*Node {
	return s.root.Children()
}

// Walk visits every node depth-first, parents before children.
func (s *Scene) Walk(fn func(*Node)) {
	for _, n := range s.root.Children() {
		n.Walk(fn)
	}
}

// Count returns the total number of nodes below the root.
func (s *Scene) Count() int {
	n := 0
	s.Walk(func(*Node) { n++ })
	return n
}
