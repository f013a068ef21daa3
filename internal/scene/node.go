package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Geometry is implemented by the primitive shapes a node can carry.
type Geometry interface {
	geometry()
}

// SphereGeometry is a sphere centered on the node origin.
type SphereGeometry struct {
	Radius         float64
	WidthSegments  int
	HeightSegments int
}

// RingGeometry is a flat annulus in the node's local XY plane.
type RingGeometry struct {
	InnerRadius float64
	OuterRadius float64
	Segments    int
}

// LineGeometry is an open polyline; close it by repeating the first point.
type LineGeometry struct {
	Points []mgl64.Vec3
}

// PointsGeometry is an unconnected point cloud.
type PointsGeometry struct {
	Points []mgl64.Vec3
}

func (SphereGeometry) geometry() {}
func (RingGeometry) geometry()   {}
func (LineGeometry) geometry()   {}
func (PointsGeometry) geometry() {}

// Material controls how a node's geometry is shaded.
type Material struct {
	Color       colorful.Color
	Opacity     float64 // Used only when Transparent is set
	Transparent bool
	Shininess   float64 // Specular exponent; 0 disables highlights
	DoubleSide  bool
	Size        float64 // Point size for point clouds
}

// Alpha returns the effective opacity.
func (m Material) Alpha() float64 {
	if !m.Transparent {
		return 1
	}
	return m.Opacity
}

// Node is a transform in the scene graph, optionally carrying a geometry.
type Node struct {
	Name     string
	Position mgl64.Vec3
	Rotation mgl64.Vec3 // Euler angles in radians, applied X then Y then Z
	Geometry Geometry
	Material Material
	Visible  bool

	parent   *Node
	children []*Node
}

// NewGroup creates an empty transform node.
func NewGroup(name string) *Node {
	return &Node{Name: name, Visible: true}
}

// NewMesh creates a node carrying geometry and material.
func NewMesh(name string, g Geometry, m Material) *Node {
	return &Node{Name: name, Geometry: g, Material: m, Visible: true}
}

// Add attaches child nodes, detaching them from any previous parent.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c.parent != nil {
			c.parent.remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
}

func (n *Node) remove(c *Node) {
	for i, existing := range n.children {
		if existing == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// Parent returns the node's parent, or nil at the top.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children.
func (n *Node) Children() []*Node {
	return n.children
}

// Walk visits n and its descendants depth-first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// LocalMatrix returns translation * rotation for this node.
func (n *Node) LocalMatrix() mgl64.Mat4 {
	r := mgl64.HomogRotate3DX(n.Rotation.X()).
		Mul4(mgl64.HomogRotate3DY(n.Rotation.Y())).
		Mul4(mgl64.HomogRotate3DZ(n.Rotation.Z()))
	return mgl64.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z()).Mul4(r)
}

// WorldMatrix composes every ancestor's local matrix.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() mgl64.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}

// WorldNormal transforms a local direction to world space.
func (n *Node) WorldNormal(local mgl64.Vec3) mgl64.Vec3 {
	return n.WorldMatrix().Mul4x1(local.Vec4(0)).Vec3().Normalize()
}
