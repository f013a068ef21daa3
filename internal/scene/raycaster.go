package scene

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line starting at Origin.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3 // Unit length
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectSphere returns the nearest non-negative hit distance.
func (r Ray) IntersectSphere(center mgl64.Vec3, radius float64) (float64, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectPlane returns the hit distance against the plane through point with normal n.
func (r Ray) IntersectPlane(point, n mgl64.Vec3) (float64, bool) {
	denom := n.Dot(r.Direction)
	if math.Abs(denom) < 1e-12 {
		return 0, false
	}
	t := point.Sub(r.Origin).Dot(n) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Intersection is a single ray hit.
type Intersection struct {
	Distance float64
	Point    mgl64.Vec3
	Object   *Node
}

// Raycaster picks nodes under a screen position.
type Raycaster struct {
	Ray  Ray
	Near float64
	Far  float64
}

// NewRaycaster creates a raycaster with an unbounded far distance.
func NewRaycaster() *Raycaster {
	return &Raycaster{Far: math.Inf(1)}
}

// SetFromCamera aims the ray from the camera through ndc, where both axes
// run from -1 to 1 and +Y is up.
func (rc *Raycaster) SetFromCamera(ndc mgl64.Vec2, cam *PerspectiveCamera) error {
	// A (-1, -1, 2, 2) viewport makes window coordinates equal NDC.
	p, err := mgl64.UnProject(mgl64.Vec3{ndc.X(), ndc.Y(), 0.75}, cam.View(), cam.Projection(), -1, -1, 2, 2)
	if err != nil {
		return err
	}
	dir := p.Sub(cam.Position)
	if dir.Len() == 0 {
		dir = cam.Forward()
	}
	rc.Ray = Ray{Origin: cam.Position, Direction: dir.Normalize()}
	return nil
}

// IntersectObjects tests the ray against the given nodes and returns hits
// sorted nearest first. Only sphere meshes take part; children are not visited.
func (rc *Raycaster) IntersectObjects(nodes []*Node) []Intersection {
	var hits []Intersection
	for _, n := range nodes {
		if n == nil || !n.Visible {
			continue
		}
		sphere, ok := n.Geometry.(SphereGeometry)
		if !ok {
			continue
		}
		t, ok := rc.Ray.IntersectSphere(n.WorldPosition(), sphere.Radius)
		if !ok || t < rc.Near || t > rc.Far {
			continue
		}
		hits = append(hits, Intersection{Distance: t, Point: rc.Ray.At(t), Object: n})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}
