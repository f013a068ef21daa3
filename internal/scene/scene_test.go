package scene

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-9

func vecNear(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

func TestHex(t *testing.T) {
	c := Hex(0xff8000)
	if c.R != 1 || c.B != 0 || math.Abs(c.G-128.0/255) > eps {
		t.Errorf("Hex(0xff8000) = %+v", c)
	}
}

func TestNodeWorldMatrix(t *testing.T) {
	parent := NewGroup("parent")
	parent.Position = mgl64.Vec3{10, 0, 0}
	parent.Rotation = mgl64.Vec3{0, math.Pi / 2, 0}

	child := NewGroup("child")
	child.Position = mgl64.Vec3{0, 0, 5}
	parent.Add(child)

	// Rotating +Z by 90 degrees about Y gives +X.
	got := child.WorldPosition()
	want := mgl64.Vec3{15, 0, 0}
	if !vecNear(got, want, 1e-9) {
		t.Errorf("WorldPosition() = %v, want %v", got, want)
	}
	if child.Parent() != parent {
		t.Error("child parent not set")
	}
}

func TestNodeReparent(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	c := NewGroup("c")

	a.Add(c)
	b.Add(c)

	if len(a.Children()) != 0 {
		t.Errorf("a still has %d children", len(a.Children()))
	}
	if len(b.Children()) != 1 || c.Parent() != b {
		t.Error("c not moved to b")
	}
}

func TestRingNormalAfterTilt(t *testing.T) {
	ring := NewMesh("ring", RingGeometry{InnerRadius: 1, OuterRadius: 2, Segments: 8}, Material{})
	ring.Rotation = mgl64.Vec3{math.Pi / 2, 0, 0}

	n := ring.WorldNormal(mgl64.Vec3{0, 0, 1})
	if math.Abs(math.Abs(n.Y())-1) > 1e-9 {
		t.Errorf("tilted ring normal = %v, want vertical", n)
	}
}

func TestSceneCount(t *testing.T) {
	s := New()
	planet := NewMesh("planet", SphereGeometry{Radius: 1}, Material{})
	planet.Add(NewMesh("ring", RingGeometry{}, Material{}))
	s.Add(planet, NewMesh("stars", PointsGeometry{}, Material{}))

	if got := s.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
	if got := len(s.Children()); got != 2 {
		t.Errorf("Children() = %d, want 2", got)
	}
}

func TestCameraSetAspect(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 1000)
	before := cam.Projection()

	cam.SetAspect(2)
	if cam.Aspect != 2 {
		t.Errorf("Aspect = %v, want 2", cam.Aspect)
	}
	if cam.Projection() == before {
		t.Error("projection not rebuilt")
	}

	cam.SetAspect(0)
	cam.SetAspect(math.Inf(1))
	if cam.Aspect != 2 {
		t.Errorf("invalid aspect accepted: %v", cam.Aspect)
	}
}

func TestCameraProjectNDC(t *testing.T) {
	cam := NewPerspectiveCamera(90, 1, 0.1, 1000)
	cam.Position = mgl64.Vec3{0, 0, 10}
	cam.Target = mgl64.Vec3{}

	ndc, ok := cam.ProjectNDC(mgl64.Vec3{})
	if !ok {
		t.Fatal("origin should be in front of the camera")
	}
	if math.Abs(ndc.X()) > 1e-9 || math.Abs(ndc.Y()) > 1e-9 {
		t.Errorf("target projects to %v, want center", ndc)
	}

	// With a 90 degree FOV a point at 45 degrees lands on the edge.
	ndc, _ = cam.ProjectNDC(mgl64.Vec3{10, 0, 0})
	if math.Abs(ndc.X()-1) > 1e-9 {
		t.Errorf("edge point x = %v, want 1", ndc.X())
	}

	if _, ok := cam.ProjectNDC(mgl64.Vec3{0, 0, 20}); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestRaycasterHitsNearestSphere(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 1000)
	cam.Position = mgl64.Vec3{0, 0, 50}
	cam.Target = mgl64.Vec3{}

	far := NewMesh("far", SphereGeometry{Radius: 3}, Material{})
	far.Position = mgl64.Vec3{0, 0, -20}
	near := NewMesh("near", SphereGeometry{Radius: 2}, Material{})
	off := NewMesh("off", SphereGeometry{Radius: 2}, Material{})
	off.Position = mgl64.Vec3{30, 0, 0}

	rc := NewRaycaster()
	if err := rc.SetFromCamera(mgl64.Vec2{0, 0}, cam); err != nil {
		t.Fatalf("SetFromCamera: %v", err)
	}

	hits := rc.IntersectObjects([]*Node{far, off, near})
	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(hits))
	}
	if hits[0].Object != near {
		t.Errorf("nearest = %s, want near", hits[0].Object.Name)
	}
	if math.Abs(hits[0].Distance-48) > 1e-6 {
		t.Errorf("distance = %v, want 48", hits[0].Distance)
	}
}

func TestRaycasterIgnoresNonSpheres(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 1000)
	cam.Position = mgl64.Vec3{0, 0, 50}
	cam.Target = mgl64.Vec3{}

	ring := NewMesh("ring", RingGeometry{InnerRadius: 0, OuterRadius: 10}, Material{})
	hidden := NewMesh("hidden", SphereGeometry{Radius: 5}, Material{})
	hidden.Visible = false

	rc := NewRaycaster()
	_ = rc.SetFromCamera(mgl64.Vec2{}, cam)
	if hits := rc.IntersectObjects([]*Node{ring, hidden, nil}); len(hits) != 0 {
		t.Errorf("hits = %d, want 0", len(hits))
	}
}

func TestRaycasterOffCenter(t *testing.T) {
	cam := NewPerspectiveCamera(90, 1, 0.1, 1000)
	cam.Position = mgl64.Vec3{0, 0, 10}
	cam.Target = mgl64.Vec3{}

	right := NewMesh("right", SphereGeometry{Radius: 1}, Material{})
	right.Position = mgl64.Vec3{5, 0, 0}

	rc := NewRaycaster()
	// x=5 at depth 10 with a 90 degree FOV sits at ndc 0.5.
	_ = rc.SetFromCamera(mgl64.Vec2{0.5, 0}, cam)
	if hits := rc.IntersectObjects([]*Node{right}); len(hits) != 1 {
		t.Errorf("expected hit at ndc 0.5, got %d", len(hits))
	}

	_ = rc.SetFromCamera(mgl64.Vec2{-0.5, 0}, cam)
	if hits := rc.IntersectObjects([]*Node{right}); len(hits) != 0 {
		t.Errorf("expected miss at ndc -0.5, got %d", len(hits))
	}
}

func TestRayIntersectPlane(t *testing.T) {
	r := Ray{Origin: mgl64.Vec3{0, 10, 0}, Direction: mgl64.Vec3{0, -1, 0}}
	d, ok := r.IntersectPlane(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	if !ok || math.Abs(d-10) > eps {
		t.Errorf("IntersectPlane = %v, %v", d, ok)
	}

	parallel := Ray{Origin: mgl64.Vec3{0, 10, 0}, Direction: mgl64.Vec3{1, 0, 0}}
	if _, ok := parallel.IntersectPlane(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}); ok {
		t.Error("parallel ray should miss")
	}
}

func TestRayInsideSphere(t *testing.T) {
	r := Ray{Origin: mgl64.Vec3{}, Direction: mgl64.Vec3{1, 0, 0}}
	d, ok := r.IntersectSphere(mgl64.Vec3{}, 4)
	if !ok || math.Abs(d-4) > eps {
		t.Errorf("IntersectSphere from inside = %v, %v", d, ok)
	}
}

func TestClockDelta(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	c := NewClock(func() time.Time { return now })

	if d := c.Delta(); d != 0 {
		t.Errorf("first Delta() = %v, want 0", d)
	}

	now = base.Add(250 * time.Millisecond)
	if d := c.Delta(); math.Abs(d-0.25) > eps {
		t.Errorf("Delta() = %v, want 0.25", d)
	}

	// Clock going backwards never yields a negative delta.
	now = base
	if d := c.Delta(); d != 0 {
		t.Errorf("Delta() after rewind = %v, want 0", d)
	}
}

func TestOrbitControlsDamping(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 1000)
	cam.Position = mgl64.Vec3{0, 50, 100}
	cam.Target = mgl64.Vec3{}
	oc := NewOrbitControls(cam, 0.05)

	startDist := oc.Distance()
	if math.Abs(startDist-math.Sqrt(12500)) > 1e-9 {
		t.Fatalf("Distance() = %v", startDist)
	}

	if oc.Update() {
		t.Error("Update() without input should not move the camera")
	}

	oc.Rotate(math.Pi/2, 0)
	oc.Update()
	if oc.Settled() {
		t.Error("damped controls should not settle after one update")
	}
	for i := 0; i < 2000 && !oc.Settled(); i++ {
		oc.Update()
	}
	if !oc.Settled() {
		t.Fatal("controls never settled")
	}

	// A quarter turn from +Z lands on +X.
	if cam.Position.X() < 99 || math.Abs(cam.Position.Z()) > 0.1 {
		t.Errorf("camera at %v, want near (100, 50, 0)", cam.Position)
	}
	if math.Abs(cam.Position.Sub(cam.Target).Len()-startDist) > 1e-6 {
		t.Error("rotation changed distance")
	}
}

func TestOrbitControlsDollyClamp(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 1000)
	cam.Position = mgl64.Vec3{0, 0, 100}
	cam.Target = mgl64.Vec3{}
	oc := NewOrbitControls(cam, 0)

	oc.Dolly(0.0001)
	oc.Update()
	if oc.Distance() != DefaultMinDist {
		t.Errorf("Distance() = %v, want %v", oc.Distance(), DefaultMinDist)
	}

	oc.Dolly(1e6)
	oc.Update()
	if oc.Distance() != DefaultMaxDist {
		t.Errorf("Distance() = %v, want %v", oc.Distance(), DefaultMaxDist)
	}

	oc.Reset()
	if !vecNear(cam.Position, mgl64.Vec3{0, 0, 100}, 1e-9) {
		t.Errorf("Reset() left camera at %v", cam.Position)
	}
}
