package orrery

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/scene"
)

// BodyState is the animated state of one catalog entry.
type BodyState struct {
	Body       catalog.Body
	Node       *scene.Node
	Ring       *scene.Node // Set only on the ringed body
	Angle      float64     // Orbital angle, radians
	Multiplier float64     // User speed multiplier
}

// Rotation returns the self-rotation angle.
func (b *BodyState) Rotation() float64 {
	return b.Node.Rotation.Y()
}

// OrbitGuide is the static circle traced by one orbiting body.
type OrbitGuide struct {
	Body   string
	Radius float64
	Points []mgl64.Vec3
	Node   *scene.Node
}

// System is everything produced by BuildScene.
type System struct {
	Scene  *scene.Scene
	Bodies []*BodyState // Catalog order; index 0 is the central body
	Guides []OrbitGuide
	Stars  *scene.Node
}

// Body returns the state for name.
func (s *System) Body(name string) (*BodyState, bool) {
	for _, b := range s.Bodies {
		if b.Body.Name == name {
			return b, true
		}
	}
	return nil, false
}

// Meshes returns the body sphere nodes in catalog order.
func (s *System) Meshes() []*scene.Node {
	out := make([]*scene.Node, len(s.Bodies))
	for i, b := range s.Bodies {
		out[i] = b.Node
	}
	return out
}

// BuildScene validates the catalog and builds lights, star field, orbit guides,
// body meshes and the ring. Starting angles are drawn from rng.
func BuildScene(cat catalog.Catalog, cfg Config, rng *rand.Rand) (*System, error) {
	if err := cat.Validate(); err != nil {
		return nil, err
	}

	sc := scene.New()
	sc.Ambient = scene.AmbientLight{Color: scene.Hex(0x404040), Intensity: 1}
	sc.AddLight(scene.DirectionalLight{
		Color:     scene.Hex(0xffffff),
		Intensity: 1,
		Position:  mgl64.Vec3{5, 3, 5},
	})

	sys := &System{Scene: sc}

	sys.Stars = starField(cfg.StarCount, cfg.StarExtent, rng)
	sc.Add(sys.Stars)

	for i, body := range cat {
		node := scene.NewMesh(body.Name,
			scene.SphereGeometry{Radius: body.Radius, WidthSegments: catalog.SphereSegment, HeightSegments: catalog.SphereSegment},
			scene.Material{Color: scene.Hex(body.Color), Shininess: 10},
		)

		if i > 0 {
			guide := orbitGuide(body, cfg.OrbitSegments)
			sc.Add(guide.Node)
			sys.Guides = append(sys.Guides, guide)
		}

		state := &BodyState{
			Body:       body,
			Node:       node,
			Angle:      rng.Float64() * 2 * math.Pi,
			Multiplier: cfg.SpeedDefault,
		}

		if body.HasRing() {
			inner, outer := body.RingRadii()
			ring := scene.NewMesh(body.Name+" ring",
				scene.RingGeometry{InnerRadius: inner, OuterRadius: outer, Segments: catalog.RingSegments},
				scene.Material{Color: scene.Hex(catalog.RingColor), DoubleSide: true},
			)
			// Annulus is built in XY; tip it into the orbital plane.
			ring.Rotation = mgl64.Vec3{math.Pi / 2, 0, 0}
			node.Add(ring)
			state.Ring = ring
		}

		if !body.IsCentral() {
			node.Position = orbitPosition(state.Angle, body.Distance)
		}

		sc.Add(node)
		sys.Bodies = append(sys.Bodies, state)
	}

	return sys, nil
}

// CirclePoints samples segments+1 points on a circle in the XZ plane; the
// first and last coincide.
func CirclePoints(radius float64, segments int) []mgl64.Vec3 {
	if segments < 1 {
		segments = 1
	}
	pts := make([]mgl64.Vec3, segments+1)
	for i := 0; i <= segments; i++ {
		a := float64(i) / float64(segments) * 2 * math.Pi
		pts[i] = orbitPosition(a, radius)
	}
	return pts
}

func orbitGuide(body catalog.Body, segments int) OrbitGuide {
	pts := CirclePoints(body.Distance, segments)
	node := scene.NewMesh(body.Name+" orbit", scene.LineGeometry{Points: pts}, scene.Material{
		Color:       scene.Hex(catalog.OrbitColor),
		Transparent: true,
		Opacity:     catalog.OrbitOpacity,
	})
	return OrbitGuide{Body: body.Name, Radius: body.Distance, Points: pts, Node: node}
}

func starField(count int, extent float64, rng *rand.Rand) *scene.Node {
	pts := make([]mgl64.Vec3, max(count, 0))
	for i := range pts {
		pts[i] = mgl64.Vec3{
			(rng.Float64() - 0.5) * 2 * extent,
			(rng.Float64() - 0.5) * 2 * extent,
			(rng.Float64() - 0.5) * 2 * extent,
		}
	}
	return scene.NewMesh("stars", scene.PointsGeometry{Points: pts}, scene.Material{
		Color:       scene.Hex(catalog.StarColor),
		Transparent: true,
		Opacity:     1,
		Size:        0.1,
	})
}

func orbitPosition(angle, distance float64) mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(angle) * distance, 0, math.Sin(angle) * distance}
}
