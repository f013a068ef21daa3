package orrery

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/litescript/ls-orrery/internal/scene"
)

// Hover is what the label shows.
type Hover struct {
	Visible bool
	Name    string
	X, Y    float64 // Label position in surface pixels
}

// HoverResolver finds the body under the pointer.
type HoverResolver struct {
	camera  *scene.PerspectiveCamera
	targets []*scene.Node
	byNode  map[*scene.Node]*BodyState
	rc      *scene.Raycaster
	offset  float64
}

// NewHoverResolver tests only the body spheres, never guides, rings or stars.
func NewHoverResolver(cam *scene.PerspectiveCamera, sys *System, offset float64) *HoverResolver {
	h := &HoverResolver{
		camera:  cam,
		targets: sys.Meshes(),
		byNode:  make(map[*scene.Node]*BodyState, len(sys.Bodies)),
		rc:      scene.NewRaycaster(),
		offset:  offset,
	}
	for _, b := range sys.Bodies {
		h.byNode[b.Node] = b
	}
	return h
}

// NDC converts surface pixel coordinates to normalized device coordinates
// with +Y up.
func NDC(px, py float64, width, height int) mgl64.Vec2 {
	return mgl64.Vec2{
		px/float64(width)*2 - 1,
		-(py/float64(height))*2 + 1,
	}
}

// Resolve casts a ray through (px, py) on a width×height surface and reports
// the nearest body.
func (h *HoverResolver) Resolve(px, py float64, width, height int) Hover {
	if width <= 0 || height <= 0 {
		return Hover{}
	}
	if err := h.rc.SetFromCamera(NDC(px, py, width, height), h.camera); err != nil {
		return Hover{}
	}
	hits := h.rc.IntersectObjects(h.targets)
	if len(hits) == 0 {
		return Hover{}
	}
	body, ok := h.byNode[hits[0].Object]
	if !ok {
		return Hover{}
	}
	return Hover{
		Visible: true,
		Name:    body.Body.Name,
		X:       px + h.offset,
		Y:       py + h.offset,
	}
}
