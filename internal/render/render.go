// Package render rasterizes a scene into a pixel framebuffer sized for a
// terminal, two pixels per character cell.
package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/scene"
)

// Specular highlight strength relative to the light color.
const specularStrength = 0.5

// Renderer draws scenes into a W×H pixel surface.
type Renderer struct {
	width      int
	height     int
	Background colorful.Color
}

// New creates a renderer with the given surface size.
func New(width, height int) *Renderer {
	r := &Renderer{Background: colorful.Color{}}
	r.SetSize(width, height)
	return r
}

// SetSize resizes the surface. Negative sizes are treated as zero.
func (r *Renderer) SetSize(width, height int) {
	r.width = max(width, 0)
	r.height = max(height, 0)
}

// Size returns the surface size in pixels.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// Frame is one rendered image.
type Frame struct {
	Width  int
	Height int
	Pix    []colorful.Color
	Depth  []float64
}

func newFrame(w, h int, bg colorful.Color) *Frame {
	f := &Frame{
		Width:  w,
		Height: h,
		Pix:    make([]colorful.Color, w*h),
		Depth:  make([]float64, w*h),
	}
	for i := range f.Pix {
		f.Pix[i] = bg
		f.Depth[i] = math.Inf(1)
	}
	return f
}

// At returns the pixel at (x, y), or black when out of range.
func (f *Frame) At(x, y int) colorful.Color {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return colorful.Color{}
	}
	return f.Pix[y*f.Width+x]
}

// DepthAt returns the depth at (x, y); +Inf means nothing was drawn.
func (f *Frame) DepthAt(x, y int) float64 {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return math.Inf(1)
	}
	return f.Depth[y*f.Width+x]
}

// pass carries per-frame values shared by every primitive.
type pass struct {
	frame   *Frame
	cam     *scene.PerspectiveCamera
	scene   *scene.Scene
	forward mgl64.Vec3
	rays    []mgl64.Vec3 // Per-pixel unit ray directions
	tanHalf float64
}

// Render draws the scene from the camera. Opaque geometry is drawn first,
// then transparent geometry is blended over it without writing depth.
func (r *Renderer) Render(s *scene.Scene, cam *scene.PerspectiveCamera) *Frame {
	f := newFrame(r.width, r.height, r.Background)
	if r.width == 0 || r.height == 0 {
		return f
	}

	p := &pass{
		frame:   f,
		cam:     cam,
		scene:   s,
		forward: cam.Forward(),
		tanHalf: math.Tan(mgl64.DegToRad(cam.FOV) / 2),
	}
	p.rays = pixelRays(cam, r.width, r.height)

	var transparent []*scene.Node
	s.Walk(func(n *scene.Node) {
		if !visible(n) || n.Geometry == nil {
			return
		}
		if n.Material.Alpha() < 1 {
			transparent = append(transparent, n)
			return
		}
		p.draw(n)
	})
	for _, n := range transparent {
		p.draw(n)
	}
	return f
}

// visible reports whether n and all its ancestors are visible.
func visible(n *scene.Node) bool {
	for ; n != nil; n = n.Parent() {
		if !n.Visible {
			return false
		}
	}
	return true
}

func (p *pass) draw(n *scene.Node) {
	switch g := n.Geometry.(type) {
	case scene.SphereGeometry:
		p.drawSphere(n, g)
	case scene.RingGeometry:
		p.drawRing(n, g)
	case scene.LineGeometry:
		p.drawLine(n, g)
	case scene.PointsGeometry:
		p.drawPoints(n, g)
	}
}

// pixelRays unprojects the center of every pixel once per frame.
func pixelRays(cam *scene.PerspectiveCamera, w, h int) []mgl64.Vec3 {
	inv := cam.ViewProjection().Inv()
	rays := make([]mgl64.Vec3, w*h)
	for y := 0; y < h; y++ {
		ny := 1 - (float64(y)+0.5)/float64(h)*2
		for x := 0; x < w; x++ {
			nx := (float64(x)+0.5)/float64(w)*2 - 1
			v := inv.Mul4x1(mgl64.Vec4{nx, ny, 0.5, 1})
			pt := v.Vec3().Mul(1 / v.W())
			rays[y*w+x] = pt.Sub(cam.Position).Normalize()
		}
	}
	return rays
}

// toPixel maps NDC to surface pixel coordinates (y down).
func (p *pass) toPixel(ndc mgl64.Vec3) (float64, float64) {
	x := (ndc.X() + 1) / 2 * float64(p.frame.Width)
	y := (1 - ndc.Y()) / 2 * float64(p.frame.Height)
	return x, y
}

// bounds returns the pixel box that can contain a sphere of radius r at c.
func (p *pass) bounds(c mgl64.Vec3, r float64) (x0, y0, x1, y1 int, ok bool) {
	w, h := p.frame.Width, p.frame.Height
	depth := p.cam.Depth(c)
	if depth+r <= p.cam.Near || depth-r >= p.cam.Far {
		return 0, 0, 0, 0, false
	}
	if depth <= r*1.5 {
		return 0, 0, w - 1, h - 1, true
	}
	ndc, inFront := p.cam.ProjectNDC(c)
	if !inFront {
		return 0, 0, w - 1, h - 1, true
	}
	cx, cy := p.toPixel(ndc)
	// Perspective widens the silhouette off axis; pad generously.
	rpx := r/(depth*p.tanHalf)*float64(h)/2*1.5 + 2
	x0 = max(int(math.Floor(cx-rpx)), 0)
	y0 = max(int(math.Floor(cy-rpx)), 0)
	x1 = min(int(math.Ceil(cx+rpx)), w-1)
	y1 = min(int(math.Ceil(cy+rpx)), h-1)
	return x0, y0, x1, y1, x0 <= x1 && y0 <= y1
}

func (p *pass) drawSphere(n *scene.Node, g scene.SphereGeometry) {
	c := n.WorldPosition()
	x0, y0, x1, y1, ok := p.bounds(c, g.Radius)
	if !ok {
		return
	}
	inv := n.WorldMatrix().Inv()
	f := p.frame
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			i := y*f.Width + x
			ray := scene.Ray{Origin: p.cam.Position, Direction: p.rays[i]}
			t, hit := ray.IntersectSphere(c, g.Radius)
			if !hit {
				continue
			}
			depth := t * ray.Direction.Dot(p.forward)
			if depth < p.cam.Near || depth >= f.Depth[i] {
				continue
			}
			pt := ray.At(t)
			normal := pt.Sub(c).Mul(1 / g.Radius)
			col := p.shade(n.Material, normal, ray.Direction.Mul(-1))
			col = banded(col, inv.Mul4x1(normal.Vec4(0)).Vec3())
			f.Pix[i] = col
			f.Depth[i] = depth
		}
	}
}

// banded darkens meridian stripes so self-rotation is visible.
func banded(c colorful.Color, local mgl64.Vec3) colorful.Color {
	lon := math.Atan2(local.Z(), local.X())
	k := 0.9 + 0.1*math.Cos(4*lon)
	return colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}.Clamped()
}

func (p *pass) drawRing(n *scene.Node, g scene.RingGeometry) {
	c := n.WorldPosition()
	normal := n.WorldNormal(mgl64.Vec3{0, 0, 1})
	x0, y0, x1, y1, ok := p.bounds(c, g.OuterRadius)
	if !ok {
		return
	}
	f := p.frame
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			i := y*f.Width + x
			ray := scene.Ray{Origin: p.cam.Position, Direction: p.rays[i]}
			t, hit := ray.IntersectPlane(c, normal)
			if !hit {
				continue
			}
			pt := ray.At(t)
			d := pt.Sub(c).Len()
			if d < g.InnerRadius || d > g.OuterRadius {
				continue
			}
			depth := t * ray.Direction.Dot(p.forward)
			if depth < p.cam.Near || depth >= f.Depth[i] {
				continue
			}
			nrm := normal
			if nrm.Dot(ray.Direction) > 0 {
				if !n.Material.DoubleSide {
					continue
				}
				nrm = nrm.Mul(-1)
			}
			f.Pix[i] = p.shade(n.Material, nrm, ray.Direction.Mul(-1))
			f.Depth[i] = depth
		}
	}
}

func (p *pass) drawLine(n *scene.Node, g scene.LineGeometry) {
	if len(g.Points) < 2 {
		return
	}
	m := n.WorldMatrix()
	alpha := n.Material.Alpha()
	opaque := alpha >= 1

	type vertex struct {
		x, y, depth float64
		ok          bool
	}
	verts := make([]vertex, len(g.Points))
	for i, pt := range g.Points {
		w := m.Mul4x1(pt.Vec4(1)).Vec3()
		depth := p.cam.Depth(w)
		ndc, ok := p.cam.ProjectNDC(w)
		if !ok || depth < p.cam.Near || depth > p.cam.Far {
			continue
		}
		x, y := p.toPixel(ndc)
		verts[i] = vertex{x, y, depth, true}
	}

	f := p.frame
	for i := 0; i+1 < len(verts); i++ {
		a, b := verts[i], verts[i+1]
		if !a.ok || !b.ok {
			continue
		}
		steps := int(math.Ceil(math.Max(math.Abs(b.x-a.x), math.Abs(b.y-a.y))))
		if steps < 1 {
			steps = 1
		}
		// Long off-screen segments only come from near-plane crossings.
		if steps > 4*(f.Width+f.Height) {
			continue
		}
		for s := 0; s < steps; s++ {
			t := float64(s) / float64(steps)
			x := int(a.x + (b.x-a.x)*t)
			y := int(a.y + (b.y-a.y)*t)
			if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
				continue
			}
			idx := y*f.Width + x
			depth := a.depth + (b.depth-a.depth)*t
			if depth >= f.Depth[idx] {
				continue
			}
			f.Pix[idx] = f.Pix[idx].BlendRgb(n.Material.Color, alpha).Clamped()
			if opaque {
				f.Depth[idx] = depth
			}
		}
	}
}

func (p *pass) drawPoints(n *scene.Node, g scene.PointsGeometry) {
	m := n.WorldMatrix()
	f := p.frame
	for _, pt := range g.Points {
		w := m.Mul4x1(pt.Vec4(1)).Vec3()
		depth := p.cam.Depth(w)
		if depth < p.cam.Near || depth > p.cam.Far {
			continue
		}
		ndc, ok := p.cam.ProjectNDC(w)
		if !ok || math.Abs(ndc.X()) > 1 || math.Abs(ndc.Y()) > 1 {
			continue
		}
		fx, fy := p.toPixel(ndc)
		x, y := int(fx), int(fy)
		if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
			continue
		}
		idx := y*f.Width + x
		if depth >= f.Depth[idx] {
			continue
		}
		// Distant points fade toward the background.
		fade := mgl64.Clamp(1-depth/p.cam.Far, 0.25, 1) * n.Material.Alpha()
		f.Pix[idx] = f.Pix[idx].BlendRgb(n.Material.Color, fade).Clamped()
		f.Depth[idx] = depth
	}
}

// shade applies ambient, Lambert diffuse and Blinn-Phong specular terms.
func (p *pass) shade(mat scene.Material, normal, toEye mgl64.Vec3) colorful.Color {
	amb := p.scene.Ambient
	r := mat.Color.R * amb.Color.R * amb.Intensity
	g := mat.Color.G * amb.Color.G * amb.Intensity
	b := mat.Color.B * amb.Color.B * amb.Intensity

	for _, l := range p.scene.Lights {
		dir := l.Direction()
		diff := math.Max(normal.Dot(dir), 0) * l.Intensity
		r += mat.Color.R * l.Color.R * diff
		g += mat.Color.G * l.Color.G * diff
		b += mat.Color.B * l.Color.B * diff

		if mat.Shininess > 0 && diff > 0 {
			half := dir.Add(toEye).Normalize()
			spec := math.Pow(math.Max(normal.Dot(half), 0), mat.Shininess) * specularStrength * l.Intensity
			r += l.Color.R * spec
			g += l.Color.G * spec
			b += l.Color.B * spec
		}
	}
	return colorful.Color{R: r, G: g, B: b}.Clamped()
}
