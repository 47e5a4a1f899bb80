// Package render turns the world's meshes into flat-shaded screen polygons
// ordered back to front. Drawing them is left to the caller.
package render

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/rollcourse/ecs/component"
)

var worldUp = mgl64.Vec3{0, 1, 0}

// Projector maps world points to screen pixels for one camera and viewport.
type Projector struct {
	view   mgl64.Mat4
	proj   mgl64.Mat4
	eye    mgl64.Vec3
	near   float64
	width  float64
	height float64
}

func NewProjector(cam component.Camera, width, height float64) Projector {
	near := cam.Near
	if near <= 0 {
		near = 0.1
	}
	far := cam.Far
	if far <= near {
		far = near * 10000
	}
	aspect := 1.0
	if height > 0 {
		aspect = width / height
	}
	return Projector{
		view:   mgl64.LookAtV(cam.Eye, cam.LookAt, worldUp),
		proj:   mgl64.Perspective(mgl64.DegToRad(cam.FOV), aspect, near, far),
		eye:    cam.Eye,
		near:   near,
		width:  width,
		height: height,
	}
}

// ToView returns p in camera space, where the camera looks down -Z.
func (pr Projector) ToView(p mgl64.Vec3) mgl64.Vec3 {
	return pr.view.Mul4x1(p.Vec4(1)).Vec3()
}

// ViewToScreen projects a camera-space point in front of the near plane.
func (pr Projector) ViewToScreen(v mgl64.Vec3) mgl64.Vec2 {
	clip := pr.proj.Mul4x1(v.Vec4(1))
	w := clip.W()
	ndcX, ndcY := clip.X()/w, clip.Y()/w
	return mgl64.Vec2{
		(ndcX + 1) / 2 * pr.width,
		(1 - ndcY) / 2 * pr.height,
	}
}

// Project maps a world point to the screen. ok is false for points behind
// the near plane.
func (pr Projector) Project(p mgl64.Vec3) (screen mgl64.Vec2, depth float64, ok bool) {
	v := pr.ToView(p)
	if -v.Z() < pr.near {
		return mgl64.Vec2{}, 0, false
	}
	return pr.ViewToScreen(v), -v.Z(), true
}

func (pr Projector) Eye() mgl64.Vec3 {
	return pr.eye
}

// clipNear cuts a camera-space polygon to the part in front of the near
// plane.
func clipNear(poly []mgl64.Vec3, near float64) []mgl64.Vec3 {
	if len(poly) == 0 {
		return nil
	}
	inside := func(v mgl64.Vec3) bool { return -v.Z() >= near }
	out := make([]mgl64.Vec3, 0, len(poly)+2)
	prev := poly[len(poly)-1]
	for _, cur := range poly {
		switch {
		case inside(cur) && inside(prev):
			out = append(out, cur)
		case inside(cur):
			out = append(out, intersectNear(prev, cur, near), cur)
		case inside(prev):
			out = append(out, intersectNear(prev, cur, near))
		}
		prev = cur
	}
	return out
}

func intersectNear(a, b mgl64.Vec3, near float64) mgl64.Vec3 {
	t := (-near - a.Z()) / (b.Z() - a.Z())
	return a.Add(b.Sub(a).Mul(t))
}
