package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/rollcourse/common"
	"github.com/milk9111/rollcourse/ecs"
	"github.com/milk9111/rollcourse/ecs/component"
)

const ballSegments = 24

// lightDir points from the surface towards the light.
var lightDir = mgl64.Vec3{-0.4, 1, -0.6}.Normalize()

// Polygon is a convex screen-space polygon with a flat color.
type Polygon struct {
	Points []mgl64.Vec2
	Depth  float64
	Color  color.RGBA
}

// Scene collects polygons for one frame.
type Scene struct {
	proj  Projector
	polys []Polygon
}

func NewScene(proj Projector) *Scene {
	return &Scene{proj: proj}
}

// Polygons returns the collected polygons sorted far to near.
func (s *Scene) Polygons() []Polygon {
	if s == nil {
		return nil
	}
	sort.SliceStable(s.polys, func(i, j int) bool {
		return s.polys[i].Depth > s.polys[j].Depth
	})
	return s.polys
}

// boxFaces lists the corner indices of each face in order around it, with
// the outward normal. Corner bit 0 is +x, bit 1 +y, bit 2 +z.
var boxFaces = [6]struct {
	idx    [4]int
	normal mgl64.Vec3
}{
	{[4]int{1, 3, 7, 5}, mgl64.Vec3{1, 0, 0}},
	{[4]int{0, 4, 6, 2}, mgl64.Vec3{-1, 0, 0}},
	{[4]int{2, 6, 7, 3}, mgl64.Vec3{0, 1, 0}},
	{[4]int{0, 1, 5, 4}, mgl64.Vec3{0, -1, 0}},
	{[4]int{4, 5, 7, 6}, mgl64.Vec3{0, 0, 1}},
	{[4]int{0, 2, 3, 1}, mgl64.Vec3{0, 0, -1}},
}

// AddBox adds the faces of an oriented box that face the camera.
func (s *Scene) AddBox(center mgl64.Vec3, rot mgl64.Quat, half mgl64.Vec3, c color.Color) {
	var corners [8]mgl64.Vec3
	for i := range corners {
		local := mgl64.Vec3{-half.X(), -half.Y(), -half.Z()}
		if i&1 != 0 {
			local[0] = half.X()
		}
		if i&2 != 0 {
			local[1] = half.Y()
		}
		if i&4 != 0 {
			local[2] = half.Z()
		}
		corners[i] = center.Add(rot.Rotate(local))
	}

	for _, face := range boxFaces {
		normal := rot.Rotate(face.normal)
		faceCenter := center.Add(rot.Rotate(mgl64.Vec3{face.normal.X() * half.X(), face.normal.Y() * half.Y(), face.normal.Z() * half.Z()}))
		if normal.Dot(s.proj.Eye().Sub(faceCenter)) <= 0 {
			continue
		}
		world := []mgl64.Vec3{corners[face.idx[0]], corners[face.idx[1]], corners[face.idx[2]], corners[face.idx[3]]}
		s.addPolygon(world, Shade(c, normal))
	}
}

// AddBall adds a disc facing the camera.
func (s *Scene) AddBall(center mgl64.Vec3, radius float64, c color.Color) {
	v := s.proj.ToView(center)
	if -v.Z()-radius < s.proj.near {
		return
	}
	centerScreen := s.proj.ViewToScreen(v)
	edge := s.proj.ViewToScreen(v.Add(mgl64.Vec3{radius, 0, 0}))
	r := edge.Sub(centerScreen).Len()

	points := make([]mgl64.Vec2, ballSegments)
	for i := range points {
		a := 2 * math.Pi * float64(i) / ballSegments
		points[i] = centerScreen.Add(mgl64.Vec2{math.Cos(a) * r, math.Sin(a) * r})
	}
	s.polys = append(s.polys, Polygon{Points: points, Depth: -v.Z(), Color: Shade(c, worldUp)})
}

func (s *Scene) addPolygon(world []mgl64.Vec3, c color.RGBA) {
	view := make([]mgl64.Vec3, len(world))
	for i, p := range world {
		view[i] = s.proj.ToView(p)
	}
	view = clipNear(view, s.proj.near)
	if len(view) < 3 {
		return
	}

	points := make([]mgl64.Vec2, len(view))
	depth := 0.0
	for i, v := range view {
		points[i] = s.proj.ViewToScreen(v)
		depth += -v.Z()
	}
	s.polys = append(s.polys, Polygon{Points: points, Depth: depth / float64(len(view)), Color: c})
}

// Shade applies ambient plus diffuse lighting to c for a surface normal.
func Shade(c color.Color, normal mgl64.Vec3) color.RGBA {
	if c == nil {
		c = color.White
	}
	intensity := 0.45 + 0.55*math.Max(0, normal.Normalize().Dot(lightDir))
	r, g, b, a := c.RGBA()
	scale := func(v uint32) uint8 {
		return uint8(common.Clamp(float64(v>>8)*intensity, 0, 255))
	}
	return color.RGBA{R: scale(r), G: scale(g), B: scale(b), A: uint8(a >> 8)}
}

// Build collects every mesh in w as seen from the first camera. It returns
// nil when there is no camera.
func Build(w *ecs.World, width, height float64) *Scene {
	_, cam, ok := ecs.First(w, component.CameraComponent)
	if !ok {
		return nil
	}
	scene := NewScene(NewProjector(*cam, width, height))

	ecs.ForEach2(w, component.MeshComponent, component.TransformComponent, func(_ ecs.Entity, m *component.Mesh, t *component.Transform) {
		rot := t.Rotation
		if rot == (mgl64.Quat{}) {
			rot = mgl64.QuatIdent()
		}
		center := t.Position.Add(rot.Rotate(m.Offset))
		switch m.Shape {
		case component.MeshBall:
			scene.AddBall(center, m.Radius, m.Color)
		default:
			scene.AddBox(center, rot, m.HalfExtents, m.Color)
		}
	})
	return scene
}
