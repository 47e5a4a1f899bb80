package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Shape is a collider primitive.
type Shape uint8

const (
	ShapeCuboid Shape = iota
	ShapeBall
)

// Material holds the surface coefficients of a collider.
// Coefficients of two touching colliders are averaged.
type Material struct {
	Restitution float64
	Friction    float64
}

// DefaultMaterial is used for colliders built without an explicit material.
var DefaultMaterial = Material{Restitution: 0, Friction: 0.5}

// Collider is a shape attached to a body at a local offset.
type Collider struct {
	Shape       Shape
	HalfExtents mgl64.Vec3
	Radius      float64
	Offset      mgl64.Vec3
	Material    Material
}

func Cuboid(halfExtents mgl64.Vec3, offset mgl64.Vec3, mat Material) Collider {
	return Collider{Shape: ShapeCuboid, HalfExtents: halfExtents, Offset: offset, Material: mat}
}

func Ball(radius float64, mat Material) Collider {
	return Collider{Shape: ShapeBall, Radius: radius, Material: mat}
}

func (c Collider) massProperties(density float64) (float64, mgl64.Vec3) {
	switch c.Shape {
	case ShapeBall:
		m := density * 4.0 / 3.0 * math.Pi * c.Radius * c.Radius * c.Radius
		i := 0.4 * m * c.Radius * c.Radius
		return m, mgl64.Vec3{i, i, i}
	default:
		h := c.HalfExtents
		m := density * 8 * h.X() * h.Y() * h.Z()
		return m, mgl64.Vec3{
			m / 3 * (h.Y()*h.Y() + h.Z()*h.Z()),
			m / 3 * (h.X()*h.X() + h.Z()*h.Z()),
			m / 3 * (h.X()*h.X() + h.Y()*h.Y()),
		}
	}
}

// center is the collider centre in world space for a body pose.
func (c Collider) center(translation mgl64.Vec3, rotation mgl64.Quat) mgl64.Vec3 {
	return translation.Add(rotation.Rotate(c.Offset))
}

func combine(a, b Material) Material {
	return Material{
		Restitution: (a.Restitution + b.Restitution) / 2,
		Friction:    (a.Friction + b.Friction) / 2,
	}
}
