package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is an origin and a unit direction.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// PointAt returns Origin + Dir*t.
func (r Ray) PointAt(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// RayHit is the first collider a ray meets.
type RayHit struct {
	Body         Handle
	TimeOfImpact float64
	Point        mgl64.Vec3
}

// CastRay returns the nearest hit within maxToi. With solid set, a ray that
// starts inside a collider hits it at TimeOfImpact 0; otherwise it reports
// where it leaves the collider.
func (w *World) CastRay(ray Ray, maxToi float64, solid bool) (RayHit, bool) {
	if w == nil || maxToi < 0 {
		return RayHit{}, false
	}
	best := RayHit{TimeOfImpact: math.Inf(1)}
	found := false
	for i, b := range w.bodies {
		if b == nil {
			continue
		}
		for _, c := range b.colliders {
			center := c.center(b.translation, b.rotation)
			var toi float64
			var ok bool
			switch c.Shape {
			case ShapeCuboid:
				toi, ok = rayCuboid(ray, center, b.rotation, c.HalfExtents, maxToi, solid)
			case ShapeBall:
				toi, ok = raySphere(ray, center, c.Radius, maxToi, solid)
			}
			if ok && toi < best.TimeOfImpact {
				best.Body = makeHandle(uint32(i+1), w.gens[i])
				best.TimeOfImpact = toi
				found = true
			}
		}
	}
	if !found {
		return RayHit{}, false
	}
	best.Point = ray.PointAt(best.TimeOfImpact)
	return best, true
}

// rayCuboid is a slab test in the box's local frame.
func rayCuboid(ray Ray, center mgl64.Vec3, rot mgl64.Quat, half mgl64.Vec3, maxToi float64, solid bool) (float64, bool) {
	inv := rot.Inverse()
	o := inv.Rotate(ray.Origin.Sub(center))
	d := inv.Rotate(ray.Dir)

	tmin := math.Inf(-1)
	tmax := math.Inf(1)
	for i := 0; i < 3; i++ {
		if d[i] != 0 {
			invD := 1.0 / d[i]
			t1 := (-half[i] - o[i]) * invD
			t2 := (half[i] - o[i]) * invD
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			tmin = math.Max(tmin, t1)
			tmax = math.Min(tmax, t2)
		} else if o[i] < -half[i] || o[i] > half[i] {
			return 0, false
		}
	}
	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	return pickToi(tmin, tmax, maxToi, solid)
}

func raySphere(ray Ray, center mgl64.Vec3, radius, maxToi float64, solid bool) (float64, bool) {
	f := ray.Origin.Sub(center)
	a := ray.Dir.Dot(ray.Dir)
	b := 2 * f.Dot(ray.Dir)
	c := f.Dot(f) - radius*radius
	disc := b*b - 4*a*c
	if a == 0 || disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t1 := (-b - sq) / (2 * a)
	t2 := (-b + sq) / (2 * a)
	if t2 < 0 {
		return 0, false
	}
	return pickToi(t1, t2, maxToi, solid)
}

// pickToi chooses the reported time of impact for an entry/exit pair.
func pickToi(enter, exit, maxToi float64, solid bool) (float64, bool) {
	toi := enter
	if enter < 0 {
		if solid {
			toi = 0
		} else {
			toi = exit
		}
	}
	if toi > maxToi {
		return 0, false
	}
	return toi, true
}
