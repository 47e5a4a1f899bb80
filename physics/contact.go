package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type contact struct {
	normal      mgl64.Vec3 // from the other collider toward the ball
	point       mgl64.Vec3
	penetration float64
}

// resolveContacts pushes every ball collider of a dynamic body out of the
// fixed and kinematic colliders it overlaps and applies the contact impulses.
func (w *World) resolveContacts(ball *RigidBody) {
	for _, bc := range ball.colliders {
		if bc.Shape != ShapeBall {
			continue
		}
		for _, other := range w.bodies {
			if other == nil || other == ball || other.typ == BodyDynamic {
				continue
			}
			for _, oc := range other.colliders {
				center := bc.center(ball.translation, ball.rotation)
				var c contact
				var ok bool
				switch oc.Shape {
				case ShapeCuboid:
					c, ok = sphereCuboid(center, bc.Radius, oc.center(other.translation, other.rotation), other.rotation, oc.HalfExtents)
				case ShapeBall:
					c, ok = sphereSphere(center, bc.Radius, oc.center(other.translation, other.rotation), oc.Radius)
				}
				if !ok {
					continue
				}
				w.solve(ball, bc, other, oc, c)
			}
		}
	}
}

func (w *World) solve(ball *RigidBody, bc Collider, other *RigidBody, oc Collider, c contact) {
	ball.translation = ball.translation.Add(c.normal.Mul(c.penetration))

	mat := combine(bc.Material, oc.Material)
	arm := bc.center(ball.translation, ball.rotation).Sub(ball.translation).Add(c.normal.Mul(-bc.Radius))

	rel := ball.linvel.Add(ball.angvel.Cross(arm)).Sub(other.velocityAt(c.point))
	vn := rel.Dot(c.normal)
	if vn >= 0 {
		return
	}

	e := mat.Restitution
	if -vn < w.restitutionThreshold {
		e = 0
	}
	jn := -(1 + e) * vn / ball.invMass
	ball.linvel = ball.linvel.Add(c.normal.Mul(jn * ball.invMass))

	tangent := rel.Sub(c.normal.Mul(vn))
	speed := tangent.Len()
	if speed < 1e-9 || mat.Friction <= 0 {
		return
	}
	dir := tangent.Mul(1 / speed)
	armCross := arm.Cross(dir)
	k := ball.invMass
	if l := armCross.Len(); l > 0 {
		k += l * l * ball.invInertiaAlong(armCross.Mul(1/l))
	}
	jt := -speed / k
	if limit := mat.Friction * jn; math.Abs(jt) > limit {
		jt = -limit
	}
	impulse := dir.Mul(jt)
	ball.linvel = ball.linvel.Add(impulse.Mul(ball.invMass))
	ball.applyAngularImpulse(arm.Cross(impulse))
}

// sphereCuboid finds the contact between a sphere and an oriented box.
func sphereCuboid(center mgl64.Vec3, radius float64, boxCenter mgl64.Vec3, boxRot mgl64.Quat, half mgl64.Vec3) (contact, bool) {
	inv := boxRot.Inverse()
	local := inv.Rotate(center.Sub(boxCenter))

	closest := mgl64.Vec3{
		mgl64.Clamp(local.X(), -half.X(), half.X()),
		mgl64.Clamp(local.Y(), -half.Y(), half.Y()),
		mgl64.Clamp(local.Z(), -half.Z(), half.Z()),
	}
	d := local.Sub(closest)
	dist := d.Len()
	if dist > radius {
		return contact{}, false
	}

	var normal mgl64.Vec3
	var pen float64
	if dist > 1e-9 {
		normal = d.Mul(1 / dist)
		pen = radius - dist
	} else {
		// Centre inside the box: leave through the nearest face.
		axis, depth := 0, math.Inf(1)
		for i := 0; i < 3; i++ {
			if gap := half[i] - math.Abs(local[i]); gap < depth {
				axis, depth = i, gap
			}
		}
		sign := 1.0
		if local[axis] < 0 {
			sign = -1
		}
		normal[axis] = sign
		closest[axis] = sign * half[axis]
		pen = radius + depth
	}

	return contact{
		normal:      boxRot.Rotate(normal),
		point:       boxCenter.Add(boxRot.Rotate(closest)),
		penetration: pen,
	}, true
}

func sphereSphere(a mgl64.Vec3, ra float64, b mgl64.Vec3, rb float64) (contact, bool) {
	d := a.Sub(b)
	dist := d.Len()
	if dist > ra+rb {
		return contact{}, false
	}
	normal := mgl64.Vec3{0, 1, 0}
	if dist > 1e-9 {
		normal = d.Mul(1 / dist)
	}
	return contact{
		normal:      normal,
		point:       b.Add(normal.Mul(rb)),
		penetration: ra + rb - dist,
	}, true
}
