package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyType selects how a body is moved.
type BodyType uint8

const (
	// BodyFixed never moves.
	BodyFixed BodyType = iota
	// BodyDynamic is moved by gravity, impulses and contacts.
	BodyDynamic
	// BodyKinematicPosition is moved to targets set each frame and pushes
	// dynamic bodies it touches.
	BodyKinematicPosition
)

func (t BodyType) String() string {
	switch t {
	case BodyFixed:
		return "fixed"
	case BodyDynamic:
		return "dynamic"
	case BodyKinematicPosition:
		return "kinematic_position"
	default:
		return fmt.Sprintf("BodyType(%d)", uint8(t))
	}
}

// Handle refers to a body inside a World. The zero Handle is never valid.
type Handle uint64

const handleIDBits = 32

func makeHandle(id, gen uint32) Handle {
	return Handle(uint64(gen)<<handleIDBits | uint64(id))
}

func (h Handle) id() uint32 {
	return uint32(h)
}

func (h Handle) generation() uint32 {
	return uint32(uint64(h) >> handleIDBits)
}

func (h Handle) String() string {
	return fmt.Sprintf("body#%d.%d", h.id(), h.generation())
}

// BodyDesc describes a body to create.
type BodyDesc struct {
	Type           BodyType
	Translation    mgl64.Vec3
	Rotation       mgl64.Quat
	Colliders      []Collider
	Density        float64
	LinearDamping  float64
	AngularDamping float64
}

// RigidBody is the integrator state of one body.
type RigidBody struct {
	typ       BodyType
	colliders []Collider

	translation mgl64.Vec3
	rotation    mgl64.Quat
	linvel      mgl64.Vec3
	angvel      mgl64.Vec3

	invMass    float64
	invInertia mgl64.Vec3 // principal, local frame

	linearDamping  float64
	angularDamping float64

	nextTranslation mgl64.Vec3
	nextRotation    mgl64.Quat
	hasNextT        bool
	hasNextR        bool
}

func newRigidBody(desc BodyDesc) *RigidBody {
	rot := desc.Rotation
	if rot == (mgl64.Quat{}) {
		rot = mgl64.QuatIdent()
	}
	b := &RigidBody{
		typ:            desc.Type,
		colliders:      append([]Collider(nil), desc.Colliders...),
		translation:    desc.Translation,
		rotation:       rot.Normalize(),
		linearDamping:  desc.LinearDamping,
		angularDamping: desc.AngularDamping,
	}
	if desc.Type == BodyDynamic {
		density := desc.Density
		if density <= 0 {
			density = 1
		}
		b.setMassProperties(density)
	}
	return b
}

// setMassProperties sums collider masses and principal inertias about the
// body origin. Collider offsets are ignored for inertia.
func (b *RigidBody) setMassProperties(density float64) {
	var mass float64
	var inertia mgl64.Vec3
	for _, c := range b.colliders {
		m, i := c.massProperties(density)
		mass += m
		inertia = inertia.Add(i)
	}
	if mass <= 0 {
		mass = 1
		inertia = mgl64.Vec3{1, 1, 1}
	}
	b.invMass = 1 / mass
	for k := 0; k < 3; k++ {
		if inertia[k] > 0 {
			b.invInertia[k] = 1 / inertia[k]
		}
	}
}

// applyAngularImpulse adds a world-space angular impulse.
func (b *RigidBody) applyAngularImpulse(torque mgl64.Vec3) {
	local := b.rotation.Inverse().Rotate(torque)
	local = mgl64.Vec3{
		local.X() * b.invInertia.X(),
		local.Y() * b.invInertia.Y(),
		local.Z() * b.invInertia.Z(),
	}
	b.angvel = b.angvel.Add(b.rotation.Rotate(local))
}

// invInertiaAlong is the inverse angular inertia about a world axis.
func (b *RigidBody) invInertiaAlong(axis mgl64.Vec3) float64 {
	l := b.rotation.Inverse().Rotate(axis)
	return l.X()*l.X()*b.invInertia.X() + l.Y()*l.Y()*b.invInertia.Y() + l.Z()*l.Z()*b.invInertia.Z()
}

// velocityAt is the velocity of a world-space point attached to the body.
func (b *RigidBody) velocityAt(point mgl64.Vec3) mgl64.Vec3 {
	return b.linvel.Add(b.angvel.Cross(point.Sub(b.translation)))
}

// driveKinematic moves a kinematic body onto its pending targets and derives
// the velocities that move implies, so contacts see a moving surface.
func (b *RigidBody) driveKinematic(dt float64) {
	b.linvel = mgl64.Vec3{}
	b.angvel = mgl64.Vec3{}
	if b.hasNextT {
		if dt > 0 {
			b.linvel = b.nextTranslation.Sub(b.translation).Mul(1 / dt)
		}
		b.translation = b.nextTranslation
		b.hasNextT = false
	}
	if b.hasNextR {
		next := b.nextRotation.Normalize()
		if dt > 0 {
			b.angvel = angularVelocityBetween(b.rotation, next, dt)
		}
		b.rotation = next
		b.hasNextR = false
	}
}

// integrate advances a dynamic body by dt.
func (b *RigidBody) integrate(gravity mgl64.Vec3, dt float64) {
	b.linvel = b.linvel.Add(gravity.Mul(dt))
	b.linvel = b.linvel.Mul(1 / (1 + dt*b.linearDamping))
	b.angvel = b.angvel.Mul(1 / (1 + dt*b.angularDamping))

	b.translation = b.translation.Add(b.linvel.Mul(dt))

	spin := mgl64.Quat{W: 0, V: b.angvel}.Mul(b.rotation).Scale(0.5 * dt)
	b.rotation = b.rotation.Add(spin).Normalize()
}

func angularVelocityBetween(from, to mgl64.Quat, dt float64) mgl64.Vec3 {
	delta := to.Mul(from.Inverse()).Normalize()
	if delta.W < 0 {
		delta = delta.Scale(-1)
	}
	sinHalf := delta.V.Len()
	if sinHalf < 1e-12 {
		return mgl64.Vec3{}
	}
	angle := 2 * math.Atan2(sinHalf, delta.W)
	return delta.V.Mul(angle / (sinHalf * dt))
}
