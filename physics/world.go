// Package physics is a small rigid-body world for one rolling ball among
// fixed and kinematic boxes. It integrates dynamic bodies, resolves
// ball-versus-box contacts with restitution and friction, drives kinematic
// bodies toward per-step targets and answers ray casts.
package physics

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrInvalidHandle = errors.New("physics: invalid body handle")

// DefaultGravity matches the usual -9.81 m/s² along Y.
var DefaultGravity = mgl64.Vec3{0, -9.81, 0}

// World owns every body. It is not safe for concurrent use.
type World struct {
	gravity mgl64.Vec3

	bodies []*RigidBody
	gens   []uint32
	free   []uint32

	// restitutionThreshold is the closing speed below which bounces are
	// dropped so resting contacts settle.
	restitutionThreshold float64
}

func NewWorld(gravity mgl64.Vec3) *World {
	return &World{
		gravity:              gravity,
		restitutionThreshold: 1.0,
	}
}

func (w *World) Gravity() mgl64.Vec3 {
	return w.gravity
}

// CreateBody registers a body and returns its handle.
func (w *World) CreateBody(desc BodyDesc) Handle {
	body := newRigidBody(desc)
	if n := len(w.free); n > 0 {
		id := w.free[n-1]
		w.free = w.free[:n-1]
		w.bodies[id-1] = body
		return makeHandle(id, w.gens[id-1])
	}
	w.bodies = append(w.bodies, body)
	w.gens = append(w.gens, 0)
	return makeHandle(uint32(len(w.bodies)), 0)
}

// RemoveBody frees a body. Using h afterwards panics.
func (w *World) RemoveBody(h Handle) {
	w.body(h)
	idx := h.id() - 1
	w.bodies[idx] = nil
	w.gens[idx]++
	w.free = append(w.free, h.id())
}

// Contains reports whether h refers to a live body.
func (w *World) Contains(h Handle) bool {
	id := h.id()
	if w == nil || id == 0 || int(id) > len(w.bodies) {
		return false
	}
	return w.bodies[id-1] != nil && w.gens[id-1] == h.generation()
}

// Len is the number of live bodies.
func (w *World) Len() int {
	return len(w.bodies) - len(w.free)
}

// body resolves h or panics: a stale handle is a programming error.
func (w *World) body(h Handle) *RigidBody {
	if !w.Contains(h) {
		panic(fmt.Errorf("%w: %s", ErrInvalidHandle, h))
	}
	return w.bodies[h.id()-1]
}

func (w *World) Type(h Handle) BodyType {
	return w.body(h).typ
}

func (w *World) Translation(h Handle) mgl64.Vec3 {
	return w.body(h).translation
}

func (w *World) Rotation(h Handle) mgl64.Quat {
	return w.body(h).rotation
}

func (w *World) LinearVelocity(h Handle) mgl64.Vec3 {
	return w.body(h).linvel
}

func (w *World) AngularVelocity(h Handle) mgl64.Vec3 {
	return w.body(h).angvel
}

// Mass is zero for non-dynamic bodies.
func (w *World) Mass(h Handle) float64 {
	b := w.body(h)
	if b.invMass == 0 {
		return 0
	}
	return 1 / b.invMass
}

// ApplyImpulse changes the linear momentum of a dynamic body.
// Other body types ignore impulses.
func (w *World) ApplyImpulse(h Handle, impulse mgl64.Vec3) {
	b := w.body(h)
	if b.typ != BodyDynamic {
		return
	}
	b.linvel = b.linvel.Add(impulse.Mul(b.invMass))
}

// ApplyTorqueImpulse changes the angular momentum of a dynamic body.
func (w *World) ApplyTorqueImpulse(h Handle, torque mgl64.Vec3) {
	b := w.body(h)
	if b.typ != BodyDynamic {
		return
	}
	b.applyAngularImpulse(torque)
}

// SetNextKinematicTranslation sets where a kinematic body will be after the
// next Step. Non-kinematic bodies ignore it.
func (w *World) SetNextKinematicTranslation(h Handle, t mgl64.Vec3) {
	b := w.body(h)
	if b.typ != BodyKinematicPosition {
		return
	}
	b.nextTranslation = t
	b.hasNextT = true
}

// SetNextKinematicRotation sets the orientation a kinematic body will have
// after the next Step.
func (w *World) SetNextKinematicRotation(h Handle, q mgl64.Quat) {
	b := w.body(h)
	if b.typ != BodyKinematicPosition {
		return
	}
	b.nextRotation = q
	b.hasNextR = true
}

// Teleport places a body and clears its velocities.
func (w *World) Teleport(h Handle, t mgl64.Vec3) {
	b := w.body(h)
	b.translation = t
	b.rotation = mgl64.QuatIdent()
	b.linvel = mgl64.Vec3{}
	b.angvel = mgl64.Vec3{}
	b.hasNextT = false
	b.hasNextR = false
}

// Step advances the world by dt seconds: kinematic bodies reach their
// targets, dynamic bodies integrate, then contacts are resolved.
func (w *World) Step(dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	for _, b := range w.bodies {
		if b != nil && b.typ == BodyKinematicPosition {
			b.driveKinematic(dt)
		}
	}
	for _, b := range w.bodies {
		if b != nil && b.typ == BodyDynamic {
			b.integrate(w.gravity, dt)
		}
	}
	for _, b := range w.bodies {
		if b != nil && b.typ == BodyDynamic {
			w.resolveContacts(b)
		}
	}
}
