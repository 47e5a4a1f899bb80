package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60

func newFloorWorld(t *testing.T) (*World, Handle) {
	t.Helper()
	w := NewWorld(DefaultGravity)
	floor := w.CreateBody(BodyDesc{
		Type: BodyFixed,
		Colliders: []Collider{
			Cuboid(mgl64.Vec3{2, 0.1, 10}, mgl64.Vec3{0, -0.1, 0}, Material{Restitution: 0.2, Friction: 1}),
		},
	})
	return w, floor
}

func newBall(w *World, at mgl64.Vec3) Handle {
	return w.CreateBody(BodyDesc{
		Type:           BodyDynamic,
		Translation:    at,
		Colliders:      []Collider{Ball(0.3, Material{Restitution: 0.5, Friction: 1})},
		LinearDamping:  0.5,
		AngularDamping: 0.5,
	})
}

func TestHandleLifecycle(t *testing.T) {
	w := NewWorld(DefaultGravity)
	a := w.CreateBody(BodyDesc{Type: BodyFixed})
	b := w.CreateBody(BodyDesc{Type: BodyFixed})
	require.True(t, w.Contains(a))
	require.True(t, w.Contains(b))
	require.Equal(t, 2, w.Len())

	w.RemoveBody(a)
	require.False(t, w.Contains(a))
	require.Equal(t, 1, w.Len())

	c := w.CreateBody(BodyDesc{Type: BodyFixed})
	require.True(t, w.Contains(c))
	require.NotEqual(t, a, c, "reused slot must carry a new generation")
	require.False(t, w.Contains(a))
	require.False(t, w.Contains(Handle(0)))
}

func TestStaleHandlePanics(t *testing.T) {
	w := NewWorld(DefaultGravity)
	h := newBall(w, mgl64.Vec3{})
	w.RemoveBody(h)

	cases := map[string]func(){
		"translation":   func() { w.Translation(h) },
		"impulse":       func() { w.ApplyImpulse(h, mgl64.Vec3{0, 1, 0}) },
		"torque":        func() { w.ApplyTorqueImpulse(h, mgl64.Vec3{1, 0, 0}) },
		"kinematic":     func() { w.SetNextKinematicTranslation(h, mgl64.Vec3{}) },
		"remove_twice":  func() { w.RemoveBody(h) },
		"zero_handle":   func() { w.Rotation(Handle(0)) },
		"teleport":      func() { w.Teleport(h, mgl64.Vec3{}) },
		"unknown_index": func() { w.Translation(makeHandle(99, 0)) },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			require.Panics(t, fn)
		})
	}
}

func TestBallMassFromDensity(t *testing.T) {
	w := NewWorld(DefaultGravity)
	h := newBall(w, mgl64.Vec3{})
	want := 4.0 / 3.0 * math.Pi * 0.027
	require.InDelta(t, want, w.Mass(h), 1e-12)

	fixed := w.CreateBody(BodyDesc{Type: BodyFixed, Colliders: []Collider{Cuboid(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{}, DefaultMaterial)}})
	require.Zero(t, w.Mass(fixed))
}

func TestImpulseChangesVelocity(t *testing.T) {
	w := NewWorld(mgl64.Vec3{})
	h := newBall(w, mgl64.Vec3{})
	m := w.Mass(h)

	w.ApplyImpulse(h, mgl64.Vec3{0, 0.5, 0})
	require.InDelta(t, 0.5/m, w.LinearVelocity(h).Y(), 1e-9)

	w.ApplyImpulse(h, mgl64.Vec3{0.1, 0, 0})
	require.InDelta(t, 0.1/m, w.LinearVelocity(h).X(), 1e-9)

	w.ApplyTorqueImpulse(h, mgl64.Vec3{0.01, 0, 0})
	inertia := 0.4 * m * 0.09
	require.InDelta(t, 0.01/inertia, w.AngularVelocity(h).X(), 1e-9)
}

func TestImpulseIgnoredByNonDynamic(t *testing.T) {
	w := NewWorld(DefaultGravity)
	fixed := w.CreateBody(BodyDesc{Type: BodyFixed})
	kin := w.CreateBody(BodyDesc{Type: BodyKinematicPosition})

	w.ApplyImpulse(fixed, mgl64.Vec3{0, 10, 0})
	w.ApplyTorqueImpulse(kin, mgl64.Vec3{0, 10, 0})
	w.Step(dt)

	require.Equal(t, mgl64.Vec3{}, w.Translation(fixed))
	require.Equal(t, mgl64.Vec3{}, w.AngularVelocity(kin))
}

func TestFreeFall(t *testing.T) {
	w := NewWorld(DefaultGravity)
	h := w.CreateBody(BodyDesc{Type: BodyDynamic, Translation: mgl64.Vec3{0, 10, 0}, Colliders: []Collider{Ball(0.3, DefaultMaterial)}})
	for i := 0; i < 60; i++ {
		w.Step(dt)
	}
	// Semi-implicit Euler lands slightly below the analytic 10 - g/2.
	require.InDelta(t, 10-9.81/2, w.Translation(h).Y(), 0.1)
	require.InDelta(t, -9.81, w.LinearVelocity(h).Y(), 1e-6)
}

func TestBallSettlesOnFloor(t *testing.T) {
	w, _ := newFloorWorld(t)
	h := newBall(w, mgl64.Vec3{0, 1, 0})
	for i := 0; i < 240; i++ {
		w.Step(dt)
	}
	require.InDelta(t, 0.3, w.Translation(h).Y(), 0.02)
	require.InDelta(t, 0, w.LinearVelocity(h).Y(), 0.2)
}

func TestBallRollsForwardUnderTorque(t *testing.T) {
	w, _ := newFloorWorld(t)
	h := newBall(w, mgl64.Vec3{0, 0.3, 0})
	for i := 0; i < 30; i++ {
		w.Step(dt)
	}
	for i := 0; i < 60; i++ {
		w.ApplyTorqueImpulse(h, mgl64.Vec3{0.2 * dt, 0, 0})
		w.Step(dt)
	}
	// Spinning about +X on a frictional floor rolls the ball toward +Z.
	require.Greater(t, w.Translation(h).Z(), 0.01)
	require.InDelta(t, 0.3, w.Translation(h).Y(), 0.02)
}

func TestKinematicTargets(t *testing.T) {
	w := NewWorld(DefaultGravity)
	h := w.CreateBody(BodyDesc{
		Type:      BodyKinematicPosition,
		Colliders: []Collider{Cuboid(mgl64.Vec3{1, 0.15, 0.15}, mgl64.Vec3{0, 1.2, 0}, Material{Restitution: 0.2})},
	})

	w.SetNextKinematicTranslation(h, mgl64.Vec3{0, 1, 0})
	require.Equal(t, mgl64.Vec3{}, w.Translation(h), "target applies on the next step")

	w.Step(0.5)
	require.Equal(t, mgl64.Vec3{0, 1, 0}, w.Translation(h))
	require.InDelta(t, 2, w.LinearVelocity(h).Y(), 1e-12)

	w.Step(0.5)
	require.Equal(t, mgl64.Vec3{0, 1, 0}, w.Translation(h), "no target keeps the pose")
	require.Equal(t, mgl64.Vec3{}, w.LinearVelocity(h))

	target := mgl64.QuatRotate(0.3, mgl64.Vec3{0, 1, 0})
	w.SetNextKinematicRotation(h, target)
	w.Step(0.1)
	require.True(t, w.Rotation(h).ApproxEqualThreshold(target, 1e-9))
	require.InDelta(t, 3, w.AngularVelocity(h).Y(), 1e-6)
}

func TestKinematicIgnoresGravity(t *testing.T) {
	w := NewWorld(DefaultGravity)
	h := w.CreateBody(BodyDesc{Type: BodyKinematicPosition, Translation: mgl64.Vec3{0, 2, 0}})
	for i := 0; i < 30; i++ {
		w.Step(dt)
	}
	require.Equal(t, mgl64.Vec3{0, 2, 0}, w.Translation(h))
}

func TestKinematicPushesBall(t *testing.T) {
	w, _ := newFloorWorld(t)
	ball := newBall(w, mgl64.Vec3{0.9, 0.3, 0})
	pusher := w.CreateBody(BodyDesc{
		Type:      BodyKinematicPosition,
		Colliders: []Collider{Cuboid(mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{0, 0.5, 0}, Material{Restitution: 0.2})},
	})
	for i := 0; i < 10; i++ {
		x := float64(i+1) * 0.05
		w.SetNextKinematicTranslation(pusher, mgl64.Vec3{x, 0, 0})
		w.Step(dt)
	}
	require.Greater(t, w.Translation(ball).X(), 0.9)
	require.Greater(t, w.LinearVelocity(ball).X(), 0.0)
}

func TestTeleport(t *testing.T) {
	w := NewWorld(DefaultGravity)
	h := newBall(w, mgl64.Vec3{})
	w.ApplyImpulse(h, mgl64.Vec3{1, 1, 1})
	w.ApplyTorqueImpulse(h, mgl64.Vec3{1, 0, 0})
	w.Step(dt)

	w.Teleport(h, mgl64.Vec3{0, 1, 0})
	require.Equal(t, mgl64.Vec3{0, 1, 0}, w.Translation(h))
	require.Equal(t, mgl64.Vec3{}, w.LinearVelocity(h))
	require.Equal(t, mgl64.Vec3{}, w.AngularVelocity(h))
}

func TestSphereCuboidInside(t *testing.T) {
	c, ok := sphereCuboid(mgl64.Vec3{0, -0.02, 0}, 0.3, mgl64.Vec3{0, -0.1, 0}, mgl64.QuatIdent(), mgl64.Vec3{2, 0.1, 2})
	require.True(t, ok)
	require.True(t, c.normal.ApproxEqual(mgl64.Vec3{0, 1, 0}))
	require.InDelta(t, 0.32, c.penetration, 1e-9)
}

func TestSphereCuboidRotated(t *testing.T) {
	rot := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})
	// A long thin bar along X rotated a quarter turn lies along Z.
	_, ok := sphereCuboid(mgl64.Vec3{0, 0, 1.5}, 0.3, mgl64.Vec3{}, rot, mgl64.Vec3{1.75, 0.15, 0.15})
	require.True(t, ok)
	_, ok = sphereCuboid(mgl64.Vec3{1.5, 0, 0}, 0.3, mgl64.Vec3{}, rot, mgl64.Vec3{1.75, 0.15, 0.15})
	require.False(t, ok)
}
