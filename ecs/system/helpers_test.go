package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/rollcourse/ecs"
	"github.com/milk9111/rollcourse/ecs/component"
	"github.com/milk9111/rollcourse/input"
	"github.com/milk9111/rollcourse/physics"
	"github.com/stretchr/testify/require"
)

type rayCall struct {
	ray    physics.Ray
	maxToi float64
	solid  bool
}

type fakePhysics struct {
	positions map[physics.Handle]mgl64.Vec3
	impulses  []mgl64.Vec3
	torques   []mgl64.Vec3
	rays      []rayCall
	hit       bool
	toi       float64

	translations map[physics.Handle]mgl64.Vec3
	rotations    map[physics.Handle]mgl64.Quat
}

func newFakePhysics() *fakePhysics {
	return &fakePhysics{
		positions:    map[physics.Handle]mgl64.Vec3{},
		translations: map[physics.Handle]mgl64.Vec3{},
		rotations:    map[physics.Handle]mgl64.Quat{},
	}
}

func (f *fakePhysics) Translation(h physics.Handle) mgl64.Vec3 { return f.positions[h] }

func (f *fakePhysics) ApplyImpulse(_ physics.Handle, impulse mgl64.Vec3) {
	f.impulses = append(f.impulses, impulse)
}

func (f *fakePhysics) ApplyTorqueImpulse(_ physics.Handle, torque mgl64.Vec3) {
	f.torques = append(f.torques, torque)
}

func (f *fakePhysics) CastRay(ray physics.Ray, maxToi float64, solid bool) (physics.RayHit, bool) {
	f.rays = append(f.rays, rayCall{ray: ray, maxToi: maxToi, solid: solid})
	if !f.hit {
		return physics.RayHit{}, false
	}
	return physics.RayHit{TimeOfImpact: f.toi, Point: ray.PointAt(f.toi)}, true
}

func (f *fakePhysics) SetNextKinematicTranslation(h physics.Handle, t mgl64.Vec3) {
	f.translations[h] = t
}

func (f *fakePhysics) SetNextKinematicRotation(h physics.Handle, q mgl64.Quat) {
	f.rotations[h] = q
}

type fakeJump struct {
	handlers map[int]func(bool)
	next     int
}

func (j *fakeJump) Subscribe(action input.Action, fn func(pressed bool)) func() {
	if action != input.ActionJump {
		return func() {}
	}
	if j.handlers == nil {
		j.handlers = map[int]func(bool){}
	}
	id := j.next
	j.next++
	j.handlers[id] = fn
	return func() { delete(j.handlers, id) }
}

func (j *fakeJump) fire(pressed bool) {
	for _, fn := range j.handlers {
		fn(pressed)
	}
}

func defaultPlayer() component.Player {
	return component.Player{
		Spawn:           mgl64.Vec3{0, 1, 0},
		Radius:          0.3,
		ImpulseStrength: 0.6,
		TorqueStrength:  0.2,
		JumpImpulse:     0.5,
		RayClearance:    0.01,
		RayLength:       10,
		GroundedTOI:     0.15,
		FallHeight:      -4,
	}
}

func addPlayer(t *testing.T, w *ecs.World, h physics.Handle) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.PlayerTagComponent, component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, e, component.PlayerComponent, defaultPlayer()))
	require.NoError(t, ecs.Add(w, e, component.RigidBodyComponent, component.RigidBody{Handle: h, Type: physics.BodyDynamic}))
	require.NoError(t, ecs.Add(w, e, component.InputComponent, component.Input{}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent, component.NewTransform(defaultPlayer().Spawn)))
	return e
}
