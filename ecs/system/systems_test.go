package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/rollcourse/clock"
	"github.com/milk9111/rollcourse/ecs"
	"github.com/milk9111/rollcourse/ecs/component"
	"github.com/milk9111/rollcourse/input"
	"github.com/milk9111/rollcourse/kinematics"
	"github.com/milk9111/rollcourse/levels"
	"github.com/milk9111/rollcourse/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSystem(t *testing.T) {
	w := ecs.NewWorld()
	ts := NewTimeSystem(nil, 0.5)

	ts.Update(w)
	ts.Update(w)

	f := w.Frame()
	assert.Equal(t, uint64(2), f.Index)
	assert.Equal(t, 1.0, f.Elapsed)
	assert.Equal(t, 0.5, f.Delta)
}

func TestInputSystemCopiesState(t *testing.T) {
	keys := map[string]bool{"w": true, "space": true}
	controls, err := input.NewControls(input.KeySourceFunc(func(k string) bool { return keys[k] }), input.DefaultBindings())
	require.NoError(t, err)

	w := ecs.NewWorld()
	e := addPlayer(t, w, 1)
	is := NewInputSystem(controls)

	is.Update(w)
	in, _ := ecs.Get(w, e, component.InputComponent)
	assert.Equal(t, component.Input{Forward: true, Jump: true, JumpPressed: true}, *in)

	is.Update(w)
	in, _ = ecs.Get(w, e, component.InputComponent)
	assert.Equal(t, component.Input{Forward: true, Jump: true}, *in)
}

func TestObstacleSystemSetsTargets(t *testing.T) {
	st := kinematics.State{Phase: 0.5, Speed: -0.8}
	base := mgl64.Vec3{0, 0, 8}

	cases := []struct {
		name            string
		kind            levels.BlockKind
		pose            kinematics.PoseFunc
		wantTranslation bool
		wantRotation    bool
	}{
		{"spinner", levels.BlockSpinner, kinematics.Spin, false, true},
		{"limbo", levels.BlockLimbo, kinematics.Bob, true, false},
		{"limbo_axe", levels.BlockLimboAxe, kinematics.Swing, true, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			const h physics.Handle = 3
			w := ecs.NewWorld()
			e := w.CreateEntity()
			require.NoError(t, ecs.Add(w, e, component.ObstacleComponent, component.Obstacle{Kind: c.kind, State: st, Base: base, Pose: c.pose}))
			require.NoError(t, ecs.Add(w, e, component.RigidBodyComponent, component.RigidBody{Handle: h, Type: physics.BodyKinematicPosition}))
			w.SetFrame(clock.Frame{Index: 90, Elapsed: 1.5, Delta: 1.0 / 60})

			phys := newFakePhysics()
			NewObstacleSystem(phys).Update(w)

			want := c.pose(st, 1.5, base)
			got, ok := phys.translations[h]
			assert.Equal(t, c.wantTranslation, ok)
			if ok {
				assert.Equal(t, want.Translation, got)
			}
			rot, ok := phys.rotations[h]
			assert.Equal(t, c.wantRotation, ok)
			if ok {
				assert.Equal(t, want.Rotation, rot)
			}
		})
	}
}

func TestObstacleSystemLimboValues(t *testing.T) {
	const h physics.Handle = 1
	w := ecs.NewWorld()
	e := w.CreateEntity()
	st := kinematics.State{Phase: 0, Speed: 1}
	require.NoError(t, ecs.Add(w, e, component.ObstacleComponent, component.Obstacle{Kind: levels.BlockLimbo, State: st, Base: mgl64.Vec3{0, 0, 4}, Pose: kinematics.Bob}))
	require.NoError(t, ecs.Add(w, e, component.RigidBodyComponent, component.RigidBody{Handle: h}))
	w.SetFrame(clock.Frame{Elapsed: math.Pi / 2})

	phys := newFakePhysics()
	NewObstacleSystem(phys).Update(w)
	assert.True(t, phys.translations[h].ApproxEqual(mgl64.Vec3{0, 1, 4}))
}

func TestObstacleSystemPanicsWithoutPose(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.ObstacleComponent, component.Obstacle{Kind: levels.BlockSpinner}))
	require.NoError(t, ecs.Add(w, e, component.RigidBodyComponent, component.RigidBody{Handle: 1}))
	assert.Panics(t, func() { NewObstacleSystem(newFakePhysics()).Update(w) })
}

func TestPhysicsSystemSyncsTransforms(t *testing.T) {
	pw := physics.NewWorld(physics.DefaultGravity)
	h := pw.CreateBody(physics.BodyDesc{
		Type:        physics.BodyDynamic,
		Translation: mgl64.Vec3{0, 5, 0},
		Colliders:   []physics.Collider{physics.Ball(0.3, physics.DefaultMaterial)},
	})

	w := ecs.NewWorld()
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.RigidBodyComponent, component.RigidBody{Handle: h, Type: physics.BodyDynamic}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent, component.NewTransform(mgl64.Vec3{0, 5, 0})))
	w.SetFrame(clock.Frame{Index: 1, Elapsed: 0.1, Delta: 0.1})

	ps := NewPhysicsSystem(pw)
	ps.Update(w)

	tr, _ := ecs.Get(w, e, component.TransformComponent)
	assert.Equal(t, pw.Translation(h), tr.Position)
	assert.Less(t, tr.Position.Y(), 5.0)
	assert.Same(t, pw, ps.World())
}

func newGoalWorld(t *testing.T) (*ecs.World, *physics.World, physics.Handle, ecs.Entity) {
	t.Helper()
	pw := physics.NewWorld(physics.DefaultGravity)
	h := pw.CreateBody(physics.BodyDesc{
		Type:        physics.BodyDynamic,
		Translation: mgl64.Vec3{0, 1, 0},
		Colliders:   []physics.Collider{physics.Ball(0.3, physics.DefaultMaterial)},
	})

	w := ecs.NewWorld()
	addPlayer(t, w, h)

	goal := w.CreateEntity()
	require.NoError(t, ecs.Add(w, goal, component.GoalComponent, component.Goal{HalfExtents: mgl64.Vec3{2, 1, 2}}))
	require.NoError(t, ecs.Add(w, goal, component.TransformComponent, component.NewTransform(mgl64.Vec3{0, 1, 44})))

	course := w.CreateEntity()
	require.NoError(t, ecs.Add(w, course, component.CourseComponent, component.Course{Seed: 1, Length: 10}))
	return w, pw, h, goal
}

func TestGoalSystemCompletesOnce(t *testing.T) {
	w, pw, h, goal := newGoalWorld(t)
	gs := NewGoalSystem(pw)

	gs.Update(w)
	assert.Zero(t, w.Events().Len())

	pw.Teleport(h, mgl64.Vec3{0.5, 0.3, 43})
	w.SetFrame(clock.Frame{Index: 600, Elapsed: 10})
	gs.Update(w)
	gs.Update(w)

	events := w.Events().Drain()
	require.Len(t, events, 1)
	assert.Equal(t, ecs.EventCourseCompleted, events[0].Type)
	data, ok := events[0].Data.(ecs.CourseEvent)
	require.True(t, ok)
	assert.Equal(t, goal, data.Entity)
	assert.Equal(t, uint64(600), data.Frame)

	_, course, ok := ecs.First(w, component.CourseComponent)
	require.True(t, ok)
	assert.True(t, course.Completed)
}

func TestGoalSystemRespawnsFall(t *testing.T) {
	w, pw, h, _ := newGoalWorld(t)
	gs := NewGoalSystem(pw)

	pw.Teleport(h, mgl64.Vec3{1, -4.5, 12})
	gs.Update(w)

	events := w.Events().Drain()
	require.Len(t, events, 1)
	assert.Equal(t, ecs.EventPlayerFell, events[0].Type)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, pw.Translation(h))
	assert.Equal(t, mgl64.Vec3{}, pw.LinearVelocity(h))

	player, _ := w.First(component.PlayerTagComponent)
	tr, _ := ecs.Get(w, player, component.TransformComponent)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, tr.Position)
}

func TestCameraFollowsPlayer(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, 1)
	tr, _ := ecs.Get(w, player, component.TransformComponent)
	tr.Position = mgl64.Vec3{1, 0.3, 8}

	cam := w.CreateEntity()
	require.NoError(t, ecs.Add(w, cam, component.CameraComponent, component.Camera{
		PositionOffset: mgl64.Vec3{0, 0.65, 2.25},
		LookOffset:     mgl64.Vec3{0, 0.25, 0},
	}))

	cs := NewCameraSystem()
	cs.Update(w)

	c, _ := ecs.Get(w, cam, component.CameraComponent)
	assert.True(t, c.Eye.ApproxEqual(mgl64.Vec3{1, 0.95, 10.25}), "eye %v", c.Eye)
	assert.True(t, c.LookAt.ApproxEqual(mgl64.Vec3{1, 0.55, 8}), "look %v", c.LookAt)

	tr.Position = mgl64.Vec3{0, 0.3, 12}
	cs.Update(w)
	assert.True(t, c.Eye.ApproxEqual(mgl64.Vec3{0, 0.95, 14.25}))
}
