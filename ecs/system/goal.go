package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/rollcourse/ecs"
	"github.com/milk9111/rollcourse/ecs/component"
	"github.com/milk9111/rollcourse/physics"
)

// Respawner moves a body back to a point with its motion cleared.
type Respawner interface {
	Translation(h physics.Handle) mgl64.Vec3
	Teleport(h physics.Handle, t mgl64.Vec3)
}

// GoalSystem reports reaching the goal once per course and puts the ball
// back at the spawn point when it falls off.
type GoalSystem struct {
	bodies Respawner
}

func NewGoalSystem(bodies Respawner) *GoalSystem {
	return &GoalSystem{bodies: bodies}
}

func (g *GoalSystem) Update(w *ecs.World) {
	if g == nil || w == nil {
		return
	}

	player, ok := w.First(component.PlayerTagComponent, component.PlayerComponent, component.RigidBodyComponent)
	if !ok {
		return
	}
	params, _ := ecs.Get(w, player, component.PlayerComponent)
	body, _ := ecs.Get(w, player, component.RigidBodyComponent)
	pos := g.bodies.Translation(body.Handle)
	frame := w.Frame()

	if pos.Y() < params.FallHeight {
		g.bodies.Teleport(body.Handle, params.Spawn)
		if t, ok := ecs.Get(w, player, component.TransformComponent); ok {
			*t = component.NewTransform(params.Spawn)
		}
		w.Events().Push(ecs.Event{
			Type: ecs.EventPlayerFell,
			Data: ecs.CourseEvent{Entity: player, Frame: frame.Index, Time: frame.Elapsed},
		})
		return
	}

	ecs.ForEach2(w, component.GoalComponent, component.TransformComponent, func(e ecs.Entity, goal *component.Goal, t *component.Transform) {
		if goal.Reached || !goal.Contains(t.Position, pos) {
			return
		}
		goal.Reached = true
		if _, course, ok := ecs.First(w, component.CourseComponent); ok {
			course.Completed = true
		}
		w.Events().Push(ecs.Event{
			Type: ecs.EventCourseCompleted,
			Data: ecs.CourseEvent{Entity: e, Frame: frame.Index, Time: frame.Elapsed},
		})
	})
}
