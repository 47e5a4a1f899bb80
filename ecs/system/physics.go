package system

import (
	"github.com/milk9111/rollcourse/ecs"
	"github.com/milk9111/rollcourse/ecs/component"
	"github.com/milk9111/rollcourse/physics"
)

// PhysicsSystem steps the physics world by the frame delta and copies body
// poses back onto transforms.
type PhysicsSystem struct {
	world *physics.World
}

func NewPhysicsSystem(world *physics.World) *PhysicsSystem {
	return &PhysicsSystem{world: world}
}

func (ps *PhysicsSystem) World() *physics.World {
	if ps == nil {
		return nil
	}
	return ps.world
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil || ps.world == nil {
		return
	}

	ps.world.Step(w.Frame().Delta)

	ecs.ForEach2(w, component.RigidBodyComponent, component.TransformComponent, func(_ ecs.Entity, body *component.RigidBody, t *component.Transform) {
		t.Position = ps.world.Translation(body.Handle)
		t.Rotation = ps.world.Rotation(body.Handle)
	})
}
