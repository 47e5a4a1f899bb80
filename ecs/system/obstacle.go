package system

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/rollcourse/ecs"
	"github.com/milk9111/rollcourse/ecs/component"
	"github.com/milk9111/rollcourse/physics"
)

// KinematicDriver accepts next-step targets for kinematic bodies.
type KinematicDriver interface {
	SetNextKinematicTranslation(h physics.Handle, t mgl64.Vec3)
	SetNextKinematicRotation(h physics.Handle, q mgl64.Quat)
}

// ObstacleSystem evaluates each obstacle's pose at the current elapsed time
// and hands it to physics as the target for the coming step.
type ObstacleSystem struct {
	driver KinematicDriver
}

func NewObstacleSystem(driver KinematicDriver) *ObstacleSystem {
	return &ObstacleSystem{driver: driver}
}

func (o *ObstacleSystem) Update(w *ecs.World) {
	if o == nil || w == nil {
		return
	}

	elapsed := w.Frame().Elapsed
	ecs.ForEach2(w, component.ObstacleComponent, component.RigidBodyComponent, func(e ecs.Entity, ob *component.Obstacle, body *component.RigidBody) {
		if ob.Pose == nil {
			panic(fmt.Sprintf("obstacle system: entity %s (%s) has no pose function", e, ob.Kind))
		}
		pose := ob.Pose(ob.State, elapsed, ob.Base)
		if pose.HasTranslation {
			o.driver.SetNextKinematicTranslation(body.Handle, pose.Translation)
		}
		if pose.HasRotation {
			o.driver.SetNextKinematicRotation(body.Handle, pose.Rotation)
		}
	})
}
