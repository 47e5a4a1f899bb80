package system

import (
	"github.com/milk9111/rollcourse/ecs"
	"github.com/milk9111/rollcourse/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update places the camera at the player's position plus its offsets. There
// is no smoothing.
func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}

	if !cs.camEntity.Valid() || !w.IsAlive(cs.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent); ok {
			cs.camEntity = camEntity
		}
	}
	if !cs.targetEntity.Valid() || !w.IsAlive(cs.targetEntity) {
		if target, ok := w.First(component.PlayerTagComponent, component.TransformComponent); ok {
			cs.targetEntity = target
		}
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent)
	if !ok {
		return
	}
	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent)
	if !ok {
		return
	}

	cam.Eye = target.Position.Add(cam.PositionOffset)
	cam.LookAt = target.Position.Add(cam.LookOffset)
}
