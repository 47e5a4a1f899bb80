package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/rollcourse/ecs"
	"github.com/milk9111/rollcourse/ecs/component"
	"github.com/milk9111/rollcourse/prefabs"
)

// NewCamera creates the follow camera, already placed relative to target.
func NewCamera(w *ecs.World, spec *prefabs.CameraSpec, target mgl64.Vec3) (ecs.Entity, error) {
	if w == nil || spec == nil {
		return 0, fmt.Errorf("camera: nil world or spec")
	}

	camera := w.CreateEntity()
	if err := ecs.Add(w, camera, component.CameraTagComponent, component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}

	fov := spec.FOV
	if fov <= 0 {
		fov = 75
	}
	if err := ecs.Add(w, camera, component.CameraComponent, component.Camera{
		PositionOffset: spec.PositionOffset,
		LookOffset:     spec.LookOffset,
		FOV:            fov,
		Near:           spec.Near,
		Far:            spec.Far,
		Eye:            target.Add(spec.PositionOffset),
		LookAt:         target.Add(spec.LookOffset),
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera: %w", err)
	}
	return camera, nil
}
