package entity

import (
	"fmt"

	"github.com/milk9111/rollcourse/prefabs"
)

// Specs bundles the prefab data the builders consume.
type Specs struct {
	Course   *prefabs.CourseSpec
	Player   *prefabs.PlayerSpec
	Camera   *prefabs.CameraSpec
	Blocks   *prefabs.BlocksSpec
	Controls *prefabs.ControlsSpec
}

func LoadSpecs() (Specs, error) {
	var (
		s   Specs
		err error
	)
	if s.Course, err = prefabs.LoadCourseSpec(); err != nil {
		return Specs{}, fmt.Errorf("entity: %w", err)
	}
	if s.Player, err = prefabs.LoadPlayerSpec(); err != nil {
		return Specs{}, fmt.Errorf("entity: %w", err)
	}
	if s.Camera, err = prefabs.LoadCameraSpec(); err != nil {
		return Specs{}, fmt.Errorf("entity: %w", err)
	}
	if s.Blocks, err = prefabs.LoadBlocksSpec(); err != nil {
		return Specs{}, fmt.Errorf("entity: %w", err)
	}
	if s.Controls, err = prefabs.LoadControlsSpec(); err != nil {
		return Specs{}, fmt.Errorf("entity: %w", err)
	}
	return s, nil
}
