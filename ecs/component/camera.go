package component

import "github.com/go-gl/mathgl/mgl64"

type Camera struct {
	PositionOffset mgl64.Vec3
	LookOffset     mgl64.Vec3
	FOV            float64 // degrees
	Near           float64
	Far            float64

	Eye    mgl64.Vec3
	LookAt mgl64.Vec3
}

var CameraComponent = NewComponent[Camera]()
