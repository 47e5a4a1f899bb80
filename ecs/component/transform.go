package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is the world pose of an entity, copied from physics after each
// step for bodies and fixed for render-only geometry.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

func NewTransform(pos mgl64.Vec3) Transform {
	return Transform{Position: pos, Rotation: mgl64.QuatIdent()}
}

var TransformComponent = NewComponent[Transform]()
