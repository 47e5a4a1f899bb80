package component

import "github.com/go-gl/mathgl/mgl64"

type Player struct {
	Spawn           mgl64.Vec3
	Radius          float64
	ImpulseStrength float64
	TorqueStrength  float64
	JumpImpulse     float64
	RayClearance    float64
	RayLength       float64
	GroundedTOI     float64
	FallHeight      float64
}

// RayOrigin is where the ground probe starts: just below the ball surface.
func (p Player) RayOrigin(center mgl64.Vec3) mgl64.Vec3 {
	return center.Sub(mgl64.Vec3{0, p.Radius + p.RayClearance, 0})
}

var PlayerComponent = NewComponent[Player]()
