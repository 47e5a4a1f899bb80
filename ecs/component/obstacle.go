package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/rollcourse/kinematics"
	"github.com/milk9111/rollcourse/levels"
)

type Obstacle struct {
	Kind  levels.BlockKind
	State kinematics.State
	Base  mgl64.Vec3
	Pose  kinematics.PoseFunc
}

var ObstacleComponent = NewComponent[Obstacle]()
