// Package kinematics computes the per-frame target poses of moving obstacles.
// Every function here is pure: the pose depends only on elapsed time, the
// obstacle's fixed State and its base position.
package kinematics

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	minSpinSpeed = 0.2
	swingReach   = 1.25
	swingDrop    = -0.4
)

// Up is the axis spinners rotate about.
var Up = mgl64.Vec3{0, 1, 0}

// State is the per-instance randomness of an obstacle, fixed at spawn.
type State struct {
	Phase float64
	Speed float64
}

// NewState derives an obstacle state from a per-instance seed.
// Phase is in [0, 2π); |Speed| is in [0.2, 1.2) with a random sign.
func NewState(seed uint64) State {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	phase := r.Float64() * 2 * math.Pi
	speed := r.Float64() + minSpinSpeed
	if r.Float64() <= 0.5 {
		speed = -speed
	}
	return State{Phase: phase, Speed: speed}
}

// Pose is a kinematic target for the next physics step.
type Pose struct {
	Translation    mgl64.Vec3
	Rotation       mgl64.Quat
	HasTranslation bool
	HasRotation    bool
}

// PoseFunc maps elapsed time to a target pose for one obstacle.
type PoseFunc func(st State, elapsed float64, base mgl64.Vec3) Pose

// SpinAngle is the rotation about Up at elapsed seconds.
func SpinAngle(st State, elapsed float64) float64 {
	return elapsed * st.Speed
}

// BobOffset is the vertical offset of a limbo bar.
func BobOffset(st State, elapsed float64) float64 {
	return math.Sin(elapsed + st.Phase)
}

// SwingOffset is the horizontal and vertical offset of a limbo axe.
func SwingOffset(st State, elapsed float64) (x, y float64) {
	return math.Sin(elapsed+st.Phase) * swingReach, swingDrop
}

// Spin rotates in place about the vertical axis.
func Spin(st State, elapsed float64, _ mgl64.Vec3) Pose {
	return Pose{
		Rotation:    mgl64.QuatRotate(SpinAngle(st, elapsed), Up),
		HasRotation: true,
	}
}

// Bob moves the obstacle up and down around its base.
func Bob(st State, elapsed float64, base mgl64.Vec3) Pose {
	return Pose{
		Translation:    mgl64.Vec3{base.X(), base.Y() + BobOffset(st, elapsed), base.Z()},
		HasTranslation: true,
	}
}

// Swing moves the obstacle side to side, dropped below its base.
func Swing(st State, elapsed float64, base mgl64.Vec3) Pose {
	x, y := SwingOffset(st, elapsed)
	return Pose{
		Translation:    mgl64.Vec3{base.X() + x, base.Y() + y, base.Z()},
		HasTranslation: true,
	}
}
