package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/rollcourse/ecs"
	"github.com/milk9111/rollcourse/ecs/component"
	"github.com/milk9111/rollcourse/input"
	"github.com/milk9111/rollcourse/physics"
)

var down = mgl64.Vec3{0, -1, 0}

// PlayerPhysics is the part of the physics world the controller drives.
type PlayerPhysics interface {
	Translation(h physics.Handle) mgl64.Vec3
	ApplyImpulse(h physics.Handle, impulse mgl64.Vec3)
	ApplyTorqueImpulse(h physics.Handle, torque mgl64.Vec3)
	CastRay(ray physics.Ray, maxToi float64, solid bool) (physics.RayHit, bool)
}

// JumpSource delivers edge notifications for an action.
type JumpSource interface {
	Subscribe(action input.Action, fn func(pressed bool)) (unsubscribe func())
}

// PlayerControllerSystem rolls the ball from held directions every frame and
// jumps on the jump edge when a short ray finds ground under the ball.
type PlayerControllerSystem struct {
	physics PlayerPhysics
	player  ecs.Entity
	body    physics.Handle
	params  component.Player

	latched     bool
	grounded    bool
	unsubscribe func()
}

// NewPlayerControllerSystem binds to the player entity already in w and
// subscribes to the jump action. It panics when the player or its body is
// missing. Call Close when the course is torn down.
func NewPlayerControllerSystem(w *ecs.World, phys PlayerPhysics, jump JumpSource) *PlayerControllerSystem {
	player, ok := w.First(component.PlayerTagComponent, component.PlayerComponent, component.RigidBodyComponent)
	if !ok {
		panic("player controller: no player entity with a rigid body")
	}
	params, _ := ecs.Get(w, player, component.PlayerComponent)
	body, _ := ecs.Get(w, player, component.RigidBodyComponent)

	p := &PlayerControllerSystem{
		physics: phys,
		player:  player,
		body:    body.Handle,
		params:  *params,
	}
	if jump != nil {
		p.unsubscribe = jump.Subscribe(input.ActionJump, p.onJump)
	}
	return p
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}

	in, ok := ecs.Get(w, p.player, component.InputComponent)
	if !ok {
		return
	}

	impulse, torque := p.push(*in, w.Frame().Delta)
	p.physics.ApplyImpulse(p.body, impulse)
	p.physics.ApplyTorqueImpulse(p.body, torque)
}

// push converts held directions into this frame's impulse and torque. The
// torque axis is perpendicular to travel so the ball rolls the way it moves.
func (p *PlayerControllerSystem) push(in component.Input, delta float64) (impulse, torque mgl64.Vec3) {
	force := p.params.ImpulseStrength * delta
	torqueForce := p.params.TorqueStrength * delta

	if in.Forward {
		impulse[2] += force
		torque[0] += torqueForce
	}
	if in.Backward {
		impulse[2] -= force
		torque[0] -= torqueForce
	}
	if in.Leftward {
		impulse[0] += force
		torque[2] -= torqueForce
	}
	if in.Rightward {
		impulse[0] -= force
		torque[2] += torqueForce
	}
	return impulse, torque
}

func (p *PlayerControllerSystem) onJump(pressed bool) {
	if !pressed {
		p.latched = false
		return
	}
	if p.latched {
		return
	}
	p.latched = true

	p.grounded = p.checkGrounded()
	if p.grounded {
		p.physics.ApplyImpulse(p.body, mgl64.Vec3{0, p.params.JumpImpulse, 0})
	}
}

func (p *PlayerControllerSystem) checkGrounded() bool {
	origin := p.params.RayOrigin(p.physics.Translation(p.body))
	hit, ok := p.physics.CastRay(physics.Ray{Origin: origin, Dir: down}, p.params.RayLength, true)
	return ok && hit.TimeOfImpact < p.params.GroundedTOI
}

// Grounded is the result of the last jump check.
func (p *PlayerControllerSystem) Grounded() bool {
	if p == nil {
		return false
	}
	return p.grounded
}

// Close drops the jump subscription. It is safe to call more than once.
func (p *PlayerControllerSystem) Close() {
	if p == nil || p.unsubscribe == nil {
		return
	}
	p.unsubscribe()
	p.unsubscribe = nil
}
