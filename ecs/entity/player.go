package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/rollcourse/ecs"
	"github.com/milk9111/rollcourse/ecs/component"
	"github.com/milk9111/rollcourse/physics"
	"github.com/milk9111/rollcourse/prefabs"
	"golang.org/x/image/colornames"
)

func NewPlayer(w *ecs.World, pw *physics.World, spec *prefabs.PlayerSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("player: nil spec")
	}
	return NewPlayerAt(w, pw, spec, spec.Spawn)
}

// NewPlayerAt creates the ball body and the player entity that owns it.
func NewPlayerAt(w *ecs.World, pw *physics.World, spec *prefabs.PlayerSpec, pos mgl64.Vec3) (ecs.Entity, error) {
	if w == nil || pw == nil || spec == nil {
		return 0, fmt.Errorf("player: nil world, physics or spec")
	}

	h := pw.CreateBody(physics.BodyDesc{
		Type:           physics.BodyDynamic,
		Translation:    pos,
		Colliders:      []physics.Collider{physics.Ball(spec.Collider.Radius, spec.Material.Material())},
		Density:        spec.Collider.Density,
		LinearDamping:  spec.Damping.Linear,
		AngularDamping: spec.Damping.Angular,
	})

	player := w.CreateEntity()
	if err := ecs.Add(w, player, component.PlayerTagComponent, component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, player, component.PlayerComponent, component.Player{
		Spawn:           pos,
		Radius:          spec.Collider.Radius,
		ImpulseStrength: spec.ImpulseStrength,
		TorqueStrength:  spec.TorqueStrength,
		JumpImpulse:     spec.JumpImpulse,
		RayClearance:    spec.GroundRay.Clearance,
		RayLength:       spec.GroundRay.Length,
		GroundedTOI:     spec.GroundRay.GroundedTOI,
		FallHeight:      spec.FallHeight,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	if err := ecs.Add(w, player, component.RigidBodyComponent, component.RigidBody{Handle: h, Type: physics.BodyDynamic}); err != nil {
		return 0, fmt.Errorf("player: add rigid body: %w", err)
	}
	if err := ecs.Add(w, player, component.InputComponent, component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, player, component.TransformComponent, component.NewTransform(pos)); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, player, component.MeshComponent, component.Mesh{
		Shape:  component.MeshBall,
		Radius: spec.Collider.Radius,
		Color:  spec.Color.Or(colornames.Blue),
	}); err != nil {
		return 0, fmt.Errorf("player: add mesh: %w", err)
	}
	return player, nil
}
