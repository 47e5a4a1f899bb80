package entity

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/rollcourse/ecs"
	"github.com/milk9111/rollcourse/ecs/component"
	"github.com/milk9111/rollcourse/kinematics"
	"github.com/milk9111/rollcourse/levels"
	"github.com/milk9111/rollcourse/physics"
	"github.com/milk9111/rollcourse/prefabs"
	"golang.org/x/image/colornames"
)

// goalVolume is the trigger around the End block, tall enough to catch a
// bouncing ball.
var goalVolume = mgl64.Vec3{2, 1, 2}

type blockLayout struct {
	floorColor func(*prefabs.BlocksSpec) color.Color
	pose       kinematics.PoseFunc
	goal       bool
}

func startFloor(s *prefabs.BlocksSpec) color.Color {
	return s.Colors.StartFloor.Or(colornames.Limegreen)
}

func obstacleFloor(s *prefabs.BlocksSpec) color.Color {
	return s.Colors.ObstacleFloor.Or(colornames.Greenyellow)
}

// blockTable is the one place a block kind maps to its layout and motion.
var blockTable = [...]blockLayout{
	levels.BlockStart:    {floorColor: startFloor},
	levels.BlockSpinner:  {floorColor: obstacleFloor, pose: kinematics.Spin},
	levels.BlockLimbo:    {floorColor: obstacleFloor, pose: kinematics.Bob},
	levels.BlockLimboAxe: {floorColor: obstacleFloor, pose: kinematics.Swing},
	levels.BlockEnd:      {floorColor: startFloor, goal: true},
}

// LoadCourseToWorld creates the entities and physics bodies for a generated
// course: a floor slab per block, one kinematic obstacle per obstacle block,
// the goal, and the bounds enclosing everything.
func LoadCourseToWorld(w *ecs.World, pw *physics.World, blocks []levels.BlockSpec, seed uint64, spec *prefabs.BlocksSpec) error {
	if w == nil || pw == nil || spec == nil {
		return fmt.Errorf("course: nil world, physics or blocks spec")
	}

	course := w.CreateEntity()
	if err := ecs.Add(w, course, component.CourseComponent, component.Course{
		Seed:   seed,
		Length: len(blocks) - 2,
	}); err != nil {
		return fmt.Errorf("course: add course: %w", err)
	}

	for _, block := range blocks {
		if !block.Kind.Valid() {
			return fmt.Errorf("course: block %d: unknown kind %d", block.Index, block.Kind)
		}
		layout := blockTable[block.Kind]

		if err := addFloorSlab(w, block, layout.floorColor(spec)); err != nil {
			return err
		}
		if layout.pose != nil {
			if err := addObstacle(w, pw, block, layout.pose, spec); err != nil {
				return err
			}
		}
		if layout.goal {
			if err := addGoal(w, pw, block, spec); err != nil {
				return err
			}
		}
	}

	return addBounds(w, pw, levels.Bounds(levels.CourseLength(blocks)), spec)
}

func addFloorSlab(w *ecs.World, block levels.BlockSpec, c color.Color) error {
	slab := levels.FloorSlab(block)
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.BlockComponent, component.Block{Kind: block.Kind, Index: block.Index}); err != nil {
		return fmt.Errorf("course: block %d: add block: %w", block.Index, err)
	}
	if err := ecs.Add(w, e, component.TransformComponent, component.NewTransform(slab.Center)); err != nil {
		return fmt.Errorf("course: block %d: add transform: %w", block.Index, err)
	}
	if err := ecs.Add(w, e, component.MeshComponent, component.Mesh{
		Shape:       component.MeshBox,
		HalfExtents: slab.HalfExtents,
		Color:       c,
	}); err != nil {
		return fmt.Errorf("course: block %d: add mesh: %w", block.Index, err)
	}
	return nil
}

func addObstacle(w *ecs.World, pw *physics.World, block levels.BlockSpec, pose kinematics.PoseFunc, spec *prefabs.BlocksSpec) error {
	shape, ok := spec.Obstacles[block.Kind]
	if !ok {
		return fmt.Errorf("course: block %d: no obstacle shape for %s", block.Index, block.Kind)
	}

	// Start the body where its motion puts it at t=0 so the first step does
	// not snap it into place.
	start := pose(block.Obstacle, 0, block.Position)
	translation, rotation := block.Position, mgl64.QuatIdent()
	if start.HasTranslation {
		translation = start.Translation
	}
	if start.HasRotation {
		rotation = start.Rotation
	}

	h := pw.CreateBody(physics.BodyDesc{
		Type:        physics.BodyKinematicPosition,
		Translation: translation,
		Rotation:    rotation,
		Colliders: []physics.Collider{
			physics.Cuboid(shape.HalfExtents(), shape.Offset, spec.ObstacleMaterial.Material()),
		},
	})

	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.ObstacleComponent, component.Obstacle{
		Kind:  block.Kind,
		State: block.Obstacle,
		Base:  block.Position,
		Pose:  pose,
	}); err != nil {
		return fmt.Errorf("course: block %d: add obstacle: %w", block.Index, err)
	}
	if err := ecs.Add(w, e, component.RigidBodyComponent, component.RigidBody{Handle: h, Type: physics.BodyKinematicPosition}); err != nil {
		return fmt.Errorf("course: block %d: add rigid body: %w", block.Index, err)
	}
	if err := ecs.Add(w, e, component.TransformComponent, component.Transform{Position: translation, Rotation: rotation}); err != nil {
		return fmt.Errorf("course: block %d: add transform: %w", block.Index, err)
	}
	if err := ecs.Add(w, e, component.MeshComponent, component.Mesh{
		Shape:       component.MeshBox,
		HalfExtents: shape.HalfExtents(),
		Offset:      shape.Offset,
		Color:       spec.Colors.Obstacle.Or(colornames.Orangered),
	}); err != nil {
		return fmt.Errorf("course: block %d: add mesh: %w", block.Index, err)
	}
	return nil
}

func addGoal(w *ecs.World, pw *physics.World, block levels.BlockSpec, spec *prefabs.BlocksSpec) error {
	h := pw.CreateBody(physics.BodyDesc{
		Type:        physics.BodyFixed,
		Translation: block.Position,
		Colliders: []physics.Collider{
			physics.Cuboid(spec.Goal.HalfExtents(), spec.Goal.Offset, physics.DefaultMaterial),
		},
	})

	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.GoalComponent, component.Goal{HalfExtents: goalVolume}); err != nil {
		return fmt.Errorf("course: goal: add goal: %w", err)
	}
	if err := ecs.Add(w, e, component.RigidBodyComponent, component.RigidBody{Handle: h, Type: physics.BodyFixed}); err != nil {
		return fmt.Errorf("course: goal: add rigid body: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent, component.NewTransform(block.Position)); err != nil {
		return fmt.Errorf("course: goal: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.MeshComponent, component.Mesh{
		Shape:       component.MeshBox,
		HalfExtents: spec.Goal.HalfExtents(),
		Offset:      spec.Goal.Offset,
		Color:       spec.Colors.Goal.Or(colornames.Goldenrod),
	}); err != nil {
		return fmt.Errorf("course: goal: add mesh: %w", err)
	}
	return nil
}

// addBounds registers one fixed body holding the floor and wall colliders.
// The floor is drawn by the per-block slabs, so only walls get meshes.
func addBounds(w *ecs.World, pw *physics.World, bounds levels.BoundsSpec, spec *prefabs.BlocksSpec) error {
	wallMat := spec.WallMaterial.Material()
	colliders := []physics.Collider{
		physics.Cuboid(bounds.Floor.HalfExtents, bounds.Floor.Center, spec.FloorMaterial.Material()),
	}
	for _, wall := range bounds.Walls() {
		colliders = append(colliders, physics.Cuboid(wall.HalfExtents, wall.Center, wallMat))
	}
	h := pw.CreateBody(physics.BodyDesc{Type: physics.BodyFixed, Colliders: colliders})

	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.RigidBodyComponent, component.RigidBody{Handle: h, Type: physics.BodyFixed}); err != nil {
		return fmt.Errorf("course: bounds: add rigid body: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent, component.NewTransform(mgl64.Vec3{})); err != nil {
		return fmt.Errorf("course: bounds: add transform: %w", err)
	}

	wallColor := spec.Colors.Wall.Or(colornames.Slategrey)
	for _, wall := range bounds.Walls() {
		we := w.CreateEntity()
		if err := ecs.Add(w, we, component.TransformComponent, component.NewTransform(wall.Center)); err != nil {
			return fmt.Errorf("course: wall: add transform: %w", err)
		}
		if err := ecs.Add(w, we, component.MeshComponent, component.Mesh{
			Shape:       component.MeshBox,
			HalfExtents: wall.HalfExtents,
			Color:       wallColor,
		}); err != nil {
			return fmt.Errorf("course: wall: add mesh: %w", err)
		}
	}
	return nil
}
