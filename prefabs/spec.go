package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/rollcourse/input"
	"github.com/milk9111/rollcourse/levels"
	"github.com/milk9111/rollcourse/physics"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

const (
	CourseFile   = "course.yaml"
	PlayerFile   = "player.yaml"
	CameraFile   = "camera.yaml"
	BlocksFile   = "blocks.yaml"
	ControlsFile = "controls.yaml"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type CourseSpec struct {
	Length int                `yaml:"length"`
	Seed   uint64             `yaml:"seed"`
	Kinds  []levels.BlockKind `yaml:"kinds"`
}

// Config converts the course file into generator input. Validation is left to
// levels.Generate.
func (s CourseSpec) Config() levels.Config {
	return levels.Config{Length: s.Length, Kinds: append([]levels.BlockKind(nil), s.Kinds...)}
}

func LoadCourseSpec() (*CourseSpec, error) {
	spec, err := LoadSpec[CourseSpec](CourseFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Config().Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", CourseFile, err)
	}
	return &spec, nil
}

type MaterialSpec struct {
	Restitution float64 `yaml:"restitution"`
	Friction    float64 `yaml:"friction"`
}

func (m MaterialSpec) Material() physics.Material {
	return physics.Material{Restitution: m.Restitution, Friction: m.Friction}
}

type BallColliderSpec struct {
	Radius  float64 `yaml:"radius"`
	Density float64 `yaml:"density"`
}

type DampingSpec struct {
	Linear  float64 `yaml:"linear"`
	Angular float64 `yaml:"angular"`
}

type GroundRaySpec struct {
	Clearance   float64 `yaml:"clearance"`
	Length      float64 `yaml:"length"`
	GroundedTOI float64 `yaml:"grounded_toi"`
}

type PlayerSpec struct {
	Name            string           `yaml:"name"`
	Spawn           mgl64.Vec3       `yaml:"spawn"`
	Collider        BallColliderSpec `yaml:"collider"`
	Material        MaterialSpec     `yaml:"material"`
	Damping         DampingSpec      `yaml:"damping"`
	ImpulseStrength float64          `yaml:"impulse_strength"`
	TorqueStrength  float64          `yaml:"torque_strength"`
	JumpImpulse     float64          `yaml:"jump_impulse"`
	GroundRay       GroundRaySpec    `yaml:"ground_ray"`
	FallHeight      float64          `yaml:"fall_height"`
	Color           *YAMLColor       `yaml:"color"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return nil, err
	}
	if spec.Collider.Radius <= 0 {
		return nil, fmt.Errorf("%w: %s: collider radius must be positive", ErrInvalidSpec, PlayerFile)
	}
	if spec.GroundRay.Length <= 0 {
		return nil, fmt.Errorf("%w: %s: ground ray length must be positive", ErrInvalidSpec, PlayerFile)
	}
	return &spec, nil
}

type CameraSpec struct {
	Name           string     `yaml:"name"`
	PositionOffset mgl64.Vec3 `yaml:"position_offset"`
	LookOffset     mgl64.Vec3 `yaml:"look_offset"`
	FOV            float64    `yaml:"fov"`
	Near           float64    `yaml:"near"`
	Far            float64    `yaml:"far"`
	Background     *YAMLColor `yaml:"background"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec](CameraFile)
	if err != nil {
		return nil, err
	}
	if spec.Near <= 0 || spec.Far <= spec.Near {
		return nil, fmt.Errorf("%w: %s: need 0 < near < far", ErrInvalidSpec, CameraFile)
	}
	return &spec, nil
}

type BoxSpec struct {
	Size   mgl64.Vec3 `yaml:"size"`
	Offset mgl64.Vec3 `yaml:"offset"`
}

// HalfExtents is half of Size.
func (b BoxSpec) HalfExtents() mgl64.Vec3 {
	return b.Size.Mul(0.5)
}

type BlocksSpec struct {
	Colors struct {
		StartFloor    *YAMLColor `yaml:"start_floor"`
		ObstacleFloor *YAMLColor `yaml:"obstacle_floor"`
		Obstacle      *YAMLColor `yaml:"obstacle"`
		Wall          *YAMLColor `yaml:"wall"`
		Goal          *YAMLColor `yaml:"goal"`
	} `yaml:"colors"`
	Floor            BoxSpec                      `yaml:"floor"`
	FloorMaterial    MaterialSpec                 `yaml:"floor_material"`
	WallMaterial     MaterialSpec                 `yaml:"wall_material"`
	ObstacleMaterial MaterialSpec                 `yaml:"obstacle_material"`
	Obstacles        map[levels.BlockKind]BoxSpec `yaml:"obstacles"`
	Goal             BoxSpec                      `yaml:"goal"`
}

func LoadBlocksSpec() (*BlocksSpec, error) {
	spec, err := LoadSpec[BlocksSpec](BlocksFile)
	if err != nil {
		return nil, err
	}
	for _, kind := range levels.ObstacleKinds {
		if _, ok := spec.Obstacles[kind]; !ok {
			return nil, fmt.Errorf("%w: %s: missing obstacle %s", ErrInvalidSpec, BlocksFile, kind)
		}
	}
	return &spec, nil
}

type ControlsSpec struct {
	Bindings input.Bindings `yaml:"bindings"`
	Pause    []string       `yaml:"pause"`
}

func LoadControlsSpec() (*ControlsSpec, error) {
	spec, err := LoadSpec[ControlsSpec](ControlsFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Bindings.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", ControlsFile, err)
	}
	return &spec, nil
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or a CSS color name.
type YAMLColor struct {
	color.Color
}

// Or returns the color, or fallback when c is unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(strings.TrimSpace(value.Value))]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
