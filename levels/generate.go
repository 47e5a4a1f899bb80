package levels

import (
	"errors"
	"fmt"
	"math/bits"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/rollcourse/kinematics"
)

// BlockSpacing is the distance between consecutive block centres along +Z.
const BlockSpacing = 4.0

var (
	ErrNegativeLength = errors.New("levels: negative course length")
	ErrNoKinds        = errors.New("levels: no obstacle kinds for a non-empty course")
	ErrNotObstacle    = errors.New("levels: kind cannot be placed inside a course")
)

// Config describes the course to generate.
type Config struct {
	Length int
	Kinds  []BlockKind
}

// BlockSpec is one generated block. It is not modified after Generate returns.
type BlockSpec struct {
	Kind     BlockKind
	Index    int
	Position mgl64.Vec3
	Seed     uint64
	Obstacle kinematics.State
}

func (c Config) Validate() error {
	if c.Length < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeLength, c.Length)
	}
	if c.Length > 0 && len(c.Kinds) == 0 {
		return ErrNoKinds
	}
	for _, k := range c.Kinds {
		if !k.IsObstacle() {
			return fmt.Errorf("%w: %s", ErrNotObstacle, k)
		}
	}
	return nil
}

// Generate builds Start, Length obstacle blocks and End, in course order.
// It consumes exactly Length draws from rng; each draw picks the kind and
// doubles as the block's per-instance seed.
func Generate(cfg Config, rng *rand.Rand) ([]BlockSpec, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Length > 0 && rng == nil {
		return nil, errors.New("levels: nil random source")
	}

	blocks := make([]BlockSpec, 0, cfg.Length+2)
	blocks = append(blocks, BlockSpec{Kind: BlockStart, Index: 0})

	for i := 0; i < cfg.Length; i++ {
		u := rng.Uint64()
		kind := cfg.Kinds[pick(u, len(cfg.Kinds))]
		blocks = append(blocks, BlockSpec{
			Kind:     kind,
			Index:    i + 1,
			Position: PositionAt(i + 1),
			Seed:     u,
			Obstacle: kinematics.NewState(u),
		})
	}

	blocks = append(blocks, BlockSpec{
		Kind:     BlockEnd,
		Index:    cfg.Length + 1,
		Position: PositionAt(cfg.Length + 1),
	})
	return blocks, nil
}

// CourseLength is the number of 4-unit segments the blocks span, which is
// what Bounds expects.
func CourseLength(blocks []BlockSpec) int {
	return len(blocks)
}

// PositionAt is the centre of the block at index i.
func PositionAt(i int) mgl64.Vec3 {
	return mgl64.Vec3{0, 0, float64(i) * BlockSpacing}
}

// pick maps a uniform 64-bit draw onto [0, n).
func pick(u uint64, n int) int {
	hi, _ := bits.Mul64(u, uint64(n))
	return int(hi)
}

// NewRand returns a reproducible random source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed>>32|seed<<32))
}

// RandomSeed picks a non-zero seed for an unseeded run.
func RandomSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}
