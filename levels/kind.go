package levels

import (
	"fmt"
	"strings"
)

// BlockKind is the closed set of course blocks.
type BlockKind uint8

const (
	BlockStart BlockKind = iota
	BlockSpinner
	BlockLimbo
	BlockLimboAxe
	BlockEnd

	blockKindCount
)

var blockKindNames = [blockKindCount]string{
	BlockStart:    "start",
	BlockSpinner:  "spinner",
	BlockLimbo:    "limbo",
	BlockLimboAxe: "limbo_axe",
	BlockEnd:      "end",
}

// ObstacleKinds are the kinds a course may place between Start and End.
var ObstacleKinds = []BlockKind{BlockSpinner, BlockLimbo, BlockLimboAxe}

func (k BlockKind) String() string {
	if k >= blockKindCount {
		return fmt.Sprintf("BlockKind(%d)", uint8(k))
	}
	return blockKindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k BlockKind) Valid() bool {
	return k < blockKindCount
}

// IsObstacle reports whether k carries a moving obstacle.
func (k BlockKind) IsObstacle() bool {
	return k == BlockSpinner || k == BlockLimbo || k == BlockLimboAxe
}

func ParseBlockKind(s string) (BlockKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "-", "_")
	for k, n := range blockKindNames {
		if n == name {
			return BlockKind(k), nil
		}
	}
	return 0, fmt.Errorf("levels: unknown block kind %q", s)
}

func (k BlockKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("levels: invalid block kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *BlockKind) UnmarshalText(text []byte) error {
	parsed, err := ParseBlockKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
