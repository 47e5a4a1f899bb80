package component

import "github.com/milk9111/rollcourse/levels"

type Block struct {
	Kind  levels.BlockKind
	Index int
}

var BlockComponent = NewComponent[Block]()
