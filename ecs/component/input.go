package component

// Input stores per-frame input state for an entity.
type Input struct {
	Forward     bool
	Backward    bool
	Leftward    bool
	Rightward   bool
	Jump        bool
	JumpPressed bool
}

var InputComponent = NewComponent[Input]()
