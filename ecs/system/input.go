package system

import (
	"github.com/milk9111/rollcourse/ecs"
	"github.com/milk9111/rollcourse/ecs/component"
	"github.com/milk9111/rollcourse/input"
)

// InputSystem polls the controls once per frame, which also dispatches edge
// subscribers such as the jump handler, and copies the snapshot onto every
// entity with an Input component.
type InputSystem struct {
	controls *input.Controls
}

func NewInputSystem(controls *input.Controls) *InputSystem {
	return &InputSystem{controls: controls}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil || i.controls == nil {
		return
	}

	i.controls.Update()
	st := i.controls.State()

	ecs.ForEach(w, component.InputComponent, func(_ ecs.Entity, in *component.Input) {
		in.Forward = st.Forward
		in.Backward = st.Backward
		in.Leftward = st.Leftward
		in.Rightward = st.Rightward
		in.Jump = st.Jump
		in.JumpPressed = st.JumpPressed
	})
}
