package system

import (
	"github.com/milk9111/rollcourse/clock"
	"github.com/milk9111/rollcourse/ecs"
)

// TimeSystem advances the clock by a fixed delta and publishes the frame on
// the world. It runs first so every later system sees the same frame.
type TimeSystem struct {
	clock *clock.Clock
	delta float64
}

func NewTimeSystem(c *clock.Clock, delta float64) *TimeSystem {
	if c == nil {
		c = clock.New()
	}
	return &TimeSystem{clock: c, delta: delta}
}

func (ts *TimeSystem) Update(w *ecs.World) {
	if ts == nil || w == nil {
		return
	}
	w.SetFrame(ts.clock.Tick(ts.delta))
}
