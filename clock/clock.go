package clock

// Frame is the time snapshot handed to every system for one tick.
type Frame struct {
	Index   uint64
	Elapsed float64
	Delta   float64
}

// Clock accumulates elapsed time from the deltas supplied by the host loop.
// It never reads wall time, so two clocks fed the same deltas agree exactly.
type Clock struct {
	elapsed float64
	frames  uint64
}

func New() *Clock {
	return &Clock{}
}

// Tick advances the clock by delta seconds and returns the new frame.
// Negative deltas are treated as zero.
func (c *Clock) Tick(delta float64) Frame {
	if c == nil {
		return Frame{}
	}
	if delta < 0 {
		delta = 0
	}
	c.elapsed += delta
	c.frames++
	return Frame{Index: c.frames, Elapsed: c.elapsed, Delta: delta}
}

// Now returns the last frame without advancing.
func (c *Clock) Now() Frame {
	if c == nil {
		return Frame{}
	}
	return Frame{Index: c.frames, Elapsed: c.elapsed}
}

func (c *Clock) Reset() {
	if c == nil {
		return
	}
	c.elapsed = 0
	c.frames = 0
}
