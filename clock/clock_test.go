package clock

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClockTick(t *testing.T) {
	cases := []struct {
		name        string
		deltas      []float64
		wantElapsed float64
		wantIndex   uint64
	}{
		{"single", []float64{0.5}, 0.5, 1},
		{"sixty_frames", repeat(1.0/60, 60), 1.0, 60},
		{"negative_clamped", []float64{0.25, -1, 0.25}, 0.5, 3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clk := New()
			var last Frame
			for _, d := range c.deltas {
				last = clk.Tick(d)
			}
			require.InDelta(t, c.wantElapsed, last.Elapsed, 1e-9)
			require.Equal(t, c.wantIndex, last.Index)
			require.Equal(t, last.Elapsed, clk.Now().Elapsed)
		})
	}
}

func TestClockDeterministic(t *testing.T) {
	a, b := New(), New()
	for i := 0; i < 100; i++ {
		d := float64(i%7) / 100
		require.Equal(t, a.Tick(d), b.Tick(d))
	}
}

func TestClockReset(t *testing.T) {
	clk := New()
	clk.Tick(1)
	clk.Reset()
	require.Equal(t, Frame{}, clk.Now())
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
