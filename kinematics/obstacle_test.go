package kinematics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func TestNewStateRanges(t *testing.T) {
	var positive, negative int
	for seed := uint64(0); seed < 500; seed++ {
		st := NewState(seed)
		require.GreaterOrEqual(t, st.Phase, 0.0)
		require.Less(t, st.Phase, 2*math.Pi)
		mag := math.Abs(st.Speed)
		require.GreaterOrEqual(t, mag, 0.2)
		require.Less(t, mag, 1.2)
		if st.Speed > 0 {
			positive++
		} else {
			negative++
		}
	}
	require.Positive(t, positive)
	require.Positive(t, negative)
}

func TestNewStateDeterministic(t *testing.T) {
	require.Equal(t, NewState(42), NewState(42))
	require.NotEqual(t, NewState(42), NewState(43))
}

func TestSpin(t *testing.T) {
	cases := []struct {
		name    string
		state   State
		elapsed float64
	}{
		{"zero_time_positive", State{Phase: 1, Speed: 0.7}, 0},
		{"zero_time_negative", State{Phase: 4, Speed: -1.1}, 0},
		{"one_second", State{Speed: 0.5}, 1},
		{"long_run_negative", State{Phase: 2, Speed: -0.3}, 37.5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			base := mgl64.Vec3{0, 0, 8}
			pose := Spin(c.state, c.elapsed, base)
			require.True(t, pose.HasRotation)
			require.False(t, pose.HasTranslation)

			want := mgl64.QuatRotate(c.elapsed*c.state.Speed, Up)
			require.True(t, pose.Rotation.ApproxEqualThreshold(want, 1e-9))
			if c.elapsed == 0 {
				require.True(t, pose.Rotation.ApproxEqualThreshold(mgl64.QuatIdent(), 1e-12))
			}
		})
	}
}

func TestBobBoundedAndPeriodic(t *testing.T) {
	base := mgl64.Vec3{0, 0, 12}
	for _, phase := range []float64{0, 0.5, math.Pi, 5.9} {
		st := State{Phase: phase, Speed: 1}
		for elapsed := 0.0; elapsed < 20; elapsed += 0.37 {
			off := BobOffset(st, elapsed)
			require.LessOrEqual(t, off, 1.0)
			require.GreaterOrEqual(t, off, -1.0)
			require.InDelta(t, off, BobOffset(st, elapsed+2*math.Pi), 1e-9)

			pose := Bob(st, elapsed, base)
			require.True(t, pose.HasTranslation)
			require.False(t, pose.HasRotation)
			require.InDelta(t, base.Y()+off, pose.Translation.Y(), 1e-12)
			require.Equal(t, base.X(), pose.Translation.X())
			require.Equal(t, base.Z(), pose.Translation.Z())
		}
	}
}

func TestSwingBoundedAndPeriodic(t *testing.T) {
	base := mgl64.Vec3{0, 0, 16}
	for _, phase := range []float64{0, 1.3, 3.2, 6.1} {
		st := State{Phase: phase, Speed: -0.4}
		for elapsed := 0.0; elapsed < 20; elapsed += 0.41 {
			x, y := SwingOffset(st, elapsed)
			require.LessOrEqual(t, x, 1.25)
			require.GreaterOrEqual(t, x, -1.25)
			require.Equal(t, -0.4, y)

			x2, _ := SwingOffset(st, elapsed+2*math.Pi)
			require.InDelta(t, x, x2, 1e-9)

			pose := Swing(st, elapsed, base)
			require.InDelta(t, base.X()+x, pose.Translation.X(), 1e-12)
			require.InDelta(t, base.Y()-0.4, pose.Translation.Y(), 1e-12)
			require.Equal(t, base.Z(), pose.Translation.Z())
		}
	}
}
