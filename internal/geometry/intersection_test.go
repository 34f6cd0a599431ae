package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntersectLines(t *testing.T) {
	t.Run("Perpendicular", func(t *testing.T) {
		p := IntersectLines(
			Location{X: 0, Y: 10}, Location{X: 1, Y: 10},
			Location{X: 10, Y: 0}, Location{X: 10, Y: 1},
			0,
		)
		require.InDelta(t, 10, p.X, 1e-9)
		require.InDelta(t, 10, p.Y, 1e-9)
		require.Zero(t, p.Z)
	})

	t.Run("Oblique", func(t *testing.T) {
		// y = x and y = -x + 4 meet at (2, 2).
		p := IntersectLines(
			Location{X: 0, Y: 0}, Location{X: 1, Y: 1},
			Location{X: 0, Y: 4}, Location{X: 1, Y: 3},
			0,
		)
		require.InDelta(t, 2, p.X, 1e-9)
		require.InDelta(t, 2, p.Y, 1e-9)
	})

	t.Run("Ignores height", func(t *testing.T) {
		p := IntersectLines(
			Location{X: 0, Y: 10, Z: 3}, Location{X: 1, Y: 10, Z: 3},
			Location{X: 10, Y: 0, Z: -7}, Location{X: 10, Y: 1, Z: -7},
			0,
		)
		require.InDelta(t, 10, p.X, 1e-9)
		require.InDelta(t, 10, p.Y, 1e-9)
		require.Zero(t, p.Z)
	})

	t.Run("Parallel", func(t *testing.T) {
		p := IntersectLines(
			Location{X: 0, Y: 10}, Location{X: 1, Y: 10},
			Location{X: 0, Y: 5}, Location{X: 1, Y: 5},
			0,
		)
		require.True(t, p.IsInfinite())
		require.Equal(t, Infinity, p)
	})

	t.Run("Coincident", func(t *testing.T) {
		p := IntersectLines(
			Location{X: 0, Y: 0}, Location{X: 1, Y: 0},
			Location{X: 2, Y: 0}, Location{X: 3, Y: 0},
			0,
		)
		require.True(t, p.IsInfinite())
	})

	t.Run("Nearly parallel", func(t *testing.T) {
		a1, a2 := Location{X: 0, Y: 0}, Location{X: 1, Y: 0}
		b1, b2 := Location{X: 0, Y: 1}, Location{X: 1, Y: 1 + 1e-9}

		exact := IntersectLines(a1, a2, b1, b2, 0)
		require.False(t, exact.IsInfinite())
		require.Greater(t, math.Abs(exact.X), 1e8)

		tolerant := IntersectLines(a1, a2, b1, b2, 1e-6)
		require.True(t, tolerant.IsInfinite())
	})
}

func TestLocationDistance(t *testing.T) {
	a := Location{X: 1, Y: 2, Z: 3}
	b := Location{X: 4, Y: 6, Z: 3}
	require.InDelta(t, 5, a.Distance(b), 1e-12)
	require.InDelta(t, 5, b.Distance(a), 1e-12)
	require.Zero(t, a.Distance(a))
}

func TestInfinity(t *testing.T) {
	require.True(t, Infinity.IsInfinite())
	require.True(t, math.IsInf(Infinity.X, 1))
	require.True(t, math.IsInf(Infinity.Y, 1))
	require.False(t, Location{X: 1e300, Y: -1e300}.IsInfinite())
}
