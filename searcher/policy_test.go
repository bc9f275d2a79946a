package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUCT(t *testing.T) {
	t.Run("panics with zero parent visits", func(t *testing.T) {
		require.Panics(t, func() {
			newUCT(CSquared, 0)
		}, "Should panic when N is 0")
	})
}

func TestUCTEvaluate(t *testing.T) {
	t.Run("computing UCT value", func(t *testing.T) {
		policy := newUCT(CSquared, 100)
		got := policy.evaluate(5.0, 10)

		expected := 5.0/10 + math.Sqrt2*math.Sqrt(math.Log(100)/10.0)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute q/n + C*sqrt(ln(N)/n) with C=sqrt(2)")
	})

	t.Run("unvisited child has infinite priority", func(t *testing.T) {
		policy := newUCT(CSquared, 100)

		require.Equal(t, math.Inf(1), policy.evaluate(5.0, 0))
	})

	t.Run("exploration term increases with parent visits", func(t *testing.T) {
		policy1 := newUCT(CSquared, 100)
		policy2 := newUCT(CSquared, 1000)

		require.Greater(t, policy2.evaluate(5.0, 10), policy1.evaluate(5.0, 10),
			"More parent visits should increase exploration term")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		policy := newUCT(CSquared, 100)

		require.Greater(t, policy.evaluate(5.0, 10), policy.evaluate(5.0, 20),
			"More child visits should decrease exploration term")
	})

	t.Run("exploitation term increases with rewards", func(t *testing.T) {
		policy := newUCT(CSquared, 100)

		require.Greater(t, policy.evaluate(10.0, 10), policy.evaluate(5.0, 10),
			"More rewards should increase exploitation term")
	})
}
