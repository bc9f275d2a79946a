package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestRandomGames(t *testing.T) {
	t.Run("cards and coins stay accounted for in two player games", func(t *testing.T) {
		for seed := uint64(1); seed <= 50; seed++ {
			g, err := NewGame(Config{Players: []string{"a", "b"}, Seed: seed}, nil)
			require.NoError(t, err)
			rng := rand.New(rand.NewSource(seed))

			playRandomly(t, g, rng, 5000, func() { requireCardsAccounted(t, g) })

			require.True(t, g.IsOver(), "Seed %d should finish", seed)
			_, ok := g.Winner()
			require.True(t, ok)
		}
	})

	t.Run("cards and coins stay accounted for in three player games", func(t *testing.T) {
		for seed := uint64(1); seed <= 20; seed++ {
			g, err := NewGame(Config{Players: []string{"a", "b", "c"}, Seed: seed}, nil)
			require.NoError(t, err)
			rng := rand.New(rand.NewSource(seed))

			playRandomly(t, g, rng, 5000, func() { requireCardsAccounted(t, g) })
		}
	})

	t.Run("legal decisions always apply", func(t *testing.T) {
		g, err := NewGame(Config{Players: []string{"a", "b"}, Seed: 11}, nil)
		require.NoError(t, err)
		rng := rand.New(rand.NewSource(11))

		playRandomly(t, g, rng, 200, func() {
			for _, d := range g.LegalDecisions() {
				clone := g.Clone(rand.New(rand.NewSource(1)))
				require.NoError(t, clone.Apply(d), "%s should be legal", d)
			}
		})
	})
}
