package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestCardPool(t *testing.T) {
	cards := []Card{{ID: 1, Role: Duke}, {ID: 2, Role: Captain}, {ID: 3, Role: Contessa}}

	t.Run("draws every card once then reports an empty pool", func(t *testing.T) {
		pool := NewCardPool(cards, rand.New(rand.NewSource(1)))

		var drawn []Card
		for i := 0; i < len(cards); i++ {
			card, err := pool.Draw()
			require.NoError(t, err)
			drawn = append(drawn, card)
		}
		_, err := pool.Draw()

		require.ElementsMatch(t, cards, drawn)
		require.ErrorIs(t, err, ErrEmptyPoolDraw)
		require.Equal(t, 0, pool.RemainingCount())
	})

	t.Run("returned cards are concealed again", func(t *testing.T) {
		pool := NewCardPool(nil, rand.New(rand.NewSource(1)))

		pool.Return(Card{ID: 4, Role: Assassin, Revealed: true})
		card, err := pool.Draw()

		require.NoError(t, err)
		require.False(t, card.Revealed)
		require.Equal(t, 4, card.ID)
	})

	t.Run("same seed deals the same order", func(t *testing.T) {
		a := NewCardPool(cards, rand.New(rand.NewSource(42)))
		b := NewCardPool(cards, rand.New(rand.NewSource(42)))

		for i := 0; i < len(cards); i++ {
			cardA, _ := a.Draw()
			cardB, _ := b.Draw()
			require.Equal(t, cardA, cardB)
		}
	})

	t.Run("clone does not share cards", func(t *testing.T) {
		pool := NewCardPool(cards, rand.New(rand.NewSource(1)))
		clone := pool.Clone(rand.New(rand.NewSource(2)))

		_, err := clone.Draw()

		require.NoError(t, err)
		require.Equal(t, len(cards), pool.RemainingCount())
		require.Equal(t, len(cards)-1, clone.RemainingCount())
	})
}

func TestPlayer(t *testing.T) {
	newPlayer := func() *Player {
		return &Player{ID: 0, Coins: 3, Hand: []Card{{ID: 1, Role: Duke}, {ID: 2, Role: Contessa}}}
	}

	t.Run("losing influence reveals the card", func(t *testing.T) {
		p := newPlayer()

		card, err := p.LoseInfluence(2)

		require.NoError(t, err)
		require.True(t, card.Revealed)
		require.Equal(t, 1, p.CardCount())
		require.Equal(t, []Card{{ID: 2, Role: Contessa, Revealed: true}}, p.Revealed)
		require.False(t, p.HasRole(Contessa), "Revealed cards no longer count as held")
	})

	t.Run("losing a card not held is an invalid reference", func(t *testing.T) {
		p := newPlayer()

		_, err := p.LoseInfluence(9)

		require.ErrorIs(t, err, ErrInvalidCardReference)
		require.Equal(t, 2, p.CardCount())
	})

	t.Run("coins never go negative", func(t *testing.T) {
		p := newPlayer()

		p.AddCoins(-5)

		require.Equal(t, 0, p.Coins)
	})

	t.Run("eliminated without concealed cards", func(t *testing.T) {
		p := newPlayer()
		_, _ = p.LoseInfluence(1)
		_, _ = p.LoseInfluence(2)

		require.True(t, p.IsEliminated())
	})

	t.Run("holds checks id and role", func(t *testing.T) {
		p := newPlayer()

		require.True(t, p.Holds(Card{ID: 1, Role: Duke}))
		require.False(t, p.Holds(Card{ID: 1, Role: Captain}))
	})
}

func TestNewGame(t *testing.T) {
	t.Run("deals two cards and three coins", func(t *testing.T) {
		g := newTestGame(t)

		for _, p := range g.Players {
			require.Equal(t, 2, p.CardCount())
			require.Equal(t, 3, p.Coins)
		}
		require.Equal(t, 15, g.TotalCards())
		require.Equal(t, 11, g.Pool.RemainingCount())
		require.NotEmpty(t, g.ID)
		requireCardsAccounted(t, g)
	})

	t.Run("rejects a single player", func(t *testing.T) {
		_, err := NewGame(Config{Players: []string{"alone"}}, nil)

		require.Error(t, err)
	})

	t.Run("rejects a deck too small to deal", func(t *testing.T) {
		_, err := NewGame(Config{Players: []string{"a", "b", "c"}, Roles: []Role{Duke}, CopiesPerRole: 2}, nil)

		require.Error(t, err)
	})

	t.Run("same seed deals the same hands", func(t *testing.T) {
		a, err := NewGame(Config{Players: []string{"a", "b"}, Seed: 3}, nil)
		require.NoError(t, err)
		b, err := NewGame(Config{Players: []string{"a", "b"}, Seed: 3}, nil)
		require.NoError(t, err)

		for i := range a.Players {
			require.Equal(t, a.Players[i].Hand, b.Players[i].Hand)
		}
	})
}
