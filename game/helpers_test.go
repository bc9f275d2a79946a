package game

import (
	"testing"

	"coup/utils"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// scripted answers from fixed choices and records what it was asked.
type scripted struct {
	actions        []Action // Consumed in order, then the first available action
	challenge      bool
	block          Role // NoRole never blocks
	challengeBlock bool
	lose           func(view View) Card
	keep           func(candidates []Card, keep int) []Card
	asked          []DecisionKind
	observed       []Decision
}

func (s *scripted) ChooseAction(view View, actions []Action) Action {
	s.asked = append(s.asked, DecideAction)
	if len(s.actions) > 0 {
		a := s.actions[0]
		s.actions = s.actions[1:]
		return a
	}
	return actions[0]
}

func (s *scripted) Challenge(view View, pending Action) bool {
	s.asked = append(s.asked, DecideChallenge)
	return s.challenge
}

func (s *scripted) Block(view View, pending Action) (Role, bool) {
	s.asked = append(s.asked, DecideBlock)
	return s.block, s.block != NoRole
}

func (s *scripted) ChallengeBlock(view View, pending Action, blocker PlayerID, claim Role) bool {
	s.asked = append(s.asked, DecideChallengeBlock)
	return s.challengeBlock
}

func (s *scripted) ChooseCardToLose(view View) Card {
	s.asked = append(s.asked, DecideLoseCard)
	if s.lose != nil {
		return s.lose(view)
	}
	return view.Hand[0]
}

func (s *scripted) ChooseCardsToKeep(view View, candidates []Card, keep int) []Card {
	s.asked = append(s.asked, DecideKeepCards)
	if s.keep != nil {
		return s.keep(candidates, keep)
	}
	return candidates[:keep]
}

func (s *scripted) Observe(d Decision) {
	s.observed = append(s.observed, d)
}

func newTestGame(t *testing.T, providers ...DecisionProvider) *Game {
	t.Helper()
	players := []string{"alice", "bob"}
	if len(providers) > 2 {
		players = append(players, "carol")
	}
	g, err := NewGame(Config{Players: players, Seed: 7}, providers)
	require.NoError(t, err)
	return g
}

// rig swaps the hand of id for cards of the given roles taken from the pool.
func rig(t *testing.T, g *Game, id PlayerID, roles ...Role) {
	t.Helper()
	p := g.Players[id]
	g.Pool.cards = append(g.Pool.cards, p.Hand...)
	p.Hand = nil
	for _, role := range roles {
		i := -1
		for j, card := range g.Pool.cards {
			if card.Role == role {
				i = j
				break
			}
		}
		require.GreaterOrEqual(t, i, 0, "pool should still hold a %s", role)
		p.Hand = append(p.Hand, g.Pool.cards[i])
		g.Pool.cards = utils.RemoveAt(g.Pool.cards, i)
	}
}

func requireCardsAccounted(t *testing.T, g *Game) {
	t.Helper()
	require.Equal(t, g.TotalCards(), g.Pool.RemainingCount()+g.ConcealedCount()+g.RevealedCount(),
		"Every card should be in the pool, a hand or revealed")
	for _, p := range g.Players {
		require.GreaterOrEqual(t, p.Coins, 0, "Player %d should never owe coins", p.ID)
	}
}

// playRandomly answers every prompt with a uniformly random legal decision.
func playRandomly(t *testing.T, g *Game, rng *rand.Rand, steps int, check func()) {
	t.Helper()
	for i := 0; i < steps; i++ {
		legal := g.LegalDecisions()
		if len(legal) == 0 {
			return
		}
		require.NoError(t, g.Apply(legal[rng.Intn(len(legal))]))
		check()
	}
}
