package searcher

import (
	"context"
	"coup/game"
)

// The provider methods translate the seat's prompt into a search and the chosen
// decision back into the answer the game expects.

func (m *MCTS) ChooseAction(view game.View, actions []game.Action) game.Action {
	if len(actions) == 0 {
		return game.NewAction(game.Income, view.Self)
	}
	return m.Search(context.Background(), view).Action
}

func (m *MCTS) Challenge(view game.View, pending game.Action) bool {
	return m.Search(context.Background(), view).Accept
}

func (m *MCTS) Block(view game.View, pending game.Action) (game.Role, bool) {
	d := m.Search(context.Background(), view)
	return d.Claim, d.Accept
}

func (m *MCTS) ChallengeBlock(view game.View, pending game.Action, blocker game.PlayerID, claim game.Role) bool {
	return m.Search(context.Background(), view).Accept
}

func (m *MCTS) ChooseCardToLose(view game.View) game.Card {
	d := m.Search(context.Background(), view)
	for _, card := range view.Hand {
		if card.Role == d.Role {
			return card
		}
	}
	return view.Hand[0]
}

func (m *MCTS) ChooseCardsToKeep(view game.View, candidates []game.Card, keep int) []game.Card {
	d := m.Search(context.Background(), view)
	remaining := append([]game.Card(nil), candidates...)
	kept := make([]game.Card, 0, keep)
	for _, role := range d.Keep.Roles(keep) {
		for i, card := range remaining {
			if card.Role == role {
				kept = append(kept, card)
				remaining = append(remaining[:i], remaining[i+1:]...)
				break
			}
		}
	}
	if len(kept) < keep { // Search found nothing to weigh
		kept = append(kept, remaining[:keep-len(kept)]...)
	}
	return kept
}

// Observe records the public lineage between searches for tree reuse.
func (m *MCTS) Observe(d game.Decision) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lineage = append(m.lineage, d)
}
