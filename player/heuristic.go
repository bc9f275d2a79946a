package player

import (
	"coup/game"
	"sort"

	"golang.org/x/exp/rand"
)

// Values used to decide which influence to give up or keep.
var cardValues = map[game.Role]int{
	game.Duke:       5,
	game.Assassin:   4,
	game.Captain:    3,
	game.Ambassador: 2,
	game.Contessa:   1,
}

// assumedCopies is the per-role copy count the block-challenge rule reasons with.
// It ignores copies revealed elsewhere.
const assumedCopies = 2

const (
	incomeRate    = 0.8
	challengeRate = 0.3
)

// Heuristic is a deterministic priority ladder with explicit randomized fallbacks.
type Heuristic struct {
	rng *rand.Rand
}

// NewHeuristic returns a heuristic provider drawing its fallbacks from a seeded generator.
func NewHeuristic(seed uint64) *Heuristic {
	return &Heuristic{rng: rand.New(rand.NewSource(seed))}
}

func (h *Heuristic) ChooseAction(view game.View, actions []game.Action) game.Action {
	if len(actions) == 0 {
		return game.NewAction(game.Income, view.Self)
	}
	me := view.Me()
	opponent, _ := view.Opponent()
	pick := func(kind game.ActionKind) (game.Action, bool) {
		for _, a := range actions {
			if a.Kind == kind && (a.Target == game.NoPlayer || a.Target == opponent.ID) {
				return a, true
			}
		}
		return game.Action{}, false
	}

	if me.Coins >= game.CoupCost {
		if a, ok := pick(game.Coup); ok {
			return a
		}
	}
	if me.Coins >= game.AssassinateCost && view.Holds(game.Assassin) {
		if a, ok := pick(game.Assassinate); ok {
			return a
		}
	}
	if view.Holds(game.Duke) {
		if a, ok := pick(game.Tax); ok {
			return a
		}
	}
	if view.Holds(game.Captain) && opponent.Coins > 0 {
		if a, ok := pick(game.Steal); ok {
			return a
		}
	}
	if me.Coins == 6 {
		if a, ok := pick(game.ForeignAid); ok {
			return a
		}
		if a, ok := pick(game.Income); ok {
			return a
		}
	}
	if opponent.Cards == 1 && me.Coins > game.AssassinateCost {
		if a, ok := pick(game.Assassinate); ok {
			return a
		}
	}
	if h.rng.Float64() < incomeRate {
		if a, ok := pick(game.Income); ok {
			return a
		}
	}
	return actions[h.rng.Intn(len(actions))]
}

func (h *Heuristic) Challenge(view game.View, pending game.Action) bool {
	me := view.Me()
	actor := view.Players[pending.Actor]

	if pending.Kind == game.Assassinate && pending.Target == view.Self && me.Cards == 1 && !view.Holds(game.Contessa) {
		return true // Nothing left to lose
	}
	if me.Cards == 1 && actor.Cards > 1 {
		return false
	}
	if (pending.Kind == game.Assassinate || pending.Kind == game.Coup) && me.Cards <= actor.Cards {
		return true
	}
	if pending.Kind == game.Tax && !view.Holds(game.Duke) {
		return true
	}
	return h.rng.Float64() < challengeRate
}

func (h *Heuristic) Block(view game.View, pending game.Action) (game.Role, bool) {
	switch pending.Kind {
	case game.Assassinate:
		if pending.Target == view.Self && view.Holds(game.Contessa) {
			return game.Contessa, true
		}
	case game.ForeignAid:
		if view.Holds(game.Duke) {
			return game.Duke, true
		}
	case game.Steal:
		for _, role := range []game.Role{game.Captain, game.Ambassador} {
			if view.Holds(role) {
				return role, true
			}
		}
	}
	return game.NoRole, false
}

func (h *Heuristic) ChallengeBlock(view game.View, pending game.Action, blocker game.PlayerID, claim game.Role) bool {
	if view.Me().Cards == 1 {
		return false
	}
	return assumedCopies-view.CountInHand(claim) < 1
}

func (h *Heuristic) ChooseCardToLose(view game.View) game.Card {
	ranked := rank(view.Hand)
	return ranked[len(ranked)-1]
}

func (h *Heuristic) ChooseCardsToKeep(view game.View, candidates []game.Card, keep int) []game.Card {
	return rank(candidates)[:keep]
}

// rank orders cards from most to least valuable.
func rank(cards []game.Card) []game.Card {
	ranked := append([]game.Card(nil), cards...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return cardValues[ranked[i].Role] > cardValues[ranked[j].Role]
	})
	return ranked
}
