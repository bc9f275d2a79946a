package player

import (
	"coup/game"

	"golang.org/x/exp/rand"
)

// Random answers every decision point uniformly at random among the legal answers.
// It is the baseline opponent of the experiments.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a random provider drawing from its own seeded generator.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) ChooseAction(view game.View, actions []game.Action) game.Action {
	if len(actions) == 0 {
		return game.NewAction(game.Income, view.Self)
	}
	return actions[r.rng.Intn(len(actions))]
}

func (r *Random) Challenge(view game.View, pending game.Action) bool {
	return r.rng.Intn(2) == 0
}

func (r *Random) Block(view game.View, pending game.Action) (game.Role, bool) {
	roles := pending.Spec().BlockableBy
	choice := r.rng.Intn(len(roles) + 1)
	if choice == len(roles) {
		return game.NoRole, false
	}
	return roles[choice], true
}

func (r *Random) ChallengeBlock(view game.View, pending game.Action, blocker game.PlayerID, claim game.Role) bool {
	return r.rng.Intn(2) == 0
}

func (r *Random) ChooseCardToLose(view game.View) game.Card {
	return view.Hand[r.rng.Intn(len(view.Hand))]
}

func (r *Random) ChooseCardsToKeep(view game.View, candidates []game.Card, keep int) []game.Card {
	shuffled := append([]game.Card(nil), candidates...)
	r.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:keep]
}
