package game

import (
	"fmt"
)

// DecisionProvider answers the decision points of a game. Implementations see only
// the View of their own seat and must always return a value.
type DecisionProvider interface {
	ChooseAction(view View, actions []Action) Action
	Challenge(view View, pending Action) bool
	Block(view View, pending Action) (Role, bool)
	ChallengeBlock(view View, pending Action, blocker PlayerID, claim Role) bool
	ChooseCardToLose(view View) Card
	ChooseCardsToKeep(view View, candidates []Card, keep int) []Card
}

// Observer is implemented by providers that want to follow every decision taken.
// Decisions are stripped of what the observing seat may not see.
type Observer interface {
	Observe(d Decision)
}

// ProposeAction validates a and drives it through resolution, asking the seated
// providers for every decision along the way.
func (g *Game) ProposeAction(a Action) (Outcome, error) {
	if err := g.validate(a); err != nil {
		return Outcome{Action: a}, err
	}
	if err := g.play(Decision{Kind: DecideAction, Player: a.Actor, Action: a}); err != nil {
		return Outcome{Action: a}, err
	}
	for g.pending != nil {
		prompt := g.pending.prompt()
		d, err := g.ask(prompt)
		if err != nil {
			g.abort(err)
			return g.last, err
		}
		if err := g.play(d); err != nil {
			return g.last, err
		}
	}
	return g.last, nil
}

// play applies d and lets observers follow it.
func (g *Game) play(d Decision) error {
	if err := g.Apply(d); err != nil {
		return err
	}
	for seat, provider := range g.providers {
		if observer, ok := provider.(Observer); ok {
			observer.Observe(d.Public(PlayerID(seat)))
		}
	}
	return nil
}

func (g *Game) provider(id PlayerID) (DecisionProvider, error) {
	if int(id) >= len(g.providers) || g.providers[id] == nil {
		return nil, fmt.Errorf("no decision provider seated for player %d", id)
	}
	return g.providers[id], nil
}

// ask turns one prompt into a provider call. The engine never looks at which
// provider it is talking to.
func (g *Game) ask(prompt Prompt) (Decision, error) {
	provider, err := g.provider(prompt.Player)
	if err != nil {
		return Decision{}, err
	}
	r := g.pending
	p := g.Players[prompt.Player]
	view := g.ViewFor(prompt.Player)
	d := Decision{Kind: prompt.Kind, Player: prompt.Player}

	switch prompt.Kind {
	case DecideChallenge:
		d.Accept = provider.Challenge(view, r.Action)
	case DecideBlock:
		role, ok := provider.Block(view, r.Action)
		if ok {
			if !r.Action.Kind.CanBlock(role) {
				fallback := r.Action.Spec().BlockableBy[0]
				g.logger.Warn().Msgf("player %d claimed %s to block %s, using %s", p.ID, role, r.Action.Kind, fallback)
				role = fallback
			}
			d.Accept = true
			d.Claim = role
		}
	case DecideChallengeBlock:
		d.Accept = provider.ChallengeBlock(view, r.Action, r.Blocker, r.Claim)
	case DecideLoseCard:
		card := provider.ChooseCardToLose(view)
		if !p.Holds(card) {
			return d, fmt.Errorf("player %d chose card %d to lose: %w", p.ID, card.ID, ErrInvalidCardReference)
		}
		d.Card = card.ID
		d.Role = card.Role
	case DecideKeepCards:
		candidates := append([]Card(nil), p.Hand...)
		cards := provider.ChooseCardsToKeep(view, candidates, r.Keep)
		if len(cards) != r.Keep {
			return d, fmt.Errorf("player %d kept %d cards instead of %d: %w", p.ID, len(cards), r.Keep, ErrInvalidCardReference)
		}
		seen := make(map[int]bool, len(cards))
		roles := make([]Role, 0, len(cards))
		for _, card := range cards {
			if seen[card.ID] || !p.Holds(card) {
				return d, fmt.Errorf("player %d cannot keep card %d: %w", p.ID, card.ID, ErrInvalidCardReference)
			}
			seen[card.ID] = true
			roles = append(roles, card.Role)
		}
		d.Keep = NewKeep(roles)
	default:
		panic(fmt.Sprintf("unexpected %s prompt during resolution", prompt.Kind))
	}
	return d, nil
}
