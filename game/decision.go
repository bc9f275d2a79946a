package game

import (
	"coup/meta"
	"fmt"
	"sort"
)

// DecisionKind names the six decision points a provider answers.
type DecisionKind int

const (
	DecideAction         DecisionKind = iota // 0
	DecideChallenge                          // 1
	DecideBlock                              // 2
	DecideChallengeBlock                     // 3
	DecideLoseCard                           // 4
	DecideKeepCards                          // 5
)

func (k DecisionKind) String() string {
	switch k {
	case DecideAction:
		return "action"
	case DecideChallenge:
		return "challenge"
	case DecideBlock:
		return "block"
	case DecideChallengeBlock:
		return "challenge-block"
	case DecideLoseCard:
		return "lose-card"
	case DecideKeepCards:
		return "keep-cards"
	default:
		return "unknown"
	}
}

// Prompt is the decision the game is waiting for.
type Prompt struct {
	Kind   DecisionKind
	Player PlayerID
}

// Keep lists the roles retained by an exchange, sorted, padded with NoRole.
type Keep [meta.STARTING_INFLUENCE]Role

// NewKeep builds the canonical Keep for roles.
func NewKeep(roles []Role) Keep {
	sorted := append([]Role(nil), roles...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	var k Keep
	copy(k[:], sorted)
	return k
}

// Roles returns the first n kept roles.
func (k Keep) Roles(n int) []Role {
	return append([]Role(nil), k[:min(n, len(k))]...)
}

// Decision is one edge of the game: the answer to a Prompt. Decisions are comparable
// so they can key search trees; card choices are expressed by role.
type Decision struct {
	Kind   DecisionKind
	Player PlayerID
	Action Action // DecideAction
	Accept bool   // DecideChallenge, DecideBlock, DecideChallengeBlock
	Claim  Role   // DecideBlock
	Role   Role   // DecideLoseCard
	Card   int    // DecideLoseCard: exact card id, 0 lets Role pick
	Keep   Keep   // DecideKeepCards
}

// Public strips what viewer is not allowed to see.
func (d Decision) Public(viewer PlayerID) Decision {
	d.Card = 0
	if d.Kind == DecideKeepCards && d.Player != viewer {
		d.Keep = Keep{}
	}
	return d
}

func (d Decision) String() string {
	switch d.Kind {
	case DecideAction:
		return d.Action.String()
	case DecideBlock:
		if d.Accept {
			return fmt.Sprintf("%d blocks as %s", d.Player, d.Claim)
		}
		return fmt.Sprintf("%d does not block", d.Player)
	case DecideLoseCard:
		return fmt.Sprintf("%d loses %s", d.Player, d.Role)
	case DecideKeepCards:
		return fmt.Sprintf("%d keeps %v", d.Player, d.Keep)
	default:
		return fmt.Sprintf("%d %s=%t", d.Player, d.Kind, d.Accept)
	}
}

// availableActions enumerates the catalog rows affordable by a player with coins,
// honouring the mandatory coup, with one action per living target.
func availableActions(self PlayerID, coins int, targets []PlayerID) []Action {
	var actions []Action
	for _, spec := range Catalog() {
		if coins >= meta.MANDATORY_COUP_COINS && spec.Kind != Coup {
			continue
		}
		if coins < spec.Cost {
			continue
		}
		if !spec.RequiresTarget {
			actions = append(actions, NewAction(spec.Kind, self))
			continue
		}
		for _, target := range targets {
			actions = append(actions, NewTargetedAction(spec.Kind, self, target))
		}
	}
	return actions
}

// keepOptions lists every distinct role combination of size keep drawn from hand.
func keepOptions(hand []Card, keep int) []Keep {
	roles := make([]Role, len(hand))
	for i, card := range hand {
		roles[i] = card.Role
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })

	var options []Keep
	seen := make(map[Keep]bool)
	var pick func(start int, chosen []Role)
	pick = func(start int, chosen []Role) {
		if len(chosen) == keep {
			k := NewKeep(chosen)
			if !seen[k] {
				seen[k] = true
				options = append(options, k)
			}
			return
		}
		for i := start; i < len(roles); i++ {
			pick(i+1, append(chosen[:len(chosen):len(chosen)], roles[i]))
		}
	}
	pick(0, nil)
	return options
}

func distinctRoles(hand []Card) []Role {
	var roles []Role
	seen := make(map[Role]bool)
	for _, card := range hand {
		if !seen[card.Role] {
			seen[card.Role] = true
			roles = append(roles, card.Role)
		}
	}
	return roles
}
