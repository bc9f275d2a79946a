package game

import (
	"encoding/binary"
	"hash/fnv"
)

// StateHash identifies public state: equal for every world consistent with a View.
type StateHash uint64

// PublicPlayer is what everybody knows about a seat.
type PublicPlayer struct {
	ID       PlayerID
	Name     string
	Coins    int
	Cards    int
	Revealed []Card
}

func (p PublicPlayer) IsEliminated() bool {
	return p.Cards == 0
}

// View is the visible game state of one player: its own concealed hand and the public
// state of the table. It never carries another player's concealed cards or the pool order.
type View struct {
	Self     PlayerID
	Hand     []Card
	Players  []PublicPlayer
	Current  PlayerID
	Turn     int
	PoolSize int
	Roles    []Role
	Copies   int
	Pending  *Resolution
	Prompt   Prompt
	Over     bool
}

// ViewFor builds the view of player id. NoPlayer yields the spectator view.
func (g *Game) ViewFor(id PlayerID) View {
	v := View{
		Self:     id,
		Current:  g.current,
		Turn:     g.turn,
		PoolSize: g.Pool.RemainingCount(),
		Roles:    g.Roles,
		Copies:   g.Copies,
		Pending:  g.pending.clone(),
	}
	if p := g.player(id); p != nil {
		v.Hand = append([]Card(nil), p.Hand...)
	}
	for _, p := range g.Players {
		v.Players = append(v.Players, PublicPlayer{
			ID:       p.ID,
			Name:     p.Name,
			Coins:    p.Coins,
			Cards:    p.CardCount(),
			Revealed: append([]Card(nil), p.Revealed...),
		})
	}
	prompt, ok := g.Prompt()
	v.Prompt, v.Over = prompt, !ok
	return v
}

// Me is the viewer's public record.
func (v View) Me() PublicPlayer {
	return v.Players[v.Self]
}

// Opponents lists the living players other than the viewer.
func (v View) Opponents() []PublicPlayer {
	var others []PublicPlayer
	for _, p := range v.Players {
		if p.ID != v.Self && !p.IsEliminated() {
			others = append(others, p)
		}
	}
	return others
}

// Opponent is the strongest living opponent: most cards, then most coins.
func (v View) Opponent() (PublicPlayer, bool) {
	var best PublicPlayer
	found := false
	for _, p := range v.Opponents() {
		if !found || p.Cards > best.Cards || (p.Cards == best.Cards && p.Coins > best.Coins) {
			best = p
			found = true
		}
	}
	return best, found
}

// Holds reports whether the viewer conceals a card of role.
func (v View) Holds(role Role) bool {
	return v.CountInHand(role) > 0
}

// CountInHand is how many concealed copies of role the viewer holds.
func (v View) CountInHand(role Role) int {
	n := 0
	for _, card := range v.Hand {
		if card.Role == role {
			n++
		}
	}
	return n
}

// AvailableActions is what the viewer could propose right now.
func (v View) AvailableActions() []Action {
	if v.Self == NoPlayer || v.Me().IsEliminated() {
		return nil
	}
	var targets []PlayerID
	n := len(v.Players)
	for i := 1; i < n; i++ {
		other := v.Players[(int(v.Self)+i)%n]
		if !other.IsEliminated() {
			targets = append(targets, other.ID)
		}
	}
	return availableActions(v.Self, v.Me().Coins, targets)
}

// LegalDecisions enumerates the viewer's answers to the current prompt.
func (v View) LegalDecisions() []Decision {
	if v.Over || v.Prompt.Player != v.Self {
		return nil
	}
	base := Decision{Kind: v.Prompt.Kind, Player: v.Self}
	var decisions []Decision
	switch v.Prompt.Kind {
	case DecideAction:
		for _, a := range v.AvailableActions() {
			d := base
			d.Action = a
			decisions = append(decisions, d)
		}
	case DecideChallenge, DecideChallengeBlock:
		accept := base
		accept.Accept = true
		decisions = append(decisions, base, accept)
	case DecideBlock:
		decisions = append(decisions, base)
		for _, role := range v.Pending.Action.Spec().BlockableBy {
			d := base
			d.Accept = true
			d.Claim = role
			decisions = append(decisions, d)
		}
	case DecideLoseCard:
		for _, role := range distinctRoles(v.Hand) {
			d := base
			d.Role = role
			decisions = append(decisions, d)
		}
	case DecideKeepCards:
		for _, keep := range keepOptions(v.Hand, v.Pending.Keep) {
			d := base
			d.Keep = keep
			decisions = append(decisions, d)
		}
	}
	return decisions
}

// Hash digests the public part of the view only.
func (v View) Hash() StateHash {
	hasher := fnv.New64a()
	write := func(values ...int) {
		for _, value := range values {
			binary.Write(hasher, binary.LittleEndian, int64(value))
		}
	}

	write(int(v.Current), v.PoolSize)
	for _, p := range v.Players {
		write(p.Coins, p.Cards, len(p.Revealed))
		for _, card := range p.Revealed {
			write(int(card.Role))
		}
	}
	if v.Over {
		write(-1)
	} else {
		write(int(v.Prompt.Kind), int(v.Prompt.Player))
	}
	if r := v.Pending; r != nil {
		write(int(r.Action.Kind), int(r.Action.Actor), int(r.Action.Target), int(r.Stage),
			int(r.Challenger), int(r.Blocker), int(r.Claim), r.Keep, int(r.after), len(r.asked), len(r.losers))
	}
	return StateHash(hasher.Sum64())
}

// Hash is the public state hash, the same one any of the players' views produce.
func (g *Game) Hash() StateHash {
	return g.ViewFor(NoPlayer).Hash()
}
