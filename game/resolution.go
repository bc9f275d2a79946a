package game

import (
	"errors"
	"fmt"
)

// Stage of a pending resolution.
type Stage int

const (
	StageProposed             Stage = iota // 0
	StageChallengeWindow                   // 1
	StageBlockWindow                       // 2
	StageBlockChallengeWindow              // 3
	StageLoseInfluence                     // 4
	StageEffect                            // 5
	StageExchange                          // 6
	StageResolved                          // 7
)

func (s Stage) String() string {
	return [...]string{"proposed", "challenge-window", "block-window", "block-challenge-window",
		"lose-influence", "effect", "exchange", "resolved"}[s]
}

// Outcome summarizes one resolved (or aborted) action.
type Outcome struct {
	Action           Action
	Succeeded        bool
	Challenged       bool
	Blocked          bool
	BlockChallenged  bool
	CardsLost        []Card
	CoinsTransferred int
}

// Resolution tracks one action through the challenge/block state machine.
// Everything in it is public information.
type Resolution struct {
	Action     Action
	Stage      Stage
	Challenger PlayerID
	Blocker    PlayerID
	Claim      Role
	Keep       int // Exchange: hand size to retain
	Outcome    Outcome
	asked      []PlayerID // Players still to be asked in the open window
	losers     []PlayerID // Players who still owe an influence card
	after      Stage      // Stage entered once losers are settled
}

func (r *Resolution) clone() *Resolution {
	if r == nil {
		return nil
	}
	c := *r
	c.asked = append([]PlayerID(nil), r.asked...)
	c.losers = append([]PlayerID(nil), r.losers...)
	c.Outcome.CardsLost = append([]Card(nil), r.Outcome.CardsLost...)
	return &c
}

// prompt derives the awaited decision from the stage. advance() guarantees the
// stage is one that waits for a player.
func (r *Resolution) prompt() Prompt {
	switch r.Stage {
	case StageChallengeWindow:
		return Prompt{Kind: DecideChallenge, Player: r.asked[0]}
	case StageBlockWindow:
		return Prompt{Kind: DecideBlock, Player: r.asked[0]}
	case StageBlockChallengeWindow:
		return Prompt{Kind: DecideChallengeBlock, Player: r.asked[0]}
	case StageLoseInfluence:
		return Prompt{Kind: DecideLoseCard, Player: r.losers[0]}
	case StageExchange:
		return Prompt{Kind: DecideKeepCards, Player: r.Action.Actor}
	default:
		panic(fmt.Sprintf("stage %s does not wait for a decision", r.Stage))
	}
}

// Prompt returns the decision the game waits for, false once the game is over.
func (g *Game) Prompt() (Prompt, bool) {
	if g.IsOver() {
		return Prompt{}, false
	}
	if g.pending == nil {
		return Prompt{Kind: DecideAction, Player: g.current}, true
	}
	return g.pending.prompt(), true
}

// LegalDecisions enumerates every answer to the current prompt.
func (g *Game) LegalDecisions() []Decision {
	prompt, ok := g.Prompt()
	if !ok {
		return nil
	}
	return g.ViewFor(prompt.Player).LegalDecisions()
}

// Apply answers the current prompt and runs the state machine up to the next one.
func (g *Game) Apply(d Decision) error {
	prompt, ok := g.Prompt()
	if !ok {
		return fmt.Errorf("game is over: %w", ErrIllegalAction)
	}
	if d.Kind != prompt.Kind || d.Player != prompt.Player {
		return fmt.Errorf("%s by %d while waiting for %s by %d: %w", d.Kind, d.Player, prompt.Kind, prompt.Player, ErrIllegalAction)
	}

	var err error
	switch d.Kind {
	case DecideAction:
		err = g.propose(d.Action)
	case DecideChallenge:
		g.onChallenge(d)
	case DecideBlock:
		err = g.onBlock(d)
	case DecideChallengeBlock:
		g.onChallengeBlock(d)
	case DecideLoseCard:
		err = g.onLoseCard(d)
	case DecideKeepCards:
		err = g.onKeep(d)
	}
	if err != nil {
		return err
	}
	g.advance()
	return nil
}

// validate rejects an action before anything is mutated.
func (g *Game) validate(a Action) error {
	if g.IsOver() {
		return fmt.Errorf("game is over: %w", ErrIllegalAction)
	}
	if g.pending != nil {
		return fmt.Errorf("%s is still resolving: %w", g.pending.Action, ErrIllegalAction)
	}
	if a.Actor != g.current {
		return fmt.Errorf("not player %d's turn: %w", a.Actor, ErrIllegalAction)
	}
	for _, legal := range g.AvailableActions(a.Actor) {
		if legal == a {
			return nil
		}
	}
	return fmt.Errorf("%s is not available: %w", a, ErrIllegalAction)
}

func (g *Game) propose(a Action) error {
	if err := g.validate(a); err != nil {
		return err
	}
	actor := g.Players[a.Actor]
	actor.AddCoins(-a.Spec().Cost) // Paid upfront, never refunded
	g.pending = &Resolution{
		Action:     a,
		Stage:      StageProposed,
		Challenger: NoPlayer,
		Blocker:    NoPlayer,
		Outcome:    Outcome{Action: a},
	}
	g.logger.Debug().Msgf("proposed %s", a)
	return nil
}

func (g *Game) onChallenge(d Decision) {
	r := g.pending
	if !d.Accept {
		r.asked = r.asked[1:]
		return
	}
	r.Challenger = d.Player
	r.Outcome.Challenged = true
	actor := g.Players[r.Action.Actor]
	claim := r.Action.Spec().Claim
	if actor.HasRole(claim) {
		g.logger.Debug().Msgf("player %d proved %s against player %d", actor.ID, claim, d.Player)
		g.replace(actor, claim)
		g.loseThen(d.Player, StageBlockWindow)
		return
	}
	g.logger.Debug().Msgf("player %d caught player %d bluffing %s", d.Player, actor.ID, claim)
	g.loseThen(actor.ID, StageResolved)
}

func (g *Game) onBlock(d Decision) error {
	r := g.pending
	if !d.Accept {
		r.asked = r.asked[1:]
		return nil
	}
	if !r.Action.Kind.CanBlock(d.Claim) {
		return fmt.Errorf("%s cannot block %s: %w", d.Claim, r.Action.Kind, ErrIllegalAction)
	}
	r.Blocker = d.Player
	r.Claim = d.Claim
	g.enter(StageBlockChallengeWindow)
	return nil
}

func (g *Game) onChallengeBlock(d Decision) {
	r := g.pending
	if !d.Accept {
		r.asked = r.asked[1:]
		return
	}
	r.Challenger = d.Player
	r.Outcome.BlockChallenged = true
	blocker := g.Players[r.Blocker]
	if blocker.HasRole(r.Claim) {
		g.logger.Debug().Msgf("player %d proved %s block against player %d", blocker.ID, r.Claim, d.Player)
		g.replace(blocker, r.Claim)
		r.Outcome.Blocked = true
		g.loseThen(d.Player, StageResolved)
		return
	}
	g.logger.Debug().Msgf("player %d caught player %d bluffing %s block", d.Player, blocker.ID, r.Claim)
	g.loseThen(blocker.ID, StageEffect)
}

func (g *Game) onLoseCard(d Decision) error {
	r := g.pending
	p := g.Players[d.Player]
	id := d.Card
	if id == 0 {
		i := p.cardIndex(d.Role)
		if i < 0 {
			err := fmt.Errorf("player %d holds no %s: %w", p.ID, d.Role, ErrInvalidCardReference)
			g.abort(err)
			return err
		}
		id = p.Hand[i].ID
	}
	card, err := p.LoseInfluence(id)
	if err != nil {
		g.abort(err)
		return err
	}
	r.Outcome.CardsLost = append(r.Outcome.CardsLost, card)
	r.losers = r.losers[1:]
	g.logger.Debug().Msgf("player %d revealed %s", p.ID, card.Role)
	if p.IsEliminated() {
		g.logger.Info().Msgf("player %s is eliminated", p.Name)
	}
	return nil
}

func (g *Game) onKeep(d Decision) error {
	r := g.pending
	p := g.Players[d.Player]
	remaining := append([]Card(nil), p.Hand...)
	kept := make([]Card, 0, r.Keep)
	for _, role := range d.Keep.Roles(r.Keep) {
		i := -1
		for j, card := range remaining {
			if card.Role == role {
				i = j
				break
			}
		}
		if i < 0 {
			err := fmt.Errorf("player %d cannot keep %s: %w", p.ID, role, ErrInvalidCardReference)
			g.abort(err)
			return err
		}
		kept = append(kept, remaining[i])
		remaining = append(remaining[:i], remaining[i+1:]...)
	}
	p.Hand = kept
	for _, card := range remaining {
		g.Pool.Return(card)
	}
	g.enter(StageResolved)
	return nil
}

// advance runs every automatic transition until a player must decide or the
// resolution is discarded.
func (g *Game) advance() {
	for g.pending != nil {
		r := g.pending
		if g.IsOver() && r.Stage != StageResolved {
			g.enter(StageResolved)
			continue
		}
		switch r.Stage {
		case StageProposed:
			if r.Action.Spec().Challengeable {
				g.enter(StageChallengeWindow)
			} else {
				g.enter(StageBlockWindow)
			}
		case StageChallengeWindow, StageBlockWindow, StageBlockChallengeWindow:
			r.asked = g.living(r.asked)
			if len(r.asked) > 0 {
				return
			}
			g.closeWindow()
		case StageLoseInfluence:
			r.losers = g.living(r.losers)
			if len(r.losers) > 0 {
				return
			}
			g.enter(r.after)
		case StageEffect:
			g.applyEffect()
		case StageExchange:
			return
		case StageResolved:
			g.finish()
		}
	}
}

// enter switches stage and opens the matching window.
func (g *Game) enter(s Stage) {
	r := g.pending
	r.Stage = s
	switch s {
	case StageChallengeWindow:
		r.asked = g.opponentsOf(r.Action.Actor)
	case StageBlockWindow:
		r.asked = g.blockersOf(r.Action)
	case StageBlockChallengeWindow:
		r.asked = g.opponentsOf(r.Blocker)
	default:
		r.asked = nil
	}
}

// closeWindow handles a window nobody acted in.
func (g *Game) closeWindow() {
	r := g.pending
	switch r.Stage {
	case StageChallengeWindow:
		g.enter(StageBlockWindow)
	case StageBlockWindow:
		g.enter(StageEffect)
	case StageBlockChallengeWindow:
		r.Outcome.Blocked = true
		g.enter(StageResolved)
	}
}

func (g *Game) loseThen(loser PlayerID, after Stage) {
	r := g.pending
	r.losers = []PlayerID{loser}
	r.after = after
	g.enter(StageLoseInfluence)
}

func (g *Game) applyEffect() {
	r := g.pending
	a := r.Action
	spec := a.Spec()
	actor := g.Players[a.Actor]
	r.Outcome.Succeeded = true

	if spec.RequiresTarget && g.Players[a.Target].IsEliminated() {
		g.logger.Debug().Msgf("%s has no effect on eliminated player %d", a, a.Target)
		g.enter(StageResolved)
		return
	}

	switch a.Kind {
	case Income, ForeignAid, Tax:
		actor.AddCoins(spec.Gain)
		r.Outcome.CoinsTransferred = spec.Gain
	case Coup, Assassinate:
		g.loseThen(a.Target, StageResolved)
		return
	case Steal:
		target := g.Players[a.Target]
		amount := min(StealAmount, target.Coins)
		target.AddCoins(-amount)
		actor.AddCoins(amount)
		r.Outcome.CoinsTransferred = amount
	case Exchange:
		r.Keep = actor.CardCount()
		for i := 0; i < ExchangeDraw; i++ {
			card, err := g.Pool.Draw()
			if errors.Is(err, ErrEmptyPoolDraw) {
				g.logger.Debug().Msgf("player %d exchanges short: %v", actor.ID, err)
				continue
			}
			actor.Hand = append(actor.Hand, card)
		}
		if actor.CardCount() > r.Keep {
			g.enter(StageExchange)
			return
		}
	}
	g.enter(StageResolved)
}

// replace shuffles a proven card back into the pool and draws its replacement.
func (g *Game) replace(p *Player, role Role) {
	card, ok := p.takeRole(role)
	if !ok {
		panic(fmt.Sprintf("player %d proved %s without holding it", p.ID, role))
	}
	g.Pool.Return(card)
	drawn, err := g.Pool.Draw()
	if err != nil {
		g.logger.Warn().Err(err).Msgf("player %d gets no replacement card", p.ID)
		return
	}
	p.Hand = append(p.Hand, drawn)
}

func (g *Game) finish() {
	r := g.pending
	g.pending = nil
	g.last = r.Outcome
	g.logger.Debug().Msgf("resolved %s: succeeded=%t challenged=%t blocked=%t block-challenged=%t lost=%d coins=%d",
		r.Action, r.Outcome.Succeeded, r.Outcome.Challenged, r.Outcome.Blocked, r.Outcome.BlockChallenged, len(r.Outcome.CardsLost), r.Outcome.CoinsTransferred)
	if !g.IsOver() {
		g.AdvanceTurn()
	}
}

// abort discards the pending resolution after a fatal card reference.
func (g *Game) abort(err error) {
	r := g.pending
	if r.Stage == StageExchange {
		// Drawn cards sit after the original hand: send them back.
		actor := g.Players[r.Action.Actor]
		for _, card := range actor.Hand[r.Keep:] {
			g.Pool.Return(card)
		}
		actor.Hand = actor.Hand[:r.Keep]
	}
	r.Outcome.Succeeded = false
	g.pending = nil
	g.last = r.Outcome
	g.logger.Warn().Err(err).Msgf("aborted %s", r.Action)
	if !g.IsOver() {
		g.AdvanceTurn()
	}
}

func (g *Game) living(ids []PlayerID) []PlayerID {
	var alive []PlayerID
	for _, id := range ids {
		if !g.Players[id].IsEliminated() {
			alive = append(alive, id)
		}
	}
	return alive
}

// opponentsOf lists living players in turn order starting after id.
func (g *Game) opponentsOf(id PlayerID) []PlayerID {
	var ids []PlayerID
	n := len(g.Players)
	for i := 1; i < n; i++ {
		other := PlayerID((int(id) + i) % n)
		if !g.Players[other].IsEliminated() {
			ids = append(ids, other)
		}
	}
	return ids
}

func (g *Game) blockersOf(a Action) []PlayerID {
	if len(a.Spec().BlockableBy) == 0 {
		return nil
	}
	if a.Target != NoPlayer {
		return g.living([]PlayerID{a.Target})
	}
	return g.opponentsOf(a.Actor)
}
