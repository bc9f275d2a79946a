package game

import (
	"coup/meta"
	"coup/utils"
	"errors"
	"fmt"
)

// CurrentPlayer is the player whose turn it is.
func (g *Game) CurrentPlayer() PlayerID {
	return g.current
}

// Turn counts completed turns.
func (g *Game) Turn() int {
	return g.turn
}

// AvailableActions lists the actions id could propose given its coins, the living
// targets and the mandatory coup rule. Eliminated players have none.
func (g *Game) AvailableActions(id PlayerID) []Action {
	p := g.player(id)
	if p == nil || p.IsEliminated() {
		return nil
	}
	return availableActions(id, p.Coins, g.opponentsOf(id))
}

// AdvanceTurn rotates to the next player still holding influence.
func (g *Game) AdvanceTurn() {
	g.turn++
	next := g.opponentsOf(g.current)
	if len(next) > 0 {
		g.current = next[0]
	}
}

// IsOver reports whether at most one player still holds influence.
func (g *Game) IsOver() bool {
	alive := utils.Count(g.Players, func(p *Player) bool { return !p.IsEliminated() })
	return alive <= 1
}

// Winner is the sole surviving player once the game is over.
func (g *Game) Winner() (PlayerID, bool) {
	if !g.IsOver() {
		return NoPlayer, false
	}
	for _, p := range g.Players {
		if !p.IsEliminated() {
			return p.ID, true
		}
	}
	return NoPlayer, false
}

// WinnerName is the winner's seat name, "" without a winner.
func (g *Game) WinnerName() string {
	id, ok := g.Winner()
	if !ok {
		return ""
	}
	return g.Players[id].Name
}

// PlayTurn asks the current player's provider for an action and resolves it.
// Illegal choices are re-prompted a few times before the first available action is
// forced, so a confused provider cannot stall the game.
func (g *Game) PlayTurn() (Outcome, error) {
	if g.IsOver() {
		return Outcome{}, fmt.Errorf("game is over: %w", ErrIllegalAction)
	}
	id := g.current
	provider, err := g.provider(id)
	if err != nil {
		return Outcome{}, err
	}
	for attempt := 0; attempt < meta.MAX_REPROMPTS; attempt++ {
		actions := g.AvailableActions(id)
		action := provider.ChooseAction(g.ViewFor(id), actions)
		outcome, err := g.ProposeAction(action)
		if errors.Is(err, ErrIllegalAction) {
			g.logger.Warn().Err(err).Msgf("player %d chose an illegal action, asking again", id)
			continue
		}
		return outcome, err
	}
	return g.ProposeAction(g.AvailableActions(id)[0])
}
