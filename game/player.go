package game

import (
	"coup/utils"
	"fmt"
)

// PlayerID indexes Game.Players.
type PlayerID int

// NoPlayer marks an absent actor, target or blocker.
const NoPlayer PlayerID = -1

// Player holds a concealed hand, the cards already revealed and a coin balance.
type Player struct {
	ID       PlayerID
	Name     string
	Coins    int
	Hand     []Card
	Revealed []Card
}

// HasRole only looks at concealed cards.
func (p *Player) HasRole(role Role) bool {
	return p.cardIndex(role) >= 0
}

// AddCoins never lets the balance drop below zero.
func (p *Player) AddCoins(delta int) {
	p.Coins = max(0, p.Coins+delta)
}

// LoseInfluence reveals the held card with the given id.
func (p *Player) LoseInfluence(cardID int) (Card, error) {
	i := utils.FindIndex(p.cardIDs(), cardID)
	if i < 0 {
		return Card{}, fmt.Errorf("player %d does not hold card %d: %w", p.ID, cardID, ErrInvalidCardReference)
	}
	card := p.Hand[i]
	p.Hand = utils.RemoveAt(p.Hand, i)
	card.Revealed = true
	p.Revealed = append(p.Revealed, card)
	return card, nil
}

func (p *Player) IsEliminated() bool {
	return len(p.Hand) == 0
}

func (p *Player) CardCount() int {
	return len(p.Hand)
}

// Holds reports whether the exact card is in the concealed hand.
func (p *Player) Holds(card Card) bool {
	i := utils.FindIndex(p.cardIDs(), card.ID)
	return i >= 0 && p.Hand[i].Role == card.Role
}

func (p *Player) Clone() *Player {
	return &Player{
		ID:       p.ID,
		Name:     p.Name,
		Coins:    p.Coins,
		Hand:     append([]Card(nil), p.Hand...),
		Revealed: append([]Card(nil), p.Revealed...),
	}
}

// takeRole removes the first concealed card of role without revealing it.
func (p *Player) takeRole(role Role) (Card, bool) {
	i := p.cardIndex(role)
	if i < 0 {
		return Card{}, false
	}
	card := p.Hand[i]
	p.Hand = utils.RemoveAt(p.Hand, i)
	return card, true
}

func (p *Player) cardIndex(role Role) int {
	for i, card := range p.Hand {
		if card.Role == role {
			return i
		}
	}
	return -1
}

func (p *Player) cardIDs() []int {
	ids := make([]int, len(p.Hand))
	for i, card := range p.Hand {
		ids[i] = card.ID
	}
	return ids
}
