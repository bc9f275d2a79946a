package game

import (
	"golang.org/x/exp/rand"
)

// CardPool is the shuffled court deck. Order only matters for draw randomness.
type CardPool struct {
	cards []Card
	rng   *rand.Rand
}

// NewCardPool shuffles cards into a new pool that draws from rng.
func NewCardPool(cards []Card, rng *rand.Rand) *CardPool {
	p := &CardPool{
		cards: append([]Card(nil), cards...),
		rng:   rng,
	}
	p.shuffle()
	return p
}

// Draw removes the top card. An empty pool yields ErrEmptyPoolDraw.
func (p *CardPool) Draw() (Card, error) {
	if len(p.cards) == 0 {
		return Card{}, ErrEmptyPoolDraw
	}
	last := len(p.cards) - 1
	card := p.cards[last]
	p.cards = p.cards[:last]
	return card, nil
}

// Return puts a card back concealed and reshuffles the whole pool.
func (p *CardPool) Return(card Card) {
	card.Revealed = false
	p.cards = append(p.cards, card)
	p.shuffle()
}

func (p *CardPool) RemainingCount() int {
	return len(p.cards)
}

// Clone copies the pool onto another generator.
func (p *CardPool) Clone(rng *rand.Rand) *CardPool {
	return &CardPool{
		cards: append([]Card(nil), p.cards...),
		rng:   rng,
	}
}

func (p *CardPool) shuffle() {
	p.rng.Shuffle(len(p.cards), func(i, j int) {
		p.cards[i], p.cards[j] = p.cards[j], p.cards[i]
	})
}
