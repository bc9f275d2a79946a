package game

import (
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// Determinize samples one concrete world consistent with everything the viewer knows:
// the viewer's hand is kept, every unseen card (other hands and the pool) is dealt at
// random from the roles not accounted for by the viewer's hand and the revealed cards.
// This is the only way simulations obtain a playable Game from imperfect information.
func (v View) Determinize(rng *rand.Rand) *Game {
	unseen := make(map[Role]int, len(v.Roles))
	for _, role := range v.Roles {
		unseen[role] = v.Copies
	}
	nextID := 0
	account := func(card Card) {
		unseen[card.Role]--
		nextID = max(nextID, card.ID)
	}
	for _, card := range v.Hand {
		account(card)
	}
	for _, p := range v.Players {
		for _, card := range p.Revealed {
			account(card)
		}
	}

	var deck []Role
	for _, role := range v.Roles {
		if unseen[role] < 0 {
			panic(fmt.Sprintf("view accounts for %d too many %s cards", -unseen[role], role))
		}
		for i := 0; i < unseen[role]; i++ {
			deck = append(deck, role)
		}
	}
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	// Sampled cards get fresh ids above every id the viewer has seen.
	deal := func() Card {
		nextID++
		card := Card{ID: nextID, Role: deck[0]}
		deck = deck[1:]
		return card
	}

	g := &Game{
		Roles:   v.Roles,
		Copies:  v.Copies,
		current: v.Current,
		turn:    v.Turn,
		pending: v.Pending.clone(),
		rng:     rng,
		logger:  zerolog.Nop(),
	}
	for _, pub := range v.Players {
		p := &Player{
			ID:       pub.ID,
			Name:     pub.Name,
			Coins:    pub.Coins,
			Revealed: append([]Card(nil), pub.Revealed...),
		}
		if pub.ID == v.Self {
			p.Hand = append([]Card(nil), v.Hand...)
		} else {
			for i := 0; i < pub.Cards; i++ {
				p.Hand = append(p.Hand, deal())
			}
		}
		g.Players = append(g.Players, p)
	}
	if len(deck) != v.PoolSize {
		panic(fmt.Sprintf("determinized pool holds %d cards, view shows %d", len(deck), v.PoolSize))
	}
	pool := make([]Card, 0, len(deck))
	for len(deck) > 0 {
		pool = append(pool, deal())
	}
	g.Pool = NewCardPool(pool, rng)
	return g
}
