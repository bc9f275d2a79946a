package game

// Evaluate scores a non-terminal game between -1 and 1 from player's perspective.
type Evaluate func(g *Game, player PlayerID) float64

// EvaluateInfluence weighs remaining influence against coins, both relative to the
// strongest opponent.
func EvaluateInfluence(g *Game, player PlayerID) float64 {
	me := g.Players[player]
	cards, coins := 0.0, 0.0
	for _, p := range g.Players {
		if p.ID == player || p.IsEliminated() {
			continue
		}
		cards = max(cards, float64(p.CardCount()))
		coins = max(coins, float64(p.Coins))
	}
	influenceScore := normalize(float64(me.CardCount()), cards)
	coinScore := normalize(float64(me.Coins), coins)

	// Influence wins games, coins only buy it
	return (3*influenceScore + coinScore) / 4
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
