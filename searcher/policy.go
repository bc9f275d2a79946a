package searcher

import "math"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant C=sqrt(2), squared

const Win = 1.0   // Reward for winning outcome
const Loss = -Win // Reward for losing outcome (negate from opponent perspective)
const Draw = 0.0  // Reward for a playout stopped without winner

// uct scores the children of one parent with N visits.
type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: cSquared * math.Log(N)}
}

// evaluate returns q/n + sqrt(c^2*ln(N)/n). Unvisited children come first.
func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		return math.Inf(1)
	}
	return q/n + math.Sqrt(u.numerator/n)
}
