package searcher

import (
	"coup/game"

	"golang.org/x/exp/rand"
)

// node is one information set of the searching player. Edges are decisions in the
// form the searching player observes them, so the same node is reached from every
// determinization that agrees on the public history.
type node struct {
	parent   *node
	edge     game.Decision   // Decision leading here from parent
	mover    game.PlayerID   // Player who took edge
	hash     game.StateHash  // Public state when the node was first reached
	children map[game.Decision]*node
	order    []game.Decision // Expansion order of children
	rewards  float64         // From the mover's perspective
	visits   float64
}

func newNode(parent *node, edge game.Decision, hash game.StateHash) *node {
	return &node{
		parent:   parent,
		edge:     edge,
		mover:    edge.Player,
		hash:     hash,
		children: make(map[game.Decision]*node),
	}
}

func newRoot(hash game.StateHash) *node {
	return newNode(nil, game.Decision{Player: game.NoPlayer}, hash)
}

// group buckets legal decisions by the edge the viewer sees. Several concrete
// decisions share an edge when they differ only in what the viewer cannot see.
func group(legal []game.Decision, viewer game.PlayerID) ([]game.Decision, map[game.Decision][]game.Decision) {
	var edges []game.Decision
	concrete := make(map[game.Decision][]game.Decision, len(legal))
	for _, d := range legal {
		edge := d.Public(viewer)
		if _, ok := concrete[edge]; !ok {
			edges = append(edges, edge)
		}
		concrete[edge] = append(concrete[edge], d)
	}
	return edges, concrete
}

// selectOrExpand picks the next edge among the legal decisions of the sampled
// world. An edge never tried from this node is expanded at random first, otherwise
// the child with the highest UCT score is selected. It returns the child, the
// concrete decision to play and whether the child was just added.
func (n *node) selectOrExpand(legal []game.Decision, viewer game.PlayerID, rng *rand.Rand) (*node, game.Decision, bool) {
	edges, concrete := group(legal, viewer)
	pick := func(edge game.Decision) game.Decision {
		options := concrete[edge]
		return options[rng.Intn(len(options))]
	}

	var untried []game.Decision
	for _, edge := range edges {
		if _, ok := n.children[edge]; !ok {
			untried = append(untried, edge)
		}
	}
	if len(untried) > 0 {
		edge := untried[rng.Intn(len(untried))]
		child := newNode(n, edge, 0)
		n.children[edge] = child
		n.order = append(n.order, edge)
		return child, pick(edge), true
	}

	best := n.pickChild(edges)
	return n.children[best], pick(best), false
}

// pickChild returns the legal edge with the highest UCT score.
func (n *node) pickChild(edges []game.Decision) game.Decision {
	if n.visits == 0 {
		panic("node has children but no visits")
	}
	policy := newUCT(CSquared, n.visits)

	best := edges[0]
	bestScore := policy.evaluate(n.children[best].rewards, n.children[best].visits)
	for _, edge := range edges[1:] {
		child := n.children[edge]
		if score := policy.evaluate(child.rewards, child.visits); score > bestScore {
			best, bestScore = edge, score
		}
	}
	return best
}

// backup records one playout result and returns the parent. The rewards of a node
// belong to the player who moved into it.
func (n *node) backup(player game.PlayerID, score float64) *node {
	n.visits++
	if n.mover == player {
		n.rewards += score
	} else {
		n.rewards -= score
	}
	return n.parent
}

// child follows an observed edge.
func (n *node) child(edge game.Decision) (*node, bool) {
	child, ok := n.children[edge]
	return child, ok
}

// prune keeps only the children reached by edges and recounts the visits of n
// from what is left.
func (n *node) prune(edges []game.Decision) {
	keep := make(map[game.Decision]bool, len(edges))
	for _, edge := range edges {
		keep[edge] = true
	}
	order := n.order[:0]
	visits := 0.0
	for _, edge := range n.order {
		if !keep[edge] {
			delete(n.children, edge)
			continue
		}
		order = append(order, edge)
		visits += n.children[edge].visits
	}
	n.order = order
	n.visits = visits
}

// detach makes n a root, dropping the rest of the old tree.
func (n *node) detach() *node {
	n.parent = nil
	return n
}
