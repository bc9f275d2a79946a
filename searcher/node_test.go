package searcher

import (
	"testing"

	"coup/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func challenge(player game.PlayerID, accept bool) game.Decision {
	return game.Decision{Kind: game.DecideChallenge, Player: player, Accept: accept}
}

func TestNodeSelectOrExpand(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("expands an untried decision first", func(t *testing.T) {
		n := newRoot(0)
		tried := challenge(0, false)
		n.children[tried] = newNode(n, tried, 0)
		n.order = append(n.order, tried)
		n.visits = 1

		child, d, expanded := n.selectOrExpand([]game.Decision{tried, challenge(0, true)}, 0, rng)

		require.True(t, expanded)
		require.Equal(t, challenge(0, true), d)
		require.Equal(t, child, n.children[d])
		require.Equal(t, game.PlayerID(0), child.mover)
		require.Len(t, n.order, 2)
	})

	t.Run("selects the child with the highest score", func(t *testing.T) {
		n := newRoot(0)
		n.visits = 20
		for _, accept := range []bool{false, true} {
			d := challenge(0, accept)
			n.children[d] = newNode(n, d, 0)
			n.order = append(n.order, d)
			n.children[d].visits = 10
		}
		n.children[challenge(0, true)].rewards = 5

		child, d, expanded := n.selectOrExpand([]game.Decision{challenge(0, false), challenge(0, true)}, 0, rng)

		require.False(t, expanded)
		require.Equal(t, challenge(0, true), d)
		require.Equal(t, n.children[d], child)
	})

	t.Run("only considers decisions legal in the sampled world", func(t *testing.T) {
		n := newRoot(0)
		n.visits = 20
		for _, accept := range []bool{false, true} {
			d := challenge(0, accept)
			n.children[d] = newNode(n, d, 0)
			n.children[d].visits = 10
		}
		n.children[challenge(0, true)].rewards = 5

		_, d, expanded := n.selectOrExpand([]game.Decision{challenge(0, false)}, 0, rng)

		require.False(t, expanded)
		require.Equal(t, challenge(0, false), d)
	})

	t.Run("hidden choices share one edge", func(t *testing.T) {
		n := newRoot(0)
		keepA := game.Decision{Kind: game.DecideKeepCards, Player: 1, Keep: game.NewKeep([]game.Role{game.Duke, game.Duke})}
		keepB := game.Decision{Kind: game.DecideKeepCards, Player: 1, Keep: game.NewKeep([]game.Role{game.Captain, game.Duke})}

		child, d, expanded := n.selectOrExpand([]game.Decision{keepA, keepB}, 0, rng)

		require.True(t, expanded)
		require.Contains(t, []game.Decision{keepA, keepB}, d, "The concrete decision is played")
		require.Len(t, n.children, 1, "The viewer cannot tell the two apart")
		require.Equal(t, game.Keep{}, child.edge.Keep)
	})
}

func TestNodeBackup(t *testing.T) {
	t.Run("rewards the winning mover", func(t *testing.T) {
		root := newRoot(0)
		mine := newNode(root, challenge(0, true), 0)
		theirs := newNode(mine, challenge(1, false), 0)

		backup(theirs, 0, Win)

		require.Equal(t, 1.0, root.visits)
		require.Equal(t, Win, mine.rewards)
		require.Equal(t, 1.0, mine.visits)
		require.Equal(t, Loss, theirs.rewards, "Opponent moves are scored from the opponent's side")
		require.Equal(t, 1.0, theirs.visits)
	})

	t.Run("draws leave rewards untouched", func(t *testing.T) {
		root := newRoot(0)
		child := newNode(root, challenge(0, true), 0)

		backup(child, 0, Draw)

		require.Equal(t, 0.0, child.rewards)
		require.Equal(t, 1.0, child.visits)
	})

	t.Run("returns the parent", func(t *testing.T) {
		root := newRoot(0)
		child := newNode(root, challenge(0, true), 0)

		require.Equal(t, root, child.backup(0, Win))
		require.Nil(t, root.backup(0, Win))
	})
}

func TestTraverse(t *testing.T) {
	t.Run("follows expanded edges", func(t *testing.T) {
		root := newRoot(0)
		a := newNode(root, challenge(0, true), 1)
		root.children[a.edge] = a
		b := newNode(a, challenge(1, false), 2)
		a.children[b.edge] = b

		require.Equal(t, b, traverse(root, []game.Decision{a.edge, b.edge}))
		require.Equal(t, root, traverse(root, nil))
	})

	t.Run("gives up on an unexpanded edge", func(t *testing.T) {
		root := newRoot(0)

		require.Nil(t, traverse(root, []game.Decision{challenge(0, true)}))
		require.Nil(t, traverse(nil, nil))
	})
}

func TestNodePrune(t *testing.T) {
	t.Run("drops edges that are no longer legal", func(t *testing.T) {
		root := newRoot(0)
		for i, accept := range []bool{false, true} {
			d := challenge(0, accept)
			root.children[d] = newNode(root, d, 0)
			root.children[d].visits = float64(10 * (i + 1))
			root.order = append(root.order, d)
		}
		root.visits = 30

		root.prune([]game.Decision{challenge(0, false)})

		require.Equal(t, []game.Decision{challenge(0, false)}, root.order)
		require.Len(t, root.children, 1)
		require.Equal(t, 10.0, root.visits)
	})
}

func TestBestEdge(t *testing.T) {
	t.Run("counts only the given edges over every worker", func(t *testing.T) {
		m := NewMCTS(WithEpisodes(1), WithSeed(1))
		m.roots = []*node{newRoot(0), newRoot(0)}
		visits := map[game.Decision][]float64{
			challenge(0, false): {3, 4},
			challenge(0, true):  {5, 1},
			challenge(1, true):  {50, 50}, // Stale edge
		}
		for d, perRoot := range visits {
			for i, root := range m.roots {
				root.children[d] = newNode(root, d, 0)
				root.children[d].visits = perRoot[i]
				root.order = append(root.order, d)
			}
		}

		edge, ok := m.bestEdge([]game.Decision{challenge(0, false), challenge(0, true)})

		require.True(t, ok)
		require.Equal(t, challenge(0, false), edge)
	})

	t.Run("reports no edge before any visit", func(t *testing.T) {
		m := NewMCTS(WithEpisodes(1), WithSeed(1))
		m.roots = []*node{newRoot(0)}

		_, ok := m.bestEdge([]game.Decision{challenge(0, false)})

		require.False(t, ok)
	})
}
