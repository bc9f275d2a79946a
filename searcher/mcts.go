package searcher

import (
	"context"
	"coup/experiments/metrics"
	"coup/game"
	"coup/meta"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type Option func(mcts *MCTS)

// MCTS is a determinized UCT search seated as a decision provider. Every episode
// samples a world consistent with the seat's view, so concealed cards of other
// players never reach the tree. Workers search independent trees and only their
// root visit counts are merged.
type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	evaluate   game.Evaluate
	rng        *rand.Rand
	metrics    metrics.Collector

	mu       sync.Mutex
	roots    []*node         // One tree per worker
	lineage  []game.Decision // Decisions observed since the last search
	searches []metrics.SearchMetric
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: meta.GO_ROUTINES,
		cutoff:     meta.WITH_CUTOFF,
		rng:        rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Search returns the decision to take at the viewer's prompt. It returns right away
// when the game is over or only one decision is legal, otherwise it runs until the
// episode or time budget is spent or ctx is done, and picks the most visited edge.
// A search stopped before any episode completed answers with a random legal decision.
func (m *MCTS) Search(ctx context.Context, view game.View) game.Decision {
	m.mu.Lock()
	defer m.mu.Unlock()

	legal := view.LegalDecisions()
	if view.Over || len(legal) == 0 {
		return game.Decision{}
	}
	if len(legal) == 1 {
		return legal[0]
	}
	edges, concrete := group(legal, view.Self)

	m.findRoots(view, edges)
	m.metrics.Start(legal[0].Kind, len(edges), m.goroutines, m.cutoff, m.evaluate)
	if m.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.duration)
		defer cancel()
	}
	m.run(ctx, view)
	metric := m.metrics.Complete()
	m.searches = append(m.searches, metric)

	edge, ok := m.bestEdge(edges)
	if !ok {
		d := legal[m.rng.Intn(len(legal))]
		log.Debug().Msgf("player %d chose %s at random, no episode completed", view.Self, d)
		return d
	}
	log.Debug().Msgf("player %d chose %s after %d episodes", view.Self, edge, metric.Episodes)
	options := concrete[edge]
	return options[m.rng.Intn(len(options))]
}

// run spreads the episodes over the workers. Each worker owns a generator seeded
// from the policy's own, so a seeded search replays exactly.
func (m *MCTS) run(ctx context.Context, view game.View) {
	quota := make([]int, len(m.roots))
	for i := range quota {
		quota[i] = m.episodes / len(quota)
		if i < m.episodes%len(quota) {
			quota[i]++
		}
	}

	var group errgroup.Group
	for i, root := range m.roots {
		root := root
		rng := rand.New(rand.NewSource(m.rng.Uint64()))
		episodes := quota[i]
		group.Go(func() error {
			for done := 0; m.episodes <= 0 || done < episodes; done++ {
				if ctx.Err() != nil {
					return nil
				}
				m.simulate(root, view, rng)
				m.metrics.AddEpisode()
			}
			return nil
		})
	}
	_ = group.Wait()
}

// findRoots walks every worker tree down the observed lineage. A tree whose node
// does not match the current public state starts over. Reused roots drop the
// children the seat cannot take now, such as keep choices of sampled draws.
func (m *MCTS) findRoots(view game.View, edges []game.Decision) {
	hash := view.Hash()
	reset := len(m.roots) != m.goroutines
	if !reset {
		for i, root := range m.roots {
			next := traverse(root, m.lineage)
			if next == nil || next.hash != hash {
				reset = true
				break
			}
			m.roots[i] = next.detach()
			m.roots[i].prune(edges)
		}
	}
	if reset {
		m.roots = make([]*node, m.goroutines)
		for i := range m.roots {
			m.roots[i] = newRoot(hash)
		}
	}
	m.lineage = m.lineage[:0]
	m.metrics.SetTreeReset(reset)
}

func traverse(root *node, path []game.Decision) *node {
	if root == nil {
		return nil
	}
	n := root
	for _, edge := range path {
		child, ok := n.child(edge)
		if !ok { // Node has not expanded this decision
			return nil
		}
		n = child
	}
	return n
}

// bestEdge sums root visits of the legal edges over all workers, ties broken
// uniformly at random. It reports false when no legal edge was visited.
func (m *MCTS) bestEdge(edges []game.Decision) (game.Decision, bool) {
	var best []game.Decision
	most := 0.0
	for _, edge := range edges {
		visits := 0.0
		for _, root := range m.roots {
			if child, ok := root.child(edge); ok {
				visits += child.visits
			}
		}
		switch {
		case visits == 0:
			continue
		case visits > most:
			best, most = []game.Decision{edge}, visits
		case visits == most:
			best = append(best, edge)
		}
	}
	if len(best) == 0 {
		return game.Decision{}, false
	}
	return best[m.rng.Intn(len(best))], true
}

// simulate runs one episode on a fresh determinization of view.
func (m *MCTS) simulate(root *node, view game.View, rng *rand.Rand) {
	world := view.Determinize(rng)
	leaf := selectThenExpand(root, world, view.Self, rng)
	player, score := rollout(world, view.Self, m.cutoff, m.evaluate, rng, m.metrics)
	backup(leaf, player, score)
}

func selectThenExpand(root *node, world *game.Game, viewer game.PlayerID, rng *rand.Rand) *node {
	n := root
	for {
		legal := world.LegalDecisions()
		if len(legal) == 0 { // Terminal node
			return n
		}
		child, d, expanded := n.selectOrExpand(legal, viewer, rng)
		mustApply(world, d)
		if expanded {
			child.hash = world.Hash()
			return child
		}
		n = child
	}
}

func rollout(world *game.Game, viewer game.PlayerID, cutoff int, evaluate game.Evaluate, rng *rand.Rand, metrics metrics.Collector) (game.PlayerID, float64) {
	depth := 0
	legal := world.LegalDecisions()
	// Rollout till game over or for cutoff number of decisions
	for len(legal) > 0 && depth < cutoff {
		mustApply(world, legal[rng.Intn(len(legal))]) // Random rollout policy
		legal = world.LegalDecisions()
		depth++
	}

	if winner, ok := world.Winner(); ok { // Game over before cutoff
		metrics.AddFullPlayout()
		return winner, Win
	}
	if evaluate == nil {
		return viewer, Draw
	}
	// At cutoff, score the world from the viewer's perspective
	return viewer, evaluate(world, viewer)
}

func backup(leaf *node, player game.PlayerID, score float64) {
	n := leaf
	for n != nil {
		n = n.backup(player, score)
	}
}

func mustApply(world *game.Game, d game.Decision) {
	if err := world.Apply(d); err != nil {
		panic(err)
	}
}

// Metrics drains the metrics of the searches run since the last call.
func (m *MCTS) Metrics() []metrics.SearchMetric {
	m.mu.Lock()
	defer m.mu.Unlock()

	searches := m.searches
	m.searches = nil
	return searches
}
