package metrics

import (
	"coup/game"
	"sync/atomic"
	"time"
)

// SearchMetric describes one search behind one decision.
type SearchMetric struct {
	Prompt       game.DecisionKind // Decision point searched
	Edges        int               // Distinct decisions as the searcher sees them
	Goroutines   int
	Duration     time.Duration
	Episodes     int
	Cutoff       int
	Evaluated    bool // Cutoff playouts scored by an evaluation function
	FullPlayouts int
	IsTreeReset  bool
	Fallback     bool // No episode completed, the decision was drawn at random
}

type MoveMetric struct {
	Game   string
	Step   int           // Turn of the decision
	Player game.PlayerID // Searching player
	SearchMetric
}

type GameMetric struct {
	ID             string
	StartingPlayer game.PlayerID
	Winner         string // Seat name, empty when the turn limit was hit
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalTurns     int
}

type Collector interface {
	Start(prompt game.DecisionKind, edges, goroutines, cutoff int, evaluate game.Evaluate)
	SetTreeReset(value bool)
	AddFullPlayout()
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	search       SearchMetric // Fields fixed when the search starts
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	isTreeReset  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) SetTreeReset(value bool) {
	c.isTreeReset.Store(value)
}

// Start begins a new search and clears the counters of the previous one.
func (c *collector) Start(prompt game.DecisionKind, edges, goroutines, cutoff int, evaluate game.Evaluate) {
	c.startTime = time.Now()
	c.search = SearchMetric{
		Prompt:     prompt,
		Edges:      edges,
		Goroutines: goroutines,
		Cutoff:     cutoff,
		Evaluated:  evaluate != nil,
	}
	c.episodes.Store(0)
	c.fullPlayouts.Store(0)
}

func (c *collector) AddFullPlayout() {
	c.fullPlayouts.Add(1)
}

func (c *collector) AddEpisode() {
	c.episodes.Add(1)
}

// Complete stamps the counters onto the search started last. A search without
// any completed episode is marked as a fallback.
func (c *collector) Complete() SearchMetric {
	metric := c.search
	metric.Duration = time.Since(c.startTime)
	metric.Episodes = int(c.episodes.Load())
	metric.FullPlayouts = int(c.fullPlayouts.Load())
	metric.IsTreeReset = c.isTreeReset.Load()
	metric.Fallback = metric.Episodes == 0
	return metric
}

// discard is used when a search is not measured.
type discard struct{}

func NewDummyCollector() Collector {
	return discard{}
}

func (discard) Start(game.DecisionKind, int, int, int, game.Evaluate) {}
func (discard) SetTreeReset(bool)                                     {}
func (discard) AddFullPlayout()                                       {}
func (discard) AddEpisode()                                           {}
func (discard) Complete() SearchMetric                                { return SearchMetric{} }
