package engine

import "coup/experiments/metrics"

// Engine plays one game to the end.
type Engine interface {
	// Run plays turns till there's a winner or meta.MAX_TURNS turns were played
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

// reporter is implemented by providers that measure their own searches.
type reporter interface {
	Metrics() []metrics.SearchMetric
}
