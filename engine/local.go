package engine

import (
	"coup/experiments/metrics"
	"coup/game"
	"coup/meta"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Local runs a game in-process between the seated providers.
type Local struct {
	Game      *game.Game
	Providers []game.DecisionProvider
	maxTurns  int
}

func LocalEngine(config game.Config, providers []game.DecisionProvider) (*Local, error) {
	if len(config.Players) != len(providers) {
		return nil, fmt.Errorf("%d players but %d providers", len(config.Players), len(providers))
	}
	g, err := game.NewGame(config, providers)
	if err != nil {
		return nil, err
	}
	return &Local{
		Game:      g,
		Providers: providers,
		maxTurns:  meta.MAX_TURNS,
	}, nil
}

// Run executes the entire game loop until a winner is found.
func (e *Local) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	g := e.Game
	gameMetric := metrics.GameMetric{
		ID:             g.ID,
		StartingPlayer: g.CurrentPlayer(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Str("game", g.ID).Msgf("player %d is starting", g.CurrentPlayer())

	for !g.IsOver() && g.Turn() < e.maxTurns {
		turn := g.Turn()
		outcome, err := g.PlayTurn()
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("turn %d: %w", turn, err)
		}
		log.Debug().Str("game", g.ID).Msgf("turn %d: %s succeeded=%t challenged=%t blocked=%t",
			turn, outcome.Action, outcome.Succeeded, outcome.Challenged, outcome.Blocked)

		for seat, provider := range e.Providers {
			r, ok := provider.(reporter)
			if !ok {
				continue
			}
			for _, search := range r.Metrics() {
				moveMetrics = append(moveMetrics, metrics.MoveMetric{
					Game:         g.ID,
					Step:         turn,
					Player:       game.PlayerID(seat),
					SearchMetric: search,
				})
			}
		}
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalTurns = g.Turn()
	gameMetric.Winner = g.WinnerName()

	if gameMetric.Winner != "" {
		log.Info().Str("game", g.ID).Msgf("game ended after %d turns, winner: %s", g.Turn(), gameMetric.Winner)
	} else {
		log.Info().Str("game", g.ID).Msgf("stopped after %d turns (no winner yet)", g.Turn())
	}
	return gameMetric, moveMetrics, nil
}
