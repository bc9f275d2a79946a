package experiments

import (
	"coup/engine"
	"coup/experiments/metrics"
	"coup/game"
	"coup/player"
	"coup/searcher"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	Baseline = "baseline" // heuristic against random
	Search   = "search"   // search against heuristic
	SelfPlay = "selfplay" // search against search with a cutoff evaluation
)

// Settings shared by every agent of an experiment.
type Settings struct {
	Games      int // Per matchup
	Seed       uint64
	Episodes   int
	Duration   time.Duration
	Goroutines int
	Cutoff     int
	OutputDir  string // Empty skips the CSV records
}

// Result aggregates the games of one matchup.
type Result struct {
	Agent1   metrics.AgentConfig
	Agent2   metrics.AgentConfig
	Games    int
	Wins1    int
	Wins2    int
	Draws    int
	AvgTurns float64
}

func Run(name string, settings Settings) ([]Result, error) {
	search := metrics.AgentConfig{
		Kind:       "search",
		Goroutines: settings.Goroutines,
		Duration:   settings.Duration,
		Episodes:   settings.Episodes,
		Cutoff:     settings.Cutoff,
	}

	var configs []metrics.AgentConfig
	switch name {
	case Baseline:
		configs = []metrics.AgentConfig{{ID: 1, Kind: "heuristic"}, {ID: 2, Kind: "random"}}
	case Search:
		search.ID = 1
		configs = []metrics.AgentConfig{search, {ID: 2, Kind: "heuristic"}}
	case SelfPlay:
		evaluated := search
		search.ID, evaluated.ID, evaluated.Evaluate = 1, 2, true
		configs = []metrics.AgentConfig{search, evaluated}
	default:
		return nil, fmt.Errorf("unknown experiment %q", name)
	}

	// Each experiment is a single matchup of its two agents
	return runExperiment(name, settings, configs, [][]metrics.AgentConfig{configs})
}

func runExperiment(name string, settings Settings, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) ([]Result, error) {
	var results []Result
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	seed := settings.Seed

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1, config2 := matchup[0], matchup[1]
		result := Result{Agent1: config1, Agent2: config2}
		totalTurns := 0

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < settings.Games; i++ {
			// Alternate seats so neither agent always moves first
			seats := []metrics.AgentConfig{config1, config2}
			if i%2 == 1 {
				seats[0], seats[1] = seats[1], seats[0]
			}
			seed++
			gameMetric, moveMetrics, err := runGame(seats, settings, seed)
			if err != nil {
				return results, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}

			result.Games++
			totalTurns += gameMetric.TotalTurns
			switch gameMetric.Winner {
			case seatName(config1):
				result.Wins1++
			case seatName(config2):
				result.Wins2++
			default:
				result.Draws++
			}

			gameRecords = append(gameRecords, metrics.GameRecord{
				Matchup:    mi + 1,
				Agent1:     seats[0].ID,
				Agent2:     seats[1].ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Agent:      seats[mm.Player].ID,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, gameMetric.Winner)
		}
		if result.Games > 0 {
			result.AvgTurns = float64(totalTurns) / float64(result.Games)
		}
		results = append(results, result)
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	if settings.OutputDir == "" {
		return results, nil
	}
	return results, store(name, settings.OutputDir, configs, gameRecords, moveRecords)
}

// store writes the experiment's configuration and records as CSV files.
func store(name, root string, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return fmt.Errorf("failed to store game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return fmt.Errorf("failed to store move records: %w", err)
	}
	log.Info().Msgf("stored %s experiment in %s", name, writer.Dir())
	return nil
}

// runGame plays one game between the seated agents.
func runGame(seats []metrics.AgentConfig, settings Settings, seed uint64) (metrics.GameMetric, []metrics.MoveMetric, error) {
	names := make([]string, len(seats))
	providers := make([]game.DecisionProvider, len(seats))
	for i, config := range seats {
		names[i] = seatName(config)
		providers[i] = createProvider(config, seed+uint64(i+1)*7919)
	}
	e, err := engine.LocalEngine(game.Config{Players: names, Seed: seed}, providers)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	return e.Run()
}

func seatName(config metrics.AgentConfig) string {
	return fmt.Sprintf("%s-%d", config.Kind, config.ID)
}

func createProvider(config metrics.AgentConfig, seed uint64) game.DecisionProvider {
	switch config.Kind {
	case "heuristic":
		return player.NewHeuristic(seed)
	case "random":
		return player.NewRandom(seed)
	default:
		return createMCTS(config, seed)
	}
}

func createMCTS(config metrics.AgentConfig, seed uint64) *searcher.MCTS {
	options := []searcher.Option{searcher.WithSeed(seed), searcher.WithMetrics()}

	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	if config.Evaluate {
		options = append(options, searcher.WithEvaluationFn(game.EvaluateInfluence))
	}
	return searcher.NewMCTS(options...)
}
