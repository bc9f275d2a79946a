package main

import (
	"coup/experiments"
	"coup/meta"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds the experiment runner configuration.
type Config struct {
	Experiment string        `env:"COUP_EXPERIMENT"  envDefault:"baseline"`
	Games      int           `env:"COUP_GAMES"       envDefault:"10"`
	Seed       uint64        `env:"COUP_SEED"        envDefault:"1"`
	Episodes   int           `env:"COUP_EPISODES"`
	Duration   time.Duration `env:"COUP_DURATION"`
	Goroutines int           `env:"COUP_GOROUTINES"`
	Cutoff     int           `env:"COUP_CUTOFF"`
	LogLevel   string        `env:"COUP_LOG_LEVEL"   envDefault:"info"`
	OutputDir  string        `env:"COUP_OUTPUT_DIR"`
}

// ParseConfig reads the environment, then lets flags override it.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.Experiment, "experiment", cfg.Experiment, "baseline, search or selfplay")
	fs.IntVar(&cfg.Games, "games", cfg.Games, "games per matchup")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "seed of the first game")
	fs.IntVar(&cfg.Episodes, "episodes", cfg.Episodes, "search episodes per decision")
	fs.DurationVar(&cfg.Duration, "duration", cfg.Duration, "search time per decision")
	fs.IntVar(&cfg.Goroutines, "goroutines", cfg.Goroutines, "search workers")
	fs.IntVar(&cfg.Cutoff, "cutoff", cfg.Cutoff, "rollout depth cutoff")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "zerolog level")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "directory for CSV records, empty to skip")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Search budget falls back to the defaults
	if cfg.Episodes <= 0 && cfg.Duration <= 0 {
		cfg.Episodes = meta.EPISODES
	}
	if cfg.Goroutines <= 0 {
		cfg.Goroutines = meta.GO_ROUTINES
	}
	if cfg.Cutoff <= 0 {
		cfg.Cutoff = meta.WITH_CUTOFF
	}
	if cfg.Games <= 0 {
		return Config{}, fmt.Errorf("games must be positive, got %d", cfg.Games)
	}
	return cfg, nil
}

func main() {
	_ = godotenv.Load()

	cfg, err := ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	results, err := experiments.Run(cfg.Experiment, experiments.Settings{
		Games:      cfg.Games,
		Seed:       cfg.Seed,
		Episodes:   cfg.Episodes,
		Duration:   cfg.Duration,
		Goroutines: cfg.Goroutines,
		Cutoff:     cfg.Cutoff,
		OutputDir:  cfg.OutputDir,
	})
	if err != nil {
		log.Fatal().Err(err).Msgf("%s experiment failed", cfg.Experiment)
	}

	printResults(cfg.Experiment, results)
}

func printResults(name string, results []experiments.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("%s experiment", name)
	t.AppendHeader(table.Row{"Agent 1", "Agent 2", "Games", "Wins 1", "Wins 2", "Draws", "Win rate 1", "Avg turns"})
	for _, r := range results {
		rate := 0.0
		if r.Games > 0 {
			rate = float64(r.Wins1) / float64(r.Games)
		}
		t.AppendRow(table.Row{
			fmt.Sprintf("%s-%d", r.Agent1.Kind, r.Agent1.ID),
			fmt.Sprintf("%s-%d", r.Agent2.Kind, r.Agent2.ID),
			r.Games, r.Wins1, r.Wins2, r.Draws,
			fmt.Sprintf("%.1f%%", 100*rate),
			fmt.Sprintf("%.1f", r.AvgTurns),
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.Render()
}
