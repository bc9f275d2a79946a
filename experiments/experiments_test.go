package experiments

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("baseline plays every game and stores records", func(t *testing.T) {
		root := t.TempDir()

		results, err := Run(Baseline, Settings{Games: 4, Seed: 1, OutputDir: root})

		require.NoError(t, err)
		require.Len(t, results, 1)
		r := results[0]
		require.Equal(t, 4, r.Games)
		require.Equal(t, r.Games, r.Wins1+r.Wins2+r.Draws)
		require.Equal(t, "heuristic", r.Agent1.Kind)
		require.Positive(t, r.AvgTurns)

		runs, err := os.ReadDir(filepath.Join(root, Baseline))
		require.NoError(t, err)
		require.Len(t, runs, 1)
		for _, file := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
			require.FileExists(t, filepath.Join(root, Baseline, runs[0].Name(), file))
		}
	})

	t.Run("search experiment with a small budget", func(t *testing.T) {
		results, err := Run(Search, Settings{Games: 2, Seed: 1, Episodes: 30, Goroutines: 2, Cutoff: 30})

		require.NoError(t, err)
		require.Equal(t, 2, results[0].Games)
		require.Equal(t, "search", results[0].Agent1.Kind)
	})

	t.Run("rejects an unknown experiment", func(t *testing.T) {
		_, err := Run("tournament", Settings{Games: 1})

		require.Error(t, err)
	})
}
