package config

import (
	"os"
	"path/filepath"
	"testing"

	"scotlandyard/meta"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults without a file", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		require.Equal(t, "minimax", cfg.Strategy)
		require.Equal(t, meta.DEPTH, cfg.Minimax.Depth)
		require.Equal(t, meta.EPOCHS, cfg.PSO.Epochs)
		require.Equal(t, meta.ANTI_NOISE_EVADER, cfg.MCTS.AntiNoiseEvader)
	})

	t.Run("File values override defaults", func(t *testing.T) {
		path := writeFile(t, `
strategy: pso
seed: 42
minimax:
  depth: 2
mcts:
  iterations: 100
game:
  detectives: [2, 4]
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "pso", cfg.Strategy)
		require.Equal(t, uint64(42), cfg.Seed)
		require.Equal(t, 2, cfg.Minimax.Depth)
		require.Equal(t, meta.EVADER_TOP_N, cfg.Minimax.EvaderTopN)
		require.Equal(t, 100, cfg.MCTS.Iterations)
		require.Equal(t, []int{2, 4}, cfg.Game.Detectives)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		t.Setenv("SY_STRATEGY", "flat")
		t.Setenv("SY_LOG_LEVEL", "debug")
		t.Setenv("SY_SEED", "7")

		cfg, err := Load(writeFile(t, "strategy: mcts\n"))
		require.NoError(t, err)
		require.Equal(t, "flat", cfg.Strategy)
		require.Equal(t, "debug", cfg.LogLevel)
		require.Equal(t, uint64(7), cfg.Seed)
	})

	t.Run("Rejects a bad seed", func(t *testing.T) {
		t.Setenv("SY_SEED", "seven")

		_, err := Load("")
		require.Error(t, err)
	})

	t.Run("Rejects unknown strategies", func(t *testing.T) {
		_, err := Load(writeFile(t, "strategy: alphazero\n"))
		require.ErrorIs(t, err, ErrUnknownStrategy)

		_, err = Load(writeFile(t, "evader: pso\n"))
		require.ErrorIs(t, err, ErrUnknownStrategy)

		_, err = Load(writeFile(t, "experiments:\n  matchups:\n    - evader: mcts\n      seeker: random\n"))
		require.ErrorIs(t, err, ErrUnknownStrategy)
	})

	t.Run("Rejects pso as Mr X in a matchup", func(t *testing.T) {
		cfg := Default()
		cfg.Experiments.Matchups = []Matchup{{Evader: "pso", Seeker: "minimax"}}
		require.ErrorIs(t, cfg.Validate(), ErrUnknownStrategy)

		_, err := Load(writeFile(t, "experiments:\n  matchups:\n    - evader: pso\n      seeker: mcts\n"))
		require.ErrorIs(t, err, ErrUnknownStrategy)
	})

	t.Run("Reports a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})

	t.Run("Reports invalid YAML", func(t *testing.T) {
		_, err := Load(writeFile(t, "minimax: [1, 2\n"))
		require.Error(t, err)
	})
}
