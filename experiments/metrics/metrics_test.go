package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("Counts concurrent updates", func(t *testing.T) {
		c := NewCollector()
		c.Start("minimax")

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					c.AddNode()
				}
				c.AddIteration()
			}()
		}
		wg.Wait()
		c.AddTerminal()
		c.SetFallback(true)

		m := c.Complete()
		require.Equal(t, "minimax", m.Strategy)
		require.Equal(t, 800, m.Nodes)
		require.Equal(t, 8, m.Iterations)
		require.Equal(t, 1, m.Terminals)
		require.True(t, m.Fallback)
	})

	t.Run("Start resets the counters", func(t *testing.T) {
		c := NewCollector()
		c.Start("mcts")
		c.AddNode()
		c.SetFallback(true)
		c.Start("mcts")

		m := c.Complete()
		require.Zero(t, m.Nodes)
		require.False(t, m.Fallback)
	})

	t.Run("Dummy collector reports nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start("pso")
		c.AddNode()
		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "matchups")
	require.NoError(t, err)

	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{{ID: 1, Strategy: "minimax", Depth: 2}}))
	require.NoError(t, w.WriteGameRecords([]GameRecord{{
		Evader: 1,
		Seeker: 2,
		GameMetric: GameMetric{
			ID:          "g1",
			Winner:      "MrX",
			StartTime:   start,
			EndTime:     start.Add(time.Second),
			Duration:    time.Second,
			TotalMoves:  12,
			Fingerprint: "00000000deadbeef",
		},
	}}))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{{
		Game: "g1",
		MoveMetric: MoveMetric{
			Step:         1,
			Round:        1,
			Piece:        "MrX",
			Move:         "MrX 1 Taxi 2",
			SearchMetric: SearchMetric{Strategy: "minimax", Nodes: 5},
		},
	}}))

	t.Run("Writes agent configs", func(t *testing.T) {
		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"1", "minimax", "2", "0", "0", "0", "0"}, rows[1])
	})

	t.Run("Writes game records", func(t *testing.T) {
		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"g1", "1", "2", "MrX", "2024-01-02T03:04:05Z", "2024-01-02T03:04:06Z", "1s", "12", "00000000deadbeef"}, rows[1])
	})

	t.Run("Writes move records", func(t *testing.T) {
		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, "game", rows[0][0])
		require.Equal(t, []string{"g1", "1", "1", "MrX", "MrX 1 Taxi 2", "minimax", "0s", "5", "0", "0", "false"}, rows[1])
	})
}
