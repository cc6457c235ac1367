package game_test

import (
	"strings"
	"testing"

	"scotlandyard/game"
	"scotlandyard/game/gametest"

	"github.com/stretchr/testify/require"
)

func TestGraph(t *testing.T) {
	t.Run("Parallel edges merge their transports", func(t *testing.T) {
		g := gametest.Small()

		require.Equal(t, []game.Transport{game.TaxiRoute, game.BusRoute}, g.Transports(1, 2))
		require.Equal(t, []game.Transport{game.TaxiRoute, game.BusRoute}, g.Transports(2, 1))
		require.Nil(t, g.Transports(1, 6))
	})

	t.Run("Neighbours are sorted", func(t *testing.T) {
		g := gametest.Small()

		var got []int
		for _, e := range g.Neighbours(5) {
			got = append(got, e.To)
		}
		require.Equal(t, []int{2, 3, 4, 6}, got)
		require.Equal(t, []int{1, 2, 3, 4, 5, 6}, g.Nodes())
	})

	t.Run("Plain view keeps every edge", func(t *testing.T) {
		g := gametest.Small()
		plain := g.Plain()

		require.Equal(t, 6, plain.Nodes().Len())
		require.Equal(t, 7, plain.Edges().Len(), "The two 1-2 edges collapse into one")
		require.True(t, plain.HasEdgeBetween(4, 5))
	})
}

func TestReadGraph(t *testing.T) {
	t.Run("Reading the classic format", func(t *testing.T) {
		input := `3 3
1
2
3
1 2 Taxi
1 2 Bus
2 3 Boat
`
		g, err := game.ReadGraph(strings.NewReader(input))
		require.NoError(t, err)
		require.Equal(t, []int{1, 2, 3}, g.Nodes())
		require.Equal(t, []game.Transport{game.TaxiRoute, game.BusRoute}, g.Transports(1, 2))
		require.Equal(t, []game.Transport{game.Ferry}, g.Transports(3, 2))
		require.Equal(t, game.Secret, game.Ferry.Ticket())
	})

	t.Run("Malformed input", func(t *testing.T) {
		cases := map[string]string{
			"empty":             "",
			"bad header":        "3\n",
			"unknown transport": "2 1\n1\n2\n1 2 Rocket\n",
			"unknown node":      "2 1\n1\n2\n1 3 Taxi\n",
			"missing edges":     "2 2\n1\n2\n1 2 Taxi\n",
		}
		for name, input := range cases {
			_, err := game.ReadGraph(strings.NewReader(input))
			require.ErrorIs(t, err, game.ErrMalformedGraph, name)
		}
	})
}
