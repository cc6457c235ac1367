package searcher

import (
	"context"
	"testing"

	"scotlandyard/game"

	"github.com/stretchr/testify/require"
)

var taxiOnly = game.NewTickets(5, 0, 0, 0, 0)

// newState places Mr X and the detectives, in Red, Green, ... order, on g.
func newState(t *testing.T, g *game.Graph, rounds []bool, mrX int, detectives []int, options ...game.StateOption) *game.State {
	t.Helper()
	pieces := game.Detectives()
	players := make([]game.Player, len(detectives))
	for i, at := range detectives {
		players[i] = game.NewPlayer(pieces[i], game.DetectiveTickets(), at)
	}
	state, err := game.NewState(game.NewSetup(g, rounds), game.NewPlayer(game.MrX, taxiOnly, mrX), players, options...)
	require.NoError(t, err)
	return state
}

func taxi(p game.Piece, from, to int) game.Move {
	return game.SingleMove{Piece: p, Source: from, Ticket: game.Taxi, Destination: to}
}

type fixedSearcher struct {
	move  game.Move
	calls int
}

func (f *fixedSearcher) Choose(ctx context.Context, state *game.State) (game.Move, error) {
	f.calls++
	return f.move, nil
}
