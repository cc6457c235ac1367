// Package searcher holds the move-finding engines: a parallel alpha-beta
// minimax, Monte Carlo tree search, a particle swarm heuristic for the
// detectives and flat Monte Carlo.
package searcher

import (
	"context"
	"errors"

	"scotlandyard/game"
)

var (
	ErrNoMoves       = errors.New("no available moves")
	ErrNotSeekerTurn = errors.New("particle swarm only moves detectives")
)

const WIN = 1.0
const LOSS = 0.0

// Searcher picks a move for whichever side is to move in state.
type Searcher interface {
	Choose(ctx context.Context, state *game.State) (game.Move, error)
}

// better reports whether a beats b for the side that maximizes or minimizes.
func better(maximizing bool, a, b float64) bool {
	if maximizing {
		return a > b
	}
	return a < b
}

// SearcherFunc adapts a plain function to a Searcher.
type SearcherFunc func(ctx context.Context, state *game.State) (game.Move, error)

func (f SearcherFunc) Choose(ctx context.Context, state *game.State) (game.Move, error) {
	return f(ctx, state)
}
