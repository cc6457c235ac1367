package searcher

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"scotlandyard/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Minimax scores every first-ply move with an alpha-beta search that only
// follows the statically best few children at each level. First-ply moves are
// searched in parallel.
type Minimax struct {
	settings
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{settings: newSettings(options)}
	if m.fallback == nil {
		m.fallback = NewMCTS(
			WithRand(m.rng),
			WithScorer(m.scorer),
			WithMetrics(m.metrics),
		)
	}
	return m
}

func (m *Minimax) Choose(ctx context.Context, state *game.State) (game.Move, error) {
	moves := state.AvailableMoves()
	if len(moves) == 0 {
		return nil, ErrNoMoves
	}

	m.metrics.Start("minimax")

	maximizing := state.IsEvaderTurn()
	scores := make([]float64, len(moves))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i, move := range moves {
		i, move := i, move
		g.Go(func() error {
			child, err := state.Advance(move)
			if err != nil {
				return err
			}
			score, err := m.alphaBeta(gctx, child, m.depth, math.Inf(-1), math.Inf(1))
			if err != nil {
				return err
			}
			scores[i] = score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Warn().Err(err).Str("move", moves[0].String()).Msg("minimax interrupted, playing first move")
			m.metrics.SetFallback(true)
			return moves[0], nil
		}
		return nil, fmt.Errorf("minimax: %w", err)
	}

	candidates := make([]candidate, len(moves))
	for i, move := range moves {
		candidates[i] = candidate{move: move, score: scores[i]}
		log.Debug().Str("move", move.String()).Float64("score", scores[i]).Msg("minimax candidate")
	}
	candidates = collapseDuplicates(candidates, m.tolerance)

	best := candidates[0]
	for _, c := range candidates[1:] {
		if better(maximizing, c.score, best.score) {
			best = c
		}
	}

	if maximizing {
		current := m.scorer.Score(state)
		if best.score-current < -m.margin {
			log.Warn().
				Float64("current", current).
				Float64("best", best.score).
				Msg("no good move for Mr X, handing over to fallback search")
			move, err := m.fallback.Choose(ctx, state)
			m.metrics.SetFallback(true)
			return move, err
		}
	}

	log.Info().Msgf("minimax picked %s with score %.1f out of %d candidates", best.move, best.score, len(candidates))
	return best.move, nil
}

type branch struct {
	state *game.State
	score float64
}

func (m *Minimax) alphaBeta(ctx context.Context, state *game.State, depth int, alpha, beta float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.metrics.AddNode()

	moves := state.AvailableMoves()
	if depth == 0 || len(moves) == 0 {
		return m.scorer.Score(state), nil
	}

	branches := make([]branch, len(moves))
	for i, move := range moves {
		child, err := state.Advance(move)
		if err != nil {
			return 0, err
		}
		branches[i] = branch{state: child, score: m.scorer.Score(child)}
	}

	maximizing := state.IsEvaderTurn()
	topN := m.seekerTopN
	if maximizing {
		topN = m.evaderTopN
	}
	slices.SortStableFunc(branches, func(a, b branch) int {
		switch {
		case better(maximizing, a.score, b.score):
			return -1
		case better(maximizing, b.score, a.score):
			return 1
		}
		return 0
	})
	branches = branches[:min(len(branches), topN)]

	if maximizing {
		value := math.Inf(-1)
		for _, b := range branches {
			v, err := m.alphaBeta(ctx, b.state, depth-1, alpha, beta)
			if err != nil {
				return 0, err
			}
			value = max(value, v)
			if value > beta {
				break
			}
			alpha = max(alpha, value)
		}
		return value, nil
	}

	value := math.Inf(1)
	for _, b := range branches {
		v, err := m.alphaBeta(ctx, b.state, depth-1, alpha, beta)
		if err != nil {
			return 0, err
		}
		value = min(value, v)
		if value < alpha {
			break
		}
		beta = min(beta, value)
	}
	return value, nil
}
