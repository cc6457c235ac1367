package agent

import (
	"context"
	"fmt"
	"math"
	"slices"

	"scotlandyard/experiments/metrics"
	"scotlandyard/game"
	"scotlandyard/searcher"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

type Agent interface {
	// FindMove returns a move and the metrics of the search behind it, if collected
	FindMove(ctx context.Context, board game.Board) (game.Move, metrics.SearchMetric, error)
}

// Selector answers a board with a move. It skips the search when there is
// only one move, or when the detectives have not yet seen Mr X.
type Selector struct {
	strategy Strategy
	rng      *rand.Rand
	metrics  metrics.Collector
}

type Option func(s *Selector)

func WithRand(rng *rand.Rand) Option {
	return func(s *Selector) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithMetrics reads search metrics from the collector the strategy reports to.
func WithMetrics(collector metrics.Collector) Option {
	return func(s *Selector) {
		if collector != nil {
			s.metrics = collector
		}
	}
}

func NewSelector(strategy Strategy, options ...Option) *Selector {
	s := &Selector{
		strategy: strategy,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	if s.rng == nil {
		s.rng = searcher.NewRand(frand.Uint64n(math.MaxUint64))
	}
	return s
}

// PickMove returns the move to play on board.
func (s *Selector) PickMove(ctx context.Context, board game.Board) (game.Move, error) {
	move, _, err := s.FindMove(ctx, board)
	return move, err
}

func (s *Selector) FindMove(ctx context.Context, board game.Board) (game.Move, metrics.SearchMetric, error) {
	moves := board.AvailableMoves()
	if len(moves) == 0 {
		return nil, metrics.SearchMetric{}, searcher.ErrNoMoves
	}
	logger := log.With().Str("search", uuid.NewString()).Logger()

	if len(moves) == 1 {
		logger.Debug().Str("move", moves[0].String()).Msg("only one move available")
		return moves[0], metrics.SearchMetric{Strategy: "single"}, nil
	}

	state, err := game.FromBoard(board)
	if err != nil {
		return nil, metrics.SearchMetric{}, fmt.Errorf("failed to read board: %w", err)
	}

	if _, ok := state.EvaderLocation(); !ok {
		move := moves[s.rng.Intn(len(moves))]
		logger.Debug().Str("move", move.String()).Msg("Mr X not seen yet, moving at random")
		return move, metrics.SearchMetric{Strategy: "random"}, nil
	}

	var move game.Move
	if state.IsEvaderTurn() {
		move, err = s.strategy.SelectForEvader(ctx, state)
	} else {
		move, err = s.strategy.SelectForSeeker(ctx, state)
	}
	metric := s.metrics.Complete()

	if err != nil || !slices.Contains(moves, move) {
		logger.Warn().Err(err).Msgf("strategy returned an invalid move %v, playing %s instead", move, moves[0])
		metric.Fallback = true
		return moves[0], metric, nil
	}

	logger.Info().
		Str("piece", move.Commenced().String()).
		Str("move", move.String()).
		Dur("took", metric.Duration).
		Msg("move selected")
	return move, metric, nil
}
