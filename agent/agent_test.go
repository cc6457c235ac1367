package agent

import (
	"context"
	"errors"
	"testing"

	"scotlandyard/config"
	"scotlandyard/experiments/metrics"
	"scotlandyard/game"
	"scotlandyard/game/gametest"
	"scotlandyard/searcher"

	"github.com/stretchr/testify/require"
)

func lineState(t *testing.T, n, mrX, red int, options ...game.StateOption) *game.State {
	t.Helper()
	state, err := game.NewState(game.NewSetup(gametest.Line(n), gametest.Rounds(5)),
		game.NewPlayer(game.MrX, game.NewTickets(5, 0, 0, 0, 0), mrX),
		[]game.Player{game.NewPlayer(game.Red, game.DetectiveTickets(), red)},
		options...,
	)
	require.NoError(t, err)
	return state
}

type stubStrategy struct {
	evader int
	seeker int
	move   game.Move
	err    error
}

func (s *stubStrategy) SelectForEvader(ctx context.Context, state *game.State) (game.Move, error) {
	s.evader++
	return s.move, s.err
}

func (s *stubStrategy) SelectForSeeker(ctx context.Context, state *game.State) (game.Move, error) {
	s.seeker++
	return s.move, s.err
}

func TestSelector(t *testing.T) {
	ctx := context.Background()

	t.Run("Plays the only move without searching", func(t *testing.T) {
		stub := &stubStrategy{}
		board := lineState(t, 3, 1, 3)

		move, err := NewSelector(stub).PickMove(ctx, board)
		require.NoError(t, err)
		require.Equal(t, board.AvailableMoves()[0], move)
		require.Zero(t, stub.evader+stub.seeker)
	})

	t.Run("Moves at random before Mr X is seen", func(t *testing.T) {
		stub := &stubStrategy{}
		board := lineState(t, 6, 3, 5,
			game.WithLog(game.Hidden(game.Taxi)),
			game.WithRemaining(game.Red),
		)

		move, metric, err := NewSelector(stub, WithRand(searcher.NewRand(1))).FindMove(ctx, board)
		require.NoError(t, err)
		require.Contains(t, board.AvailableMoves(), move)
		require.Equal(t, "random", metric.Strategy)
		require.Zero(t, stub.evader+stub.seeker)
	})

	t.Run("Asks the strategy for Mr X's move", func(t *testing.T) {
		board := lineState(t, 6, 3, 1)
		stub := &stubStrategy{move: board.AvailableMoves()[1]}

		move, err := NewSelector(stub).PickMove(ctx, board)
		require.NoError(t, err)
		require.Equal(t, stub.move, move)
		require.Equal(t, 1, stub.evader)
		require.Zero(t, stub.seeker)
	})

	t.Run("Asks the strategy for a detective's move", func(t *testing.T) {
		board := lineState(t, 6, 3, 5,
			game.WithLog(game.Reveal(game.Taxi, 3)),
			game.WithRemaining(game.Red),
		)
		stub := &stubStrategy{move: board.AvailableMoves()[0]}

		move, err := NewSelector(stub).PickMove(ctx, board)
		require.NoError(t, err)
		require.Equal(t, stub.move, move)
		require.Equal(t, 1, stub.seeker)
		require.Zero(t, stub.evader)
	})

	t.Run("Falls back to the first move on an illegal answer", func(t *testing.T) {
		board := lineState(t, 6, 3, 1)
		stub := &stubStrategy{move: game.SingleMove{Piece: game.MrX, Source: 3, Ticket: game.Bus, Destination: 4}}

		move, metric, err := NewSelector(stub).FindMove(ctx, board)
		require.NoError(t, err)
		require.Equal(t, board.AvailableMoves()[0], move)
		require.True(t, metric.Fallback)
	})

	t.Run("Falls back to the first move on a strategy error", func(t *testing.T) {
		board := lineState(t, 6, 3, 1)
		stub := &stubStrategy{err: errors.New("boom")}

		move, err := NewSelector(stub).PickMove(ctx, board)
		require.NoError(t, err)
		require.Equal(t, board.AvailableMoves()[0], move)
	})

	t.Run("Fails on a finished game", func(t *testing.T) {
		board := lineState(t, 6, 3, 1)
		next, err := board.Advance(game.SingleMove{Piece: game.MrX, Source: 3, Ticket: game.Taxi, Destination: 2})
		require.NoError(t, err)
		over, err := next.Advance(game.SingleMove{Piece: game.Red, Source: 1, Ticket: game.Taxi, Destination: 2})
		require.NoError(t, err)
		require.True(t, over.IsOver())

		_, err = NewSelector(&stubStrategy{}).PickMove(ctx, over)
		require.ErrorIs(t, err, searcher.ErrNoMoves)
	})
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 1
	cfg.Minimax.Depth = 1
	cfg.MCTS.Iterations = 20
	cfg.PSO.Epochs = 20
	cfg.Flat.Simulations = 2

	for _, name := range config.Strategies {
		t.Run(name+" plays legal moves for both sides", func(t *testing.T) {
			collector := metrics.NewCollector()
			strategy, err := FromConfig(cfg, name, collector)
			require.NoError(t, err)
			selector := NewSelector(strategy, WithMetrics(collector))

			evaderBoard := lineState(t, 6, 3, 1)
			move, err := selector.PickMove(context.Background(), evaderBoard)
			require.NoError(t, err)
			require.Contains(t, evaderBoard.AvailableMoves(), move)

			seekerBoard := lineState(t, 6, 3, 5,
				game.WithLog(game.Reveal(game.Taxi, 3)),
				game.WithRemaining(game.Red),
			)
			move, metric, err := selector.FindMove(context.Background(), seekerBoard)
			require.NoError(t, err)
			require.Contains(t, seekerBoard.AvailableMoves(), move)
			require.False(t, metric.Fallback)
		})
	}

	for _, name := range config.Strategies {
		t.Run(name+" searches when a detective stands on the last sighting", func(t *testing.T) {
			collector := metrics.NewCollector()
			strategy, err := FromConfig(cfg, name, collector)
			require.NoError(t, err)

			board, err := game.NewState(game.NewSetup(gametest.Line(10), gametest.Rounds(5, 1)),
				game.NewPlayer(game.MrX, game.MrXTickets(), 6),
				[]game.Player{
					game.NewPlayer(game.Red, game.DetectiveTickets(), 4),
					game.NewPlayer(game.Green, game.DetectiveTickets(), 9),
				},
				game.WithLog(game.Reveal(game.Taxi, 4)),
				game.WithRemaining(game.Red, game.Green),
				game.WithEvaderMoved(true),
			)
			require.NoError(t, err)

			move, metric, err := NewSelector(strategy, WithMetrics(collector)).FindMove(context.Background(), board)
			require.NoError(t, err)
			require.Contains(t, board.AvailableMoves(), move)
			require.False(t, metric.Fallback)
			require.Equal(t, name, metric.Strategy)
		})
	}

	t.Run("Rejects unknown names", func(t *testing.T) {
		_, err := FromConfig(cfg, "alphazero", nil)
		require.ErrorIs(t, err, config.ErrUnknownStrategy)
	})

	t.Run("Rejects pso as Mr X", func(t *testing.T) {
		bad := cfg
		bad.Evader = "pso"
		_, err := FromConfig(bad, "pso", nil)
		require.ErrorIs(t, err, config.ErrUnknownStrategy)
	})

	t.Run("Rejects unknown scorers", func(t *testing.T) {
		bad := cfg
		bad.Scorer = "vibes"
		_, err := FromConfig(bad, "minimax", nil)
		require.Error(t, err)
	})
}
