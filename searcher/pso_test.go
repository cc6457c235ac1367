package searcher

import (
	"context"
	"sync"
	"testing"

	"scotlandyard/game"
	"scotlandyard/game/gametest"

	"github.com/stretchr/testify/require"
)

func TestSwarm(t *testing.T) {
	// Red and Green sit either side of Mr X, so the swarm starts on him.
	state := func(t *testing.T) *game.State {
		return newState(t, gametest.Line(10), gametest.Rounds(5), 5, []int{2, 8},
			game.WithLog(game.Reveal(game.Taxi, 5)),
			game.WithRemaining(game.Red, game.Green),
		)
	}

	t.Run("Swarm best loss never increases", func(t *testing.T) {
		s := NewSwarm(WithSeed(7), WithEpochs(300))

		_, err := s.Choose(context.Background(), newState(t, gametest.Line(10), gametest.Rounds(5), 9, []int{1, 3},
			game.WithLog(game.Reveal(game.Taxi, 9)),
			game.WithRemaining(game.Red, game.Green),
		))
		require.NoError(t, err)

		trace := s.Trace()
		require.Len(t, trace, 300)
		for i := 1; i < len(trace); i++ {
			require.LessOrEqual(t, trace[i], trace[i-1], "epoch %d", i)
		}
	})

	t.Run("Moves a detective towards Mr X", func(t *testing.T) {
		s := NewSwarm(WithSeed(7), WithEpochs(100))

		move, err := s.Choose(context.Background(), state(t))
		require.NoError(t, err)
		require.Equal(t, taxi(game.Red, 2, 3), move)
		require.Equal(t, 5, s.node)
	})

	t.Run("Runs concurrent searches independently", func(t *testing.T) {
		s := NewSwarm(WithSeed(7), WithEpochs(100))
		board := state(t)

		var wg sync.WaitGroup
		moves := make([]game.Move, 4)
		errs := make([]error, 4)
		for i := range moves {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				moves[i], errs[i] = s.Choose(context.Background(), board)
			}()
		}
		wg.Wait()

		for i := range moves {
			require.NoError(t, errs[i])
			require.Equal(t, taxi(game.Red, 2, 3), moves[i])
		}
		require.Len(t, s.Trace(), 100)
	})

	t.Run("Refuses to move Mr X", func(t *testing.T) {
		_, err := NewSwarm().Choose(context.Background(), newState(t, gametest.Line(10), gametest.Rounds(5), 5, []int{2}))
		require.ErrorIs(t, err, ErrNotSeekerTurn)
	})

	t.Run("Stops early when interrupted", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		s := NewSwarm(WithSeed(7))

		move, err := s.Choose(ctx, state(t))
		require.NoError(t, err)
		require.NotNil(t, move)
		require.Empty(t, s.Trace())
	})
}
