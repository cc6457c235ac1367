package searcher

import (
	"context"

	"scotlandyard/game"
	"scotlandyard/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Flat plays a fixed number of random games after every available move and
// picks the move that won most often for the side to move.
type Flat struct {
	settings
}

func NewFlat(options ...Option) *Flat {
	return &Flat{settings: newSettings(options)}
}

func (f *Flat) Choose(ctx context.Context, state *game.State) (game.Move, error) {
	moves := state.AvailableMoves()
	if len(moves) == 0 {
		return nil, ErrNoMoves
	}

	f.metrics.Start("flat")
	evader := state.IsEvaderTurn()

	best := moves[0]
	bestRate := -1.0
	for _, move := range moves {
		if ctx.Err() != nil {
			log.Warn().Msg("flat monte carlo interrupted")
			f.metrics.SetFallback(true)
			break
		}
		next, err := state.Advance(move)
		if err != nil {
			return nil, err
		}
		if rate := f.winRate(next, evader); rate > bestRate {
			best = move
			bestRate = rate
		}
	}

	log.Info().Msgf("flat monte carlo picked %s with win rate %.2f", best, bestRate)
	return best, nil
}

func (f *Flat) winRate(state *game.State, evader bool) float64 {
	wins := 0
	for i := 0; i < f.simulations; i++ {
		end := playout(f.rng, state, meta.MAX_PLAYOUT_PLIES)
		if end.IsOver() {
			f.metrics.AddTerminal()
		}
		// An unfinished playout counts for nobody
		if end.IsOver() && end.MrXWon() == evader {
			wins++
		}
		f.metrics.AddIteration()
	}
	return float64(wins) / float64(f.simulations)
}

// playout advances state with uniformly random moves for at most plies moves.
func playout(rng *rand.Rand, state *game.State, plies int) *game.State {
	for i := 0; i < plies; i++ {
		moves := state.AvailableMoves()
		if len(moves) == 0 {
			break
		}
		next, err := state.Advance(moves[rng.Intn(len(moves))])
		if err != nil {
			log.Error().Err(err).Msg("random playout hit an illegal move")
			break
		}
		state = next
	}
	return state
}
