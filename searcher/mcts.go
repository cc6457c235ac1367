package searcher

import (
	"context"
	"math"

	"scotlandyard/game"

	"github.com/rs/zerolog/log"
)

// MCTS grows a search tree with UCB1 selection and scores each expansion
// with a short random continuation judged by the position scorer.
type MCTS struct {
	settings
}

func NewMCTS(options ...Option) *MCTS {
	return &MCTS{settings: newSettings(options)}
}

func (m *MCTS) Choose(ctx context.Context, state *game.State) (game.Move, error) {
	if len(state.AvailableMoves()) == 0 {
		return nil, ErrNoMoves
	}

	m.metrics.Start("mcts")
	t, err := m.buildTree(ctx, state)
	if err != nil {
		return nil, err
	}
	return m.pick(t), nil
}

func (m *MCTS) buildTree(ctx context.Context, state *game.State) (*tree, error) {
	t := newTree(state)
	evaderRoot := state.IsEvaderTurn()

	for i := 0; i < m.iterations; i++ {
		if ctx.Err() != nil {
			log.Warn().Int("iterations", i).Msg("mcts interrupted")
			m.metrics.SetFallback(true)
			break
		}
		if err := m.simulate(t, evaderRoot); err != nil {
			return nil, err
		}
		m.metrics.AddIteration()
	}
	return t, nil
}

func (m *MCTS) simulate(t *tree, evaderRoot bool) error {
	tail, err := t.descend(m.exploration)
	if err != nil {
		return err
	}
	m.metrics.AddNode()
	outcome := m.rollout(t.nodes[tail].state, evaderRoot)
	t.backpropagate(tail, outcome)
	return nil
}

// rollout scores a freshly reached position for the side to move at the root.
// A decided game is a win or a loss outright. Otherwise the position is played
// on randomly for a few plies and counts as a win when the score moved far
// enough in the root side's favour.
func (m *MCTS) rollout(state *game.State, evaderRoot bool) float64 {
	if state.IsOver() {
		m.metrics.AddTerminal()
		if state.MrXWon() == evaderRoot {
			return WIN
		}
		return LOSS
	}

	before := m.scorer.Score(state)
	after := m.scorer.Score(playout(m.rng, state, m.lookAhead))
	delta := after - before

	if evaderRoot && delta >= m.threshold {
		return WIN
	}
	if !evaderRoot && delta <= -m.threshold {
		return WIN
	}
	return LOSS
}

// pick returns the root child with the most wins, ignoring moves whose
// immediate score jump looks like noise for the mover: too large an
// improvement for Mr X, or any worsening for the detectives.
func (m *MCTS) pick(t *tree) game.Move {
	r := t.root()
	initial := m.scorer.Score(r.state)

	best := -1
	bestWins := math.Inf(-1)
	for _, i := range r.children {
		child := &t.nodes[i]
		jump := m.scorer.Score(child.state) - initial
		if child.move.Commenced().IsMrX() && jump > m.antiNoiseEvader {
			continue
		}
		if child.move.Commenced().IsDetective() && jump > m.antiNoiseSeeker {
			continue
		}
		if child.wins > bestWins {
			best = i
			bestWins = child.wins
		}
	}

	if best < 0 {
		log.Debug().Msg("every mcts candidate was filtered, choosing among all")
		for _, i := range r.children {
			if child := &t.nodes[i]; child.wins > bestWins {
				best = i
				bestWins = child.wins
			}
		}
	}

	if best < 0 {
		// No iterations ran
		return r.unexplored[0]
	}

	chosen := &t.nodes[best]
	log.Info().Msgf("mcts picked %s with %.0f wins in %d visits", chosen.move, chosen.wins, chosen.visits)
	return chosen.move
}
