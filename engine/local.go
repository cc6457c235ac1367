package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scotlandyard/agent"
	"scotlandyard/experiments/metrics"
	"scotlandyard/game"
	"scotlandyard/gamemaster"
	"scotlandyard/meta"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Local alternates two agents against an in-process host: one plays Mr X,
// the other every detective.
type Local struct {
	host     gamemaster.Engine
	evader   agent.Agent
	seeker   agent.Agent
	maxTurns int
}

var _ Engine = (*Local)(nil)

func LocalEngine(host gamemaster.Engine, evader, seeker agent.Agent, maxTurns int) *Local {
	if maxTurns <= 0 {
		maxTurns = meta.MAX_TURNS
	}
	return &Local{host: host, evader: evader, seeker: seeker, maxTurns: maxTurns}
}

// Run executes the entire game loop until a winner is found.
func (e *Local) Run(ctx context.Context) ([]game.Piece, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{ID: uuid.NewString(), StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	board, getUpdate := e.host.Init()
	log.Info().Str("game", gameMetric.ID).Msgf("Mr X starts at %d", e.host.MrX().Location)

	for turn := 1; len(e.host.Winner()) == 0 && turn <= e.maxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return nil, gameMetric, moveMetrics, err
		}

		player := e.seeker
		if game.IsMrXTurn(board.AvailableMoves()) {
			player = e.evader
		}

		move, metric, err := player.FindMove(ctx, board)
		if err == nil {
			err = e.host.Play(move)
		}
		if err != nil {
			log.Warn().Err(err).Msgf("agent move %v rejected, playing the first legal move", move)
			move = board.AvailableMoves()[0]
			metric.Fallback = true
			if err := e.host.Play(move); err != nil {
				return nil, gameMetric, moveMetrics, fmt.Errorf("fallback move %v: %w", move, err)
			}
		}

		played, next := getUpdate()
		if played == nil {
			return nil, gameMetric, moveMetrics, fmt.Errorf("host reported no update after %v", move)
		}
		board = next

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Round:        len(board.TravelLog()),
			Piece:        played.Commenced().String(),
			Move:         played.String(),
			SearchMetric: metric,
		})
	}

	winner := e.host.Winner()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Winner = pieceNames(winner)
	gameMetric.Fingerprint = fmt.Sprintf("%016x", e.host.Fingerprint())

	if len(winner) > 0 {
		log.Info().Str("game", gameMetric.ID).Msgf("game ended after %d moves, winner: %s", len(moveMetrics), gameMetric.Winner)
	} else {
		log.Info().Str("game", gameMetric.ID).Msgf("stopped after %d moves (no winner yet)", len(moveMetrics))
	}
	return winner, gameMetric, moveMetrics, nil
}

func pieceNames(pieces []game.Piece) string {
	names := make([]string, len(pieces))
	for i, p := range pieces {
		names[i] = p.String()
	}
	return strings.Join(names, "+")
}
