// Package experiments pits strategies against each other in self-play and
// records every game and move as CSV.
package experiments

import (
	"context"
	"fmt"
	"os"

	"scotlandyard/agent"
	"scotlandyard/config"
	"scotlandyard/engine"
	"scotlandyard/experiments/metrics"
	"scotlandyard/game"
	"scotlandyard/gamemaster"

	"github.com/rs/zerolog/log"
)

// Start is the position every game of an experiment begins from.
type Start struct {
	Setup      *game.Setup
	MrX        game.Player
	Detectives []game.Player
}

// LoadStart reads the board file of g and places the pieces with the
// standard tickets and reveal schedule.
func LoadStart(g config.Game) (Start, error) {
	f, err := os.Open(g.Graph)
	if err != nil {
		return Start{}, fmt.Errorf("failed to open graph: %w", err)
	}
	defer f.Close()

	graph, err := game.ReadGraph(f)
	if err != nil {
		return Start{}, err
	}
	return NewStart(game.NewSetup(graph, game.StandardRounds()), g.MrX, g.Detectives)
}

func NewStart(setup *game.Setup, mrX int, detectives []int) (Start, error) {
	pieces := game.Detectives()
	if len(detectives) == 0 || len(detectives) > len(pieces) {
		return Start{}, fmt.Errorf("%d detectives: %w", len(detectives), game.ErrInvalidSetup)
	}
	start := Start{
		Setup: setup,
		MrX:   game.NewPlayer(game.MrX, game.MrXTickets(), mrX),
	}
	for i, at := range detectives {
		start.Detectives = append(start.Detectives, game.NewPlayer(pieces[i], game.DetectiveTickets(), at))
	}
	// Validate once up front
	if _, err := game.NewState(start.Setup, start.MrX, start.Detectives); err != nil {
		return Start{}, err
	}
	return start, nil
}

// Result tallies the games of one matchup.
type Result struct {
	Evader     metrics.AgentConfig
	Seeker     metrics.AgentConfig
	Games      int
	EvaderWins int
	SeekerWins int
	Unfinished int
}

// Run plays cfg.Experiments.Games games for every configured matchup and
// writes the records under cfg.Experiments.Output. An empty output skips
// writing.
func Run(ctx context.Context, cfg config.Config, start Start) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	configs := []metrics.AgentConfig{}
	ids := map[string]int{}
	agentConfig := func(strategy string) metrics.AgentConfig {
		if id, ok := ids[strategy]; ok {
			return configs[id-1]
		}
		c := metrics.AgentConfig{
			ID:          len(configs) + 1,
			Strategy:    strategy,
			Depth:       cfg.Minimax.Depth,
			Workers:     cfg.Minimax.Workers,
			Iterations:  cfg.MCTS.Iterations,
			Epochs:      cfg.PSO.Epochs,
			Simulations: cfg.Flat.Simulations,
		}
		configs = append(configs, c)
		ids[strategy] = c.ID
		return c
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, m := range cfg.Experiments.Matchups {
		matchUps = append(matchUps, []metrics.AgentConfig{agentConfig(m.Evader), agentConfig(m.Seeker)})
	}
	return runExperiment(ctx, "matchups", cfg, start, configs, matchUps)
}

func runExperiment(ctx context.Context, name string, cfg config.Config, start Start, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) ([]Result, error) {
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	results := make([]Result, 0, len(matchUps))

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		evader, seeker := matchup[0], matchup[1]
		result := Result{Evader: evader, Seeker: seeker}

		log.Info().Msgf("starting matchup %d of %d between evader=%+v and seeker=%+v...", mi+1, len(matchUps), evader, seeker)

		for i := 0; i < cfg.Experiments.Games; i++ {
			winner, gameMetric, moveMetrics, err := runGame(ctx, cfg, start, evader, seeker)
			if err != nil {
				return nil, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}

			result.Games++
			switch {
			case len(winner) == 0:
				result.Unfinished++
			case winner[0].IsMrX():
				result.EvaderWins++
			default:
				result.SeekerWins++
			}

			gameRecords = append(gameRecords, metrics.GameRecord{
				Evader:     evader.ID,
				Seeker:     seeker.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       gameMetric.ID,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, gameMetric.Winner)
		}
		results = append(results, result)
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	if cfg.Experiments.Output == "" {
		return results, nil
	}
	if err := store(cfg.Experiments.Output, name, configs, gameRecords, moveRecords); err != nil {
		return nil, err
	}
	return results, nil
}

func store(root, name string, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")
	return nil
}

// runGame plays a single game between two agents.
func runGame(ctx context.Context, cfg config.Config, start Start, evader, seeker metrics.AgentConfig) ([]game.Piece, metrics.GameMetric, []metrics.MoveMetric, error) {
	evaderAgent, err := createAgent(cfg, evader)
	if err != nil {
		return nil, metrics.GameMetric{}, nil, err
	}
	seekerAgent, err := createAgent(cfg, seeker)
	if err != nil {
		return nil, metrics.GameMetric{}, nil, err
	}

	host, err := gamemaster.NewLocal(start.Setup, start.MrX, start.Detectives)
	if err != nil {
		return nil, metrics.GameMetric{}, nil, err
	}
	return engine.LocalEngine(host, evaderAgent, seekerAgent, cfg.Game.MaxTurns).Run(ctx)
}

func createAgent(cfg config.Config, c metrics.AgentConfig) (agent.Agent, error) {
	cfg.Minimax.Depth = c.Depth
	cfg.Minimax.Workers = c.Workers
	cfg.MCTS.Iterations = c.Iterations
	cfg.PSO.Epochs = c.Epochs
	cfg.Flat.Simulations = c.Simulations

	collector := metrics.NewCollector()
	strategy, err := agent.FromConfig(cfg, c.Strategy, collector)
	if err != nil {
		return nil, err
	}
	return agent.NewSelector(strategy, agent.WithMetrics(collector)), nil
}
