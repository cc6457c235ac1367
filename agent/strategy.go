// Package agent turns the searchers into players: it picks the right engine
// for the side to move and applies the shortcuts a client takes before
// searching at all.
package agent

import (
	"context"
	"fmt"

	"scotlandyard/config"
	"scotlandyard/distance"
	"scotlandyard/experiments/metrics"
	"scotlandyard/game"
	"scotlandyard/scoring"
	"scotlandyard/searcher"
)

// Strategy chooses moves for either side of the game.
type Strategy interface {
	SelectForEvader(ctx context.Context, state *game.State) (game.Move, error)
	SelectForSeeker(ctx context.Context, state *game.State) (game.Move, error)
}

type strategy struct {
	name   string
	evader searcher.Searcher
	seeker searcher.Searcher
}

func (s strategy) SelectForEvader(ctx context.Context, state *game.State) (game.Move, error) {
	return s.evader.Choose(ctx, state)
}

func (s strategy) SelectForSeeker(ctx context.Context, state *game.State) (game.Move, error) {
	return s.seeker.Choose(ctx, state)
}

func (s strategy) String() string {
	return s.name
}

// NewMinimax plays both sides with the same minimax engine.
func NewMinimax(options ...searcher.Option) Strategy {
	m := searcher.NewMinimax(options...)
	return strategy{name: "minimax", evader: m, seeker: m}
}

// NewMonteCarlo explores boldly as Mr X and cautiously as the detectives
// unless the options say otherwise.
func NewMonteCarlo(evaderExploration, seekerExploration float64, options ...searcher.Option) Strategy {
	return strategy{
		name:   "mcts",
		evader: searcher.NewMCTS(append([]searcher.Option{searcher.WithExploration(evaderExploration)}, options...)...),
		seeker: searcher.NewMCTS(append([]searcher.Option{searcher.WithExploration(seekerExploration)}, options...)...),
	}
}

// NewSwarm moves the detectives with particle swarm optimisation and leaves
// Mr X to another strategy.
func NewSwarm(evader Strategy, options ...searcher.Option) Strategy {
	return strategy{
		name:   "pso",
		evader: searcher.SearcherFunc(evader.SelectForEvader),
		seeker: searcher.NewSwarm(options...),
	}
}

func NewFlat(options ...searcher.Option) Strategy {
	f := searcher.NewFlat(options...)
	return strategy{name: "flat", evader: f, seeker: f}
}

// FromConfig builds the named strategy with the tunables of cfg. Every search
// reports to collector.
func FromConfig(cfg config.Config, name string, collector metrics.Collector) (Strategy, error) {
	options, err := searchOptions(cfg, collector)
	if err != nil {
		return nil, err
	}

	switch name {
	case "minimax":
		return NewMinimax(options...), nil
	case "mcts":
		return NewMonteCarlo(cfg.MCTS.EvaderExploration, cfg.MCTS.SeekerExploration, options...), nil
	case "flat":
		return NewFlat(options...), nil
	case "pso":
		if cfg.Evader == "pso" {
			return nil, fmt.Errorf("pso cannot play Mr X: %w", config.ErrUnknownStrategy)
		}
		evader, err := FromConfig(cfg, cfg.Evader, collector)
		if err != nil {
			return nil, err
		}
		return NewSwarm(evader, options...), nil
	}
	return nil, fmt.Errorf("%q: %w", name, config.ErrUnknownStrategy)
}

func searchOptions(cfg config.Config, collector metrics.Collector) ([]searcher.Option, error) {
	oracle, err := distance.ByName(cfg.Oracle)
	if err != nil {
		return nil, err
	}

	var scorer scoring.Scorer
	switch cfg.Scorer {
	case "weighted":
		scorer = scoring.NewWeightedScorer(oracle)
	case "distance", "":
		scorer = scoring.NewDistanceScorer(oracle)
	default:
		return nil, fmt.Errorf("unknown scorer %q", cfg.Scorer)
	}

	options := []searcher.Option{
		searcher.WithScorer(scorer),
		searcher.WithOracle(oracle),
		searcher.WithMetrics(collector),
		searcher.WithDepth(cfg.Minimax.Depth),
		searcher.WithTopN(cfg.Minimax.EvaderTopN, cfg.Minimax.SeekerTopN),
		searcher.WithWorkers(cfg.Minimax.Workers),
		searcher.WithDuplicateTolerance(cfg.Minimax.DuplicateTolerance),
		searcher.WithEmergencyMargin(cfg.Minimax.EmergencyMargin),
		searcher.WithIterations(cfg.MCTS.Iterations),
		searcher.WithLookAhead(cfg.MCTS.LookAhead),
		searcher.WithRolloutThreshold(cfg.MCTS.RolloutThreshold),
		searcher.WithAntiNoise(cfg.MCTS.AntiNoiseEvader, cfg.MCTS.AntiNoiseSeeker),
		searcher.WithEpochs(cfg.PSO.Epochs),
		searcher.WithCoefficients(cfg.PSO.C1, cfg.PSO.C2, cfg.PSO.Inertia),
		searcher.WithSimulations(cfg.Flat.Simulations),
	}
	if cfg.Seed != 0 {
		options = append(options, searcher.WithSeed(cfg.Seed))
	}
	return options, nil
}
