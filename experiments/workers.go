package experiments

import (
	"context"

	"scotlandyard/config"
	"scotlandyard/experiments/metrics"
)

// RunWorkerScaling pits minimax with each worker pool size against the
// sequential baseline, as Mr X, to see whether parallel search changes play.
func RunWorkerScaling(ctx context.Context, cfg config.Config, start Start, workers []int) ([]Result, error) {
	baseline := metrics.AgentConfig{
		ID:          1,
		Strategy:    "minimax",
		Depth:       cfg.Minimax.Depth,
		Workers:     1,
		Iterations:  cfg.MCTS.Iterations,
		Epochs:      cfg.PSO.Epochs,
		Simulations: cfg.Flat.Simulations,
	}
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][]metrics.AgentConfig{}
	for i, w := range workers {
		c := baseline
		c.ID = i + 2
		c.Workers = w
		configs = append(configs, c)
		matchUps = append(matchUps, []metrics.AgentConfig{c, baseline})
	}
	return runExperiment(ctx, "worker_scaling", cfg, start, configs, matchUps)
}
