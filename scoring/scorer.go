// Package scoring evaluates positions from Mr X's point of view: higher is
// better for Mr X, lower is better for the detectives.
package scoring

import (
	"scotlandyard/distance"
	"scotlandyard/game"
	"scotlandyard/meta"
)

type Scorer interface {
	Score(state *game.State) float64
}

// Func adapts a plain function to a Scorer.
type Func func(state *game.State) float64

func (f Func) Score(state *game.State) float64 {
	return f(state)
}

// EvaderLocation is where a scorer believes Mr X stands. Directly after Mr X
// moves, or when nothing reveals him, that is the simulation's own belief.
func EvaderLocation(state *game.State) int {
	location, ok := state.EvaderLocation()
	if !ok || state.EvaderMoved() {
		return state.MrX().Location
	}
	return location
}

// DistanceScorer sums the distance from Mr X to every detective.
type DistanceScorer struct {
	Oracle      distance.Oracle
	Unreachable float64
}

// NewDistanceScorer uses greedy A* unless another oracle is given.
func NewDistanceScorer(oracle distance.Oracle) DistanceScorer {
	if oracle == nil {
		oracle = distance.GreedyAStar{}
	}
	return DistanceScorer{Oracle: oracle, Unreachable: meta.UNREACHABLE_PENALTY}
}

func (s DistanceScorer) Score(state *game.State) float64 {
	return s.sum(state)
}

func (s DistanceScorer) sum(state *game.State) float64 {
	g := state.Setup().Graph
	evader := EvaderLocation(state)

	total := 0.0
	for _, d := range state.Detectives() {
		if cost, ok := s.Oracle.Distance(g, evader, d.Location); ok {
			total += cost
		} else {
			total += s.Unreachable
		}
	}
	return total
}

const (
	distanceWeight  = 30.0
	spreadThreshold = 3000.0
	spreadWeight    = 0.357
	mobilityWeight  = 1.1
)

// WeightedScorer weighs distance heavily. While the detectives are close it
// also counts how spread out they are over every ordered pair, and it adds a
// small bonus for mobility.
type WeightedScorer struct {
	DistanceScorer
}

func NewWeightedScorer(oracle distance.Oracle) WeightedScorer {
	return WeightedScorer{NewDistanceScorer(oracle)}
}

func (s WeightedScorer) Score(state *game.State) float64 {
	score := distanceWeight * s.sum(state)

	if score < spreadThreshold {
		detectives := state.Detectives()
		spread := 0.0
		for _, a := range detectives {
			for _, b := range detectives {
				gap := a.Location - b.Location
				if gap < 0 {
					gap = -gap
				}
				spread += float64(gap)
			}
		}
		score += spread * spreadWeight
	}

	return score + mobilityWeight*float64(len(state.AvailableMoves()))
}
