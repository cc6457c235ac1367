package searcher

import (
	"context"
	"math"
	"sync"

	"scotlandyard/game"
	"scotlandyard/meta"
	"scotlandyard/scoring"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

// velocityScale shrinks the random factors of the velocity update.
const velocityScale = 0.1

type particle struct {
	velocity     float64
	location     float64
	node         int
	bestLocation float64
	bestNode     int
}

// Swarm moves the detectives with particle swarm optimisation. Each detective
// is a particle drifting along node ids towards where Mr X was last seen; the
// detectives then play the move that brings them closest to the best node
// the swarm found.
type Swarm struct {
	settings

	mu    sync.Mutex // guards rng and the last search below
	trace []float64
	node  int // Swarm best node of the last search
}

// swarm is the state of a single search.
type swarm struct {
	*settings

	rng       *rand.Rand
	graph     *game.Graph
	evader    int
	particles []particle
	location  float64 // Swarm best location
	node      int     // Swarm best node
	losses    map[int]float64
	trace     []float64
}

func NewSwarm(options ...Option) *Swarm {
	return &Swarm{settings: newSettings(options)}
}

func (s *Swarm) Choose(ctx context.Context, state *game.State) (game.Move, error) {
	moves := state.AvailableMoves()
	if len(moves) == 0 {
		return nil, ErrNoMoves
	}
	if state.IsEvaderTurn() {
		return nil, ErrNotSeekerTurn
	}

	s.mu.Lock()
	seed := s.rng.Uint64()
	s.mu.Unlock()

	s.metrics.Start("pso")
	run := newSwarm(&s.settings, NewRand(seed), state)
	for epoch := 0; epoch < s.epochs; epoch++ {
		if ctx.Err() != nil {
			log.Warn().Int("epochs", epoch).Msg("particle swarm interrupted")
			s.metrics.SetFallback(true)
			break
		}
		run.step()
		run.trace = append(run.trace, run.squaredLoss(run.location))
		s.metrics.AddIteration()
	}

	best := moves[0]
	bestCost := math.Inf(1)
	for _, move := range moves {
		next, err := state.Advance(move)
		if err != nil {
			return nil, err
		}
		cost := 0.0
		for _, d := range next.Detectives() {
			cost += run.distance(run.node, d.Location)
		}
		if cost < bestCost {
			best = move
			bestCost = cost
		}
	}

	s.mu.Lock()
	s.trace = run.trace
	s.node = run.node
	s.mu.Unlock()

	log.Info().Msgf("particle swarm picked %s towards node %d", best, run.node)
	return best, nil
}

// Trace returns the swarm best squared loss after every epoch of the last search.
func (s *Swarm) Trace() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trace
}

func newSwarm(settings *settings, rng *rand.Rand, state *game.State) *swarm {
	s := &swarm{
		settings: settings,
		rng:      rng,
		graph:    state.Setup().Graph,
		evader:   scoring.EvaderLocation(state),
		losses:   make(map[int]float64),
		trace:    make([]float64, 0, settings.epochs),
	}

	detectives := state.Detectives()
	locations := make([]float64, len(detectives))
	s.particles = make([]particle, len(detectives))
	for i, d := range detectives {
		locations[i] = float64(d.Location)
		s.particles[i] = particle{
			velocity:     s.rng.Float64() * velocityScale,
			location:     float64(d.Location),
			node:         d.Location,
			bestLocation: float64(d.Location),
			bestNode:     d.Location,
		}
	}
	s.location = stat.Mean(locations, nil)
	s.node = int(s.location)
	return s
}

func (s *swarm) step() {
	for i := range s.particles {
		p := &s.particles[i]
		r1 := s.rng.Float64() * velocityScale
		r2 := s.rng.Float64() * velocityScale
		p.velocity = s.inertia*p.velocity +
			s.c1*r1*(p.bestLocation-p.location) +
			s.c2*r2*(s.location-p.location)
	}
	for i := range s.particles {
		s.move(&s.particles[i])
	}
}

func (s *swarm) move(p *particle) {
	oldNodeLoss := s.nodeLoss(p.node)
	oldLocationLoss := s.squaredLoss(p.location)
	p.location += p.velocity

	// Snap to the closest of the current node and its neighbours
	closest := p.node
	gap := math.Abs(float64(p.node) - p.location)
	for _, e := range s.graph.Neighbours(p.node) {
		if g := math.Abs(float64(e.To) - p.location); g <= gap {
			closest = e.To
			gap = g
		}
	}
	p.node = closest

	nodeLoss := s.nodeLoss(p.node)
	locationLoss := s.squaredLoss(p.location)
	if nodeLoss < oldNodeLoss {
		p.bestNode = p.node
	}
	if locationLoss < oldLocationLoss {
		p.bestLocation = p.location
	}
	if locationLoss < s.squaredLoss(s.location) {
		s.location = p.location
	}
	if nodeLoss < s.nodeLoss(s.node) {
		s.node = p.node
	}
}

func (s *swarm) squaredLoss(location float64) float64 {
	d := location - float64(s.evader)
	return d * d
}

// nodeLoss is the squared greedy distance from Mr X to node.
func (s *swarm) nodeLoss(node int) float64 {
	if loss, ok := s.losses[node]; ok {
		return loss
	}
	d := s.distance(s.evader, node)
	loss := d * d
	s.losses[node] = loss
	return loss
}

func (s *swarm) distance(from, to int) float64 {
	if d, ok := s.oracle.Distance(s.graph, from, to); ok {
		return d
	}
	return meta.UNREACHABLE_PENALTY
}
