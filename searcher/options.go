package searcher

import (
	"math"

	"scotlandyard/distance"
	"scotlandyard/experiments/metrics"
	"scotlandyard/meta"
	"scotlandyard/scoring"

	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

// Option configures any of the engines. Every engine keeps its own copy of
// the settings, so two instances never share tunables.
type Option func(s *settings)

type settings struct {
	// Minimax
	depth      int
	evaderTopN int
	seekerTopN int
	workers    int
	tolerance  float64
	margin     float64
	fallback   Searcher

	// MCTS
	iterations      int
	exploration     float64
	lookAhead       int
	threshold       float64
	antiNoiseEvader float64
	antiNoiseSeeker float64

	// PSO
	epochs  int
	c1      float64
	c2      float64
	inertia float64
	oracle  distance.Oracle

	// Flat Monte Carlo
	simulations int

	scorer  scoring.Scorer
	rng     *rand.Rand
	metrics metrics.Collector
}

func newSettings(options []Option) settings {
	s := settings{ // Default values
		depth:           meta.DEPTH,
		evaderTopN:      meta.EVADER_TOP_N,
		seekerTopN:      meta.SEEKER_TOP_N,
		workers:         meta.GO_ROUTINES,
		tolerance:       meta.DUPLICATE_TOLERANCE,
		margin:          meta.EMERGENCY_MARGIN,
		iterations:      meta.ITERATIONS,
		exploration:     meta.EXPLORATION,
		lookAhead:       meta.LOOK_AHEAD,
		threshold:       meta.ROLLOUT_THRESHOLD,
		antiNoiseEvader: meta.ANTI_NOISE_EVADER,
		antiNoiseSeeker: meta.ANTI_NOISE_SEEKER,
		epochs:          meta.EPOCHS,
		c1:              meta.C1,
		c2:              meta.C2,
		inertia:         meta.INERTIA,
		oracle:          distance.GreedyAStar{},
		simulations:     meta.SIMULATIONS,
		scorer:          scoring.NewDistanceScorer(nil),
		metrics:         metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(&s)
	}
	if s.rng == nil {
		s.rng = NewRand(frand.Uint64n(math.MaxUint64))
	}
	return s
}

// NewRand returns a deterministic generator for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func WithDepth(depth int) Option {
	return func(s *settings) {
		if depth >= 0 {
			s.depth = depth
		}
	}
}

// WithTopN bounds how many statically best children minimax explores at each
// level for Mr X and for the detectives.
func WithTopN(evader, seeker int) Option {
	return func(s *settings) {
		if evader > 0 {
			s.evaderTopN = evader
		}
		if seeker > 0 {
			s.seekerTopN = seeker
		}
	}
}

func WithWorkers(workers int) Option {
	return func(s *settings) {
		if workers > 0 {
			s.workers = workers
		}
	}
}

func WithDuplicateTolerance(tolerance float64) Option {
	return func(s *settings) {
		if tolerance >= 0 {
			s.tolerance = tolerance
		}
	}
}

func WithEmergencyMargin(margin float64) Option {
	return func(s *settings) {
		s.margin = margin
	}
}

// WithFallback sets the engine minimax hands over to when every Mr X move
// loses badly. Defaults to MCTS.
func WithFallback(fallback Searcher) Option {
	return func(s *settings) {
		s.fallback = fallback
	}
}

func WithIterations(iterations int) Option {
	return func(s *settings) {
		if iterations > 0 {
			s.iterations = iterations
		}
	}
}

func WithExploration(c float64) Option {
	return func(s *settings) {
		if c >= 0 {
			s.exploration = c
		}
	}
}

// WithLookAhead sets how many random plies a non-terminal rollout plays.
func WithLookAhead(plies int) Option {
	return func(s *settings) {
		if plies > 0 {
			s.lookAhead = plies
		}
	}
}

func WithRolloutThreshold(threshold float64) Option {
	return func(s *settings) {
		s.threshold = threshold
	}
}

// WithAntiNoise sets the largest one-ply score jump a final MCTS choice may
// show, upwards for Mr X and downwards for the detectives.
func WithAntiNoise(evader, seeker float64) Option {
	return func(s *settings) {
		s.antiNoiseEvader = evader
		s.antiNoiseSeeker = seeker
	}
}

func WithEpochs(epochs int) Option {
	return func(s *settings) {
		if epochs > 0 {
			s.epochs = epochs
		}
	}
}

// WithCoefficients sets the personal pull, swarm pull and inertia of PSO.
func WithCoefficients(c1, c2, inertia float64) Option {
	return func(s *settings) {
		s.c1 = c1
		s.c2 = c2
		s.inertia = inertia
	}
}

func WithOracle(oracle distance.Oracle) Option {
	return func(s *settings) {
		if oracle != nil {
			s.oracle = oracle
		}
	}
}

func WithSimulations(simulations int) Option {
	return func(s *settings) {
		if simulations > 0 {
			s.simulations = simulations
		}
	}
}

func WithScorer(scorer scoring.Scorer) Option {
	return func(s *settings) {
		if scorer != nil {
			s.scorer = scorer
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(s *settings) {
		if rng != nil {
			s.rng = rng
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.rng = NewRand(seed)
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(s *settings) {
		if collector != nil {
			s.metrics = collector
		}
	}
}
