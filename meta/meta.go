// meta/meta.go
package meta

import "runtime"

// GO_ROUTINES defines the default size of the minimax worker pool.
var GO_ROUTINES = runtime.NumCPU()

// MAX_TURNS caps the number of moves played by the self-play loop.
const MAX_TURNS = 300

// MAX_PLAYOUT_PLIES caps a random playout that never reaches a terminal state.
const MAX_PLAYOUT_PLIES = 200

// Minimax
const (
	DEPTH               = 6
	EVADER_TOP_N        = 4
	SEEKER_TOP_N        = 1
	DUPLICATE_TOLERANCE = 20.0
	EMERGENCY_MARGIN    = 1000.0
)

// MCTS
const (
	ITERATIONS         = 8000
	EXPLORATION        = 0.3
	EXPLORATION_EVADER = 2.5
	EXPLORATION_SEEKER = 0.1
	LOOK_AHEAD         = 1
	ROLLOUT_THRESHOLD  = 100.0
	ANTI_NOISE_EVADER  = 200.0
	ANTI_NOISE_SEEKER  = 0.0
)

// PSO
const (
	EPOCHS  = 4000
	C1      = 0.25
	C2      = 0.05
	INERTIA = 0.6
)

// SIMULATIONS is the number of random playouts per move for flat Monte Carlo.
const SIMULATIONS = 50

// UNREACHABLE_PENALTY is added to a distance sum for each unreachable seeker.
const UNREACHABLE_PENALTY = 1000.0
