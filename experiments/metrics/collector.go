package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Strategy   string
	Duration   time.Duration
	Nodes      int // Positions scored or expanded
	Iterations int // MCTS iterations, PSO epochs or flat playouts
	Terminals  int // Rollouts that reached the end of the game
	Fallback   bool
}

type MoveMetric struct {
	Step  int
	Round int // Mr X's completed rounds after the move
	Piece string
	Move  string
	SearchMetric
}

type GameMetric struct {
	ID          string
	Winner      string
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
	TotalMoves  int
	Fingerprint string // hash of the final position
}

// Collector counts search work. Implementations are safe for concurrent use
// by the minimax worker pool.
type Collector interface {
	Start(strategy string)
	AddNode()
	AddIteration()
	AddTerminal()
	SetFallback(value bool)
	Complete() SearchMetric
}

type collector struct {
	strategy   string
	startTime  time.Time
	nodes      atomic.Int64
	iterations atomic.Int64
	terminals  atomic.Int64
	fallback   atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(strategy string) {
	m.strategy = strategy
	m.startTime = time.Now()
	m.nodes.Store(0)
	m.iterations.Store(0)
	m.terminals.Store(0)
	m.fallback.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddIteration() {
	m.iterations.Add(1)
}

func (m *collector) AddTerminal() {
	m.terminals.Add(1)
}

func (m *collector) SetFallback(value bool) {
	m.fallback.Store(value)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Strategy:   m.strategy,
		Duration:   time.Since(m.startTime),
		Nodes:      int(m.nodes.Load()),
		Iterations: int(m.iterations.Load()),
		Terminals:  int(m.terminals.Load()),
		Fallback:   m.fallback.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(strategy string)  {}
func (m *dummyCollector) AddNode()               {}
func (m *dummyCollector) AddIteration()          {}
func (m *dummyCollector) AddTerminal()           {}
func (m *dummyCollector) SetFallback(value bool) {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
