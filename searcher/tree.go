package searcher

import (
	"math"

	"scotlandyard/game"
)

type nodeKind int

const (
	rootNode nodeKind = iota
	forkNode // Undecided position
	leafNode // Terminal position
)

type node struct {
	kind       nodeKind
	parent     int // -1 for the root
	move       game.Move
	state      *game.State
	unexplored []game.Move
	children   []int
	visits     int
	wins       float64
}

// tree stores nodes in an arena; nodes refer to each other by index.
type tree struct {
	nodes []node
}

func newTree(state *game.State) *tree {
	t := &tree{}
	t.nodes = append(t.nodes, node{
		kind:       rootNode,
		parent:     -1,
		state:      state,
		unexplored: state.AvailableMoves(),
	})
	return t
}

func (t *tree) root() *node {
	return &t.nodes[0]
}

// expand pops the next unexplored move of parent and adds its child.
func (t *tree) expand(parent int) (int, error) {
	p := &t.nodes[parent]
	move := p.unexplored[0]
	p.unexplored = p.unexplored[1:]

	state, err := p.state.Advance(move)
	if err != nil {
		return -1, err
	}
	kind := forkNode
	var unexplored []game.Move
	if state.IsOver() {
		kind = leafNode
	} else {
		unexplored = state.AvailableMoves()
	}

	t.nodes = append(t.nodes, node{
		kind:       kind,
		parent:     parent,
		move:       move,
		state:      state,
		unexplored: unexplored,
	})
	child := len(t.nodes) - 1
	t.nodes[parent].children = append(t.nodes[parent].children, child)
	return child, nil
}

// selectChild picks the child with the highest UCB1 value, first one on ties.
func (t *tree) selectChild(parent int, c float64) int {
	p := &t.nodes[parent]
	policy := newUCB1(c, p.visits)

	best := -1
	bestScore := math.Inf(-1)
	for _, i := range p.children {
		child := &t.nodes[i]
		if child.visits == 0 {
			return i
		}
		if score := policy.evaluate(child.wins, child.visits); score > bestScore {
			best = i
			bestScore = score
		}
	}
	return best
}

// descend walks from the root to the node that the next rollout starts from,
// expanding one new child on the way when possible.
func (t *tree) descend(c float64) (int, error) {
	current := 0
	for {
		n := &t.nodes[current]
		if n.kind == leafNode {
			return current, nil
		}
		if len(n.unexplored) > 0 {
			return t.expand(current)
		}
		if len(n.children) == 0 {
			return current, nil
		}
		current = t.selectChild(current, c)
	}
}

// backpropagate adds one visit and the outcome to every node from tail to the root.
func (t *tree) backpropagate(tail int, outcome float64) {
	for i := tail; i >= 0; i = t.nodes[i].parent {
		t.nodes[i].visits++
		t.nodes[i].wins += outcome
	}
}
