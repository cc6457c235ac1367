// Package distance measures how far apart two locations are on the transit graph.
package distance

import (
	"fmt"
	"math"

	"scotlandyard/game"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// Oracle estimates the cost of travelling between two locations. ok is false
// when the destination cannot be reached.
type Oracle interface {
	Distance(g *game.Graph, from, to int) (cost float64, ok bool)
}

// ByName resolves an oracle from its configuration name.
func ByName(name string) (Oracle, error) {
	switch name {
	case "dijkstra":
		return Dijkstra{}, nil
	case "astar":
		return AStar{}, nil
	case "greedy", "":
		return GreedyAStar{}, nil
	}
	return nil, fmt.Errorf("unknown distance oracle %q", name)
}

// Dijkstra returns exact hop counts.
type Dijkstra struct{}

func (Dijkstra) Distance(g *game.Graph, from, to int) (float64, bool) {
	if !g.Has(from) || !g.Has(to) {
		return 0, false
	}
	if from == to {
		return 0, true
	}
	plain := g.Plain()
	shortest := path.DijkstraFrom(simple.Node(int64(from)), plain)
	cost := shortest.WeightTo(int64(to))
	if math.IsInf(cost, 1) {
		return 0, false
	}
	return cost, true
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// AStar orders its frontier by hop count plus the difference between node
// ids, which tend to be close for nearby locations on the board. The search
// keeps relaxing until the frontier is empty, so the result is an exact hop
// count.
type AStar struct{}

func (AStar) Distance(g *game.Graph, from, to int) (float64, bool) {
	if !g.Has(from) || !g.Has(to) {
		return 0, false
	}

	cost := map[int]int{from: 0}
	frontier := &queue{}
	frontier.push(from, 0)

	for frontier.Len() > 0 {
		current := frontier.pop()
		for _, e := range g.Neighbours(current) {
			next := cost[current] + 1
			if known, seen := cost[e.To]; !seen || next < known {
				cost[e.To] = next
				frontier.push(e.To, next+absDiff(e.To, to))
			}
		}
	}

	d, ok := cost[to]
	return float64(d), ok
}

// maxEdgeValue is the base cost of an edge before its transport count is subtracted.
const maxEdgeValue = 20

// GreedyAStar stops as soon as the destination leaves the frontier. Edges cost
// (20 - transports on the edge) + |next - destination|, so the result is a
// proximity score rather than a hop count.
type GreedyAStar struct{}

func (GreedyAStar) Distance(g *game.Graph, from, to int) (float64, bool) {
	if !g.Has(from) || !g.Has(to) {
		return 0, false
	}

	cost := map[int]int{from: 0}
	frontier := &queue{}
	frontier.push(from, 0)

	for frontier.Len() > 0 {
		current := frontier.pop()
		if current == to {
			break
		}
		for _, e := range g.Neighbours(current) {
			next := cost[current] + (maxEdgeValue - len(e.Transports)) + absDiff(e.To, to)
			if known, seen := cost[e.To]; !seen || next < known {
				cost[e.To] = next
				frontier.push(e.To, next)
			}
		}
	}

	d, ok := cost[to]
	return float64(d), ok
}
