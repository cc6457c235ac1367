package game

import (
	"slices"
	"sync"

	"gonum.org/v1/gonum/graph/simple"
)

// Edge is one side of an undirected connection with the transport modes it supports.
type Edge struct {
	To         int
	Transports []Transport
}

// Graph is the undirected transit graph. It is built once and then shared
// read-only between every State derived from the same Setup.
type Graph struct {
	adjacent map[int][]Edge

	once  sync.Once
	plain *simple.UndirectedGraph
}

func NewGraph() *Graph {
	return &Graph{adjacent: make(map[int][]Edge)}
}

// AddNode registers a location without any edges.
func (g *Graph) AddNode(id int) {
	if _, ok := g.adjacent[id]; !ok {
		g.adjacent[id] = nil
	}
}

// AddEdge adds a bidirectional edge between two locations, merging the
// transport tag into any existing edge.
func (g *Graph) AddEdge(a, b int, t Transport) {
	g.addHalf(a, b, t)
	g.addHalf(b, a, t)
}

func (g *Graph) addHalf(from, to int, t Transport) {
	edges := g.adjacent[from]
	for i, e := range edges {
		if e.To == to {
			if !slices.Contains(e.Transports, t) {
				edges[i].Transports = append(e.Transports, t)
				slices.Sort(edges[i].Transports)
			}
			return
		}
	}
	edges = append(edges, Edge{To: to, Transports: []Transport{t}})
	slices.SortFunc(edges, func(x, y Edge) int { return x.To - y.To })
	g.adjacent[from] = edges
}

func (g *Graph) Has(id int) bool {
	_, ok := g.adjacent[id]
	return ok
}

// Neighbours returns the edges leaving id in ascending destination order.
func (g *Graph) Neighbours(id int) []Edge {
	return g.adjacent[id]
}

// Transports returns the transport tags on the edge between a and b, or nil.
func (g *Graph) Transports(a, b int) []Transport {
	for _, e := range g.adjacent[a] {
		if e.To == b {
			return e.Transports
		}
	}
	return nil
}

// Nodes returns every location id in ascending order.
func (g *Graph) Nodes() []int {
	nodes := make([]int, 0, len(g.adjacent))
	for id := range g.adjacent {
		nodes = append(nodes, id)
	}
	slices.Sort(nodes)
	return nodes
}

func (g *Graph) Len() int {
	return len(g.adjacent)
}

// Plain returns the graph without transport labels as a gonum graph. It is
// built on first use; the Graph must not be modified afterwards.
func (g *Graph) Plain() *simple.UndirectedGraph {
	g.once.Do(func() {
		u := simple.NewUndirectedGraph()
		for _, id := range g.Nodes() {
			u.AddNode(simple.Node(int64(id)))
		}
		for from, edges := range g.adjacent {
			for _, e := range edges {
				if from < e.To {
					u.SetEdge(u.NewEdge(simple.Node(int64(from)), simple.Node(int64(e.To))))
				}
			}
		}
		g.plain = u
	})
	return g.plain
}
