// Package gametest provides small boards for tests.
package gametest

import "scotlandyard/game"

// Small is a seven-edge board:
//
//	1-2 taxi+bus, 1-3 taxi, 1-4 underground, 2-5 taxi,
//	3-5 bus, 4-5 ferry, 5-6 taxi
func Small() *game.Graph {
	g := game.NewGraph()
	g.AddEdge(1, 2, game.TaxiRoute)
	g.AddEdge(1, 2, game.BusRoute)
	g.AddEdge(1, 3, game.TaxiRoute)
	g.AddEdge(1, 4, game.UndergroundRoute)
	g.AddEdge(2, 5, game.TaxiRoute)
	g.AddEdge(3, 5, game.BusRoute)
	g.AddEdge(4, 5, game.Ferry)
	g.AddEdge(5, 6, game.TaxiRoute)
	return g
}

// Line connects 1..n in a chain of taxi edges.
func Line(n int) *game.Graph {
	g := game.NewGraph()
	g.AddNode(1)
	for i := 1; i < n; i++ {
		g.AddEdge(i, i+1, game.TaxiRoute)
	}
	return g
}

// Excerpt is a fragment of the classic London board around the locations used
// in distance tests: 57-58 are neighbours, 100 reaches 125 in two hops and 128
// reaches 175 in three.
func Excerpt() *game.Graph {
	g := game.NewGraph()
	edges := []struct {
		a, b int
		t    game.Transport
	}{
		{57, 58, game.TaxiRoute},
		{57, 73, game.TaxiRoute},
		{58, 59, game.TaxiRoute},
		{58, 74, game.TaxiRoute},
		{58, 77, game.BusRoute},
		{58, 46, game.BusRoute},
		{74, 92, game.TaxiRoute},
		{77, 78, game.TaxiRoute},
		{100, 101, game.TaxiRoute},
		{100, 112, game.TaxiRoute},
		{100, 113, game.TaxiRoute},
		{100, 111, game.BusRoute},
		{111, 124, game.TaxiRoute},
		{112, 125, game.TaxiRoute},
		{113, 125, game.TaxiRoute},
		{124, 130, game.TaxiRoute},
		{125, 131, game.TaxiRoute},
		{128, 142, game.TaxiRoute},
		{128, 160, game.TaxiRoute},
		{128, 188, game.TaxiRoute},
		{128, 185, game.BusRoute},
		{128, 89, game.UndergroundRoute},
		{142, 158, game.TaxiRoute},
		{158, 175, game.TaxiRoute},
		{160, 161, game.TaxiRoute},
		{161, 174, game.TaxiRoute},
		{174, 175, game.TaxiRoute},
		{185, 187, game.BusRoute},
		{187, 188, game.TaxiRoute},
		{188, 189, game.TaxiRoute},
		{189, 190, game.TaxiRoute},
		{190, 175, game.TaxiRoute},
		{89, 67, game.UndergroundRoute},
		{67, 46, game.UndergroundRoute},
	}
	for _, e := range edges {
		g.AddEdge(e.a, e.b, e.t)
	}
	return g
}

// Rounds returns n hidden rounds with the given 1-based rounds revealed.
func Rounds(n int, revealed ...int) []bool {
	rounds := make([]bool, n)
	for _, r := range revealed {
		rounds[r-1] = true
	}
	return rounds
}
