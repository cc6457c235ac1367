package game

// Setup is the fixed part of a game: the transit graph and the reveal schedule.
// Rounds[i] reports whether Mr X's location is revealed on round i+1.
type Setup struct {
	Graph  *Graph
	Rounds []bool
}

func NewSetup(g *Graph, rounds []bool) *Setup {
	return &Setup{Graph: g, Rounds: rounds}
}

// StandardRounds is the classic 24 round schedule revealing on rounds 3, 8, 13, 18 and 24.
func StandardRounds() []bool {
	rounds := make([]bool, 24)
	for _, r := range []int{3, 8, 13, 18, 24} {
		rounds[r-1] = true
	}
	return rounds
}

// Standard starting tickets.
func MrXTickets() Tickets {
	return NewTickets(4, 3, 3, 2, 5)
}

func DetectiveTickets() Tickets {
	return NewTickets(11, 8, 4, 0, 0)
}
