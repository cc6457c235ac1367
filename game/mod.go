// Package game simulates a hidden-movement pursuit game: Mr X moves in secret
// across a transit graph while detectives spend tickets to chase him.
//
// A State is an immutable value. Advance returns a new State, which lets every
// search branch hold its own position without copying on the caller's side.
package game

// IsMrXTurn reports whether any of the given moves is Mr X's.
func IsMrXTurn(moves []Move) bool {
	for _, m := range moves {
		if m.Commenced().IsMrX() {
			return true
		}
	}
	return false
}

// TicketCount is the number of tickets a move consumes, the double ticket included.
func TicketCount(m Move) int {
	return len(m.UsedTickets())
}
