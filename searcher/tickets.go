package searcher

import "scotlandyard/game"

// expendable weighs how freely a ticket can be spent.
var expendable = [...]int{
	game.Taxi:        10,
	game.Bus:         5,
	game.Underground: 3,
	game.Secret:      2,
	game.Double:      2,
}

func expendability(m game.Move) int {
	value := 0
	for _, t := range m.UsedTickets() {
		value += expendable[t]
	}
	return value
}

// cheaper reports whether a spends fewer tickets than b, or the same number
// of more expendable ones.
func cheaper(a, b game.Move) bool {
	na, nb := game.TicketCount(a), game.TicketCount(b)
	if na != nb {
		return na < nb
	}
	return expendability(a) > expendability(b)
}

type candidate struct {
	move  game.Move
	score float64
}

// collapseDuplicates merges candidates by the same piece that end on the same
// location with scores within tolerance, keeping the cheapest. The position of
// the first candidate of each group is kept.
func collapseDuplicates(candidates []candidate, tolerance float64) []candidate {
	kept := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		merged := false
		for i, k := range kept {
			if !sameOutcome(c, k, tolerance) {
				continue
			}
			if cheaper(c.move, k.move) {
				kept[i] = c
			}
			merged = true
			break
		}
		if !merged {
			kept = append(kept, c)
		}
	}
	return kept
}

func sameOutcome(a, b candidate, tolerance float64) bool {
	if a.move.Commenced() != b.move.Commenced() || a.move.FinalDestination() != b.move.FinalDestination() {
		return false
	}
	diff := a.score - b.score
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
