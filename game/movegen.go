package game

func (s *State) generateMoves() []Move {
	var moves []Move
	if s.remaining.has(MrX) {
		for _, m := range s.singleMoves(s.mrX, s.mrX.Location) {
			moves = append(moves, m)
		}
		if s.canDoubleMove() {
			for _, m := range s.doubleMoves() {
				moves = append(moves, m)
			}
		}
		return moves
	}

	for _, d := range s.detectives {
		if !s.remaining.has(d.Piece) {
			continue
		}
		for _, m := range s.singleMoves(d, d.Location) {
			moves = append(moves, m)
		}
	}
	return moves
}

func (s *State) canDoubleMove() bool {
	return s.mrX.Tickets.Has(Double) &&
		s.mrX.Tickets.Total() >= 2 &&
		len(s.setup.Rounds)-len(s.log) >= 2
}

func (s *State) occupied(location int) bool {
	for _, d := range s.detectives {
		if d.Location == location {
			return true
		}
	}
	return false
}

// singleMoves lists the one-hop moves of player starting from source, using
// the player's current tickets.
func (s *State) singleMoves(player Player, source int) []SingleMove {
	var moves []SingleMove
	for _, edge := range s.setup.Graph.Neighbours(source) {
		if s.occupied(edge.To) {
			continue
		}

		start := len(moves)
		add := func(t Ticket) {
			m := SingleMove{Piece: player.Piece, Source: source, Ticket: t, Destination: edge.To}
			for _, existing := range moves[start:] {
				if existing == m {
					return
				}
			}
			moves = append(moves, m)
		}

		for _, transport := range edge.Transports {
			if player.Tickets.Has(transport.Ticket()) {
				add(transport.Ticket())
			}
		}
		if player.IsMrX() && player.Tickets.Has(Secret) {
			add(Secret)
		}
	}
	return moves
}

func (s *State) doubleMoves() []DoubleMove {
	var moves []DoubleMove
	tickets := s.mrX.Tickets
	for _, first := range s.singleMoves(s.mrX, s.mrX.Location) {
		for _, second := range s.singleMoves(s.mrX, first.Destination) {
			if first.Ticket == second.Ticket && !tickets.AtLeast(first.Ticket, 2) {
				continue
			}
			moves = append(moves, DoubleMove{
				Piece:        MrX,
				Source:       first.Source,
				Ticket1:      first.Ticket,
				Destination1: first.Destination,
				Ticket2:      second.Ticket,
				Destination2: second.Destination,
			})
		}
	}
	return moves
}
