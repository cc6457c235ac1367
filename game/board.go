package game

import (
	"fmt"
	"slices"
)

// Board is a read-only snapshot of a game as a host presents it to a player.
type Board interface {
	Setup() *Setup
	AvailableMoves() []Move
	Players() []Piece
	PlayerTickets(Piece) (Tickets, bool)
	DetectiveLocation(Piece) (int, bool)
	TravelLog() []LogEntry
}

var _ Board = (*State)(nil)

func (s *State) Players() []Piece {
	pieces := []Piece{MrX}
	for _, d := range s.detectives {
		pieces = append(pieces, d.Piece)
	}
	return pieces
}

func (s *State) PlayerTickets(p Piece) (Tickets, bool) {
	player, ok := s.Player(p)
	return player.Tickets, ok
}

func (s *State) DetectiveLocation(p Piece) (int, bool) {
	if !p.IsDetective() {
		return 0, false
	}
	player, ok := s.Player(p)
	return player.Location, ok
}

func (s *State) TravelLog() []LogEntry {
	return s.Log()
}

// FromBoard builds a simulation from a snapshot. Mr X is placed at the source
// of his available moves on his turn and at his last revealed location
// otherwise; Unknown when neither exists. A detective standing on the
// revealed location does not count as a capture until it moves.
func FromBoard(b Board) (*State, error) {
	moves := b.AvailableMoves()
	if len(moves) == 0 {
		return nil, fmt.Errorf("board has no available moves: %w", ErrInvalidSetup)
	}

	log := b.TravelLog()
	mrXTurn := false
	location := Unknown
	var remaining []Piece
	for _, m := range moves {
		if m.Commenced().IsMrX() && !mrXTurn {
			mrXTurn = true
			location = m.From()
		}
		if !slices.Contains(remaining, m.Commenced()) {
			remaining = append(remaining, m.Commenced())
		}
	}
	if !mrXTurn {
		for i := len(log) - 1; i >= 0; i-- {
			if log[i].Revealed {
				location = log[i].Location
				break
			}
		}
	}

	var mrX Player
	var detectives []Player
	for _, p := range b.Players() {
		tickets, ok := b.PlayerTickets(p)
		if !ok {
			return nil, fmt.Errorf("no tickets for %s: %w", p, ErrInvalidSetup)
		}
		if p.IsMrX() {
			mrX = NewPlayer(p, tickets, location)
			continue
		}
		at, ok := b.DetectiveLocation(p)
		if !ok {
			return nil, fmt.Errorf("no location for %s: %w", p, ErrInvalidSetup)
		}
		detectives = append(detectives, NewPlayer(p, tickets, at))
	}

	options := []StateOption{
		WithLog(log...),
		WithRemaining(remaining...),
		WithEvaderMoved(!mrXTurn),
	}
	if !mrXTurn {
		options = append(options, WithEstimatedEvader())
	}
	return NewState(b.Setup(), mrX, detectives, options...)
}
