package game

import "fmt"

// Move is either a SingleMove or a DoubleMove. Both are comparable values, so
// two moves are equal exactly when all of their fields are.
type Move interface {
	Commenced() Piece
	From() int
	FinalDestination() int
	UsedTickets() []Ticket
	fmt.Stringer
	isMove()
}

type SingleMove struct {
	Piece       Piece
	Source      int
	Ticket      Ticket
	Destination int
}

type DoubleMove struct {
	Piece        Piece
	Source       int
	Ticket1      Ticket
	Destination1 int
	Ticket2      Ticket
	Destination2 int
}

func (m SingleMove) Commenced() Piece      { return m.Piece }
func (m SingleMove) From() int             { return m.Source }
func (m SingleMove) FinalDestination() int { return m.Destination }
func (m SingleMove) UsedTickets() []Ticket { return []Ticket{m.Ticket} }
func (SingleMove) isMove()                 {}

func (m SingleMove) String() string {
	return fmt.Sprintf("%s %d -%s-> %d", m.Piece, m.Source, m.Ticket, m.Destination)
}

func (m DoubleMove) Commenced() Piece      { return m.Piece }
func (m DoubleMove) From() int             { return m.Source }
func (m DoubleMove) FinalDestination() int { return m.Destination2 }
func (m DoubleMove) UsedTickets() []Ticket { return []Ticket{m.Ticket1, m.Ticket2, Double} }
func (DoubleMove) isMove()                 {}

func (m DoubleMove) String() string {
	return fmt.Sprintf("%s %d -%s-> %d -%s-> %d", m.Piece, m.Source, m.Ticket1, m.Destination1, m.Ticket2, m.Destination2)
}

// Halves splits a double move into its two single hops.
func (m DoubleMove) Halves() (SingleMove, SingleMove) {
	return SingleMove{Piece: m.Piece, Source: m.Source, Ticket: m.Ticket1, Destination: m.Destination1},
		SingleMove{Piece: m.Piece, Source: m.Destination1, Ticket: m.Ticket2, Destination: m.Destination2}
}

// LogEntry is one line of Mr X's travel log. Location is only meaningful when Revealed.
type LogEntry struct {
	Ticket   Ticket
	Location int
	Revealed bool
}

func Hidden(t Ticket) LogEntry {
	return LogEntry{Ticket: t}
}

func Reveal(t Ticket, location int) LogEntry {
	return LogEntry{Ticket: t, Location: location, Revealed: true}
}
