package game

import "fmt"

type Ticket int

const (
	Taxi Ticket = iota
	Bus
	Underground
	Double
	Secret
	numTickets
)

var ticketNames = [numTickets]string{"Taxi", "Bus", "Underground", "Double", "Secret"}

func (t Ticket) String() string {
	if t < 0 || t >= numTickets {
		return fmt.Sprintf("Ticket(%d)", int(t))
	}
	return ticketNames[t]
}

// AllTickets lists every ticket type in index order.
func AllTickets() []Ticket {
	return []Ticket{Taxi, Bus, Underground, Double, Secret}
}

// Transport is a mode tag carried by a graph edge.
type Transport int

const (
	TaxiRoute Transport = iota
	BusRoute
	UndergroundRoute
	Ferry
)

func (t Transport) String() string {
	switch t {
	case TaxiRoute:
		return "Taxi"
	case BusRoute:
		return "Bus"
	case UndergroundRoute:
		return "Underground"
	case Ferry:
		return "Ferry"
	}
	return fmt.Sprintf("Transport(%d)", int(t))
}

// Ticket returns the ticket required to travel along an edge of this mode.
func (t Transport) Ticket() Ticket {
	switch t {
	case TaxiRoute:
		return Taxi
	case BusRoute:
		return Bus
	case UndergroundRoute:
		return Underground
	default:
		return Secret
	}
}

// Tickets holds a count per ticket type. It is a value type: copies never alias.
type Tickets [numTickets]int

// NewTickets builds a ticket bag in Taxi, Bus, Underground, Double, Secret order.
func NewTickets(taxi, bus, underground, double, secret int) Tickets {
	return Tickets{taxi, bus, underground, double, secret}
}

func (t Tickets) Count(ticket Ticket) int {
	return t[ticket]
}

func (t Tickets) Has(ticket Ticket) bool {
	return t[ticket] > 0
}

func (t Tickets) AtLeast(ticket Ticket, n int) bool {
	return t[ticket] >= n
}

func (t Tickets) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}

// Use returns a copy with one ticket of the given type removed.
func (t Tickets) Use(ticket Ticket) Tickets {
	if t[ticket] == 0 {
		panic(fmt.Sprintf("no %s ticket to use", ticket))
	}
	t[ticket]--
	return t
}

// Give returns a copy with one ticket of the given type added.
func (t Tickets) Give(ticket Ticket) Tickets {
	t[ticket]++
	return t
}

func (t Tickets) valid() bool {
	for _, n := range t {
		if n < 0 {
			return false
		}
	}
	return true
}
