package game

import "fmt"

type Piece uint8

const (
	MrX Piece = iota
	Red
	Green
	Blue
	White
	Yellow
	numPieces
)

var pieceNames = [numPieces]string{"MrX", "Red", "Green", "Blue", "White", "Yellow"}

func (p Piece) String() string {
	if p >= numPieces {
		return fmt.Sprintf("Piece(%d)", uint8(p))
	}
	return pieceNames[p]
}

func (p Piece) IsMrX() bool {
	return p == MrX
}

func (p Piece) IsDetective() bool {
	return p != MrX && p < numPieces
}

// Detectives lists the detective pieces in turn order.
func Detectives() []Piece {
	return []Piece{Red, Green, Blue, White, Yellow}
}

// ParsePiece resolves a piece by its name.
func ParsePiece(name string) (Piece, error) {
	for i, n := range pieceNames {
		if n == name {
			return Piece(i), nil
		}
	}
	return 0, fmt.Errorf("unknown piece %q", name)
}

// Player is an immutable value; updates return a new Player.
type Player struct {
	Piece    Piece
	Tickets  Tickets
	Location int
}

func NewPlayer(piece Piece, tickets Tickets, location int) Player {
	return Player{Piece: piece, Tickets: tickets, Location: location}
}

func (p Player) IsMrX() bool {
	return p.Piece.IsMrX()
}

func (p Player) Use(t Ticket) Player {
	p.Tickets = p.Tickets.Use(t)
	return p
}

func (p Player) Give(t Ticket) Player {
	p.Tickets = p.Tickets.Give(t)
	return p
}

func (p Player) At(location int) Player {
	p.Location = location
	return p
}

// pieceSet is a bitset of pieces, small enough to copy by value.
type pieceSet uint8

func setOf(pieces ...Piece) pieceSet {
	var s pieceSet
	for _, p := range pieces {
		s = s.with(p)
	}
	return s
}

func (s pieceSet) with(p Piece) pieceSet    { return s | 1<<p }
func (s pieceSet) without(p Piece) pieceSet { return s &^ (1 << p) }
func (s pieceSet) has(p Piece) bool         { return s&(1<<p) != 0 }
func (s pieceSet) empty() bool              { return s == 0 }

func (s pieceSet) pieces() []Piece {
	var out []Piece
	for p := MrX; p < numPieces; p++ {
		if s.has(p) {
			out = append(out, p)
		}
	}
	return out
}
