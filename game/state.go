package game

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"slices"
)

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrInvalidSetup = errors.New("invalid setup")
)

// Unknown is the location recorded for Mr X when nothing reveals it.
const Unknown = 0

type StateHash uint64

// State is an immutable simulation of a game position. Advance never modifies
// its receiver, and the setup is shared read-only between derived states.
type State struct {
	setup       *Setup
	mrX         Player
	detectives  []Player
	remaining   pieceSet
	log         []LogEntry
	evaderMoved bool // the previous sub-turn was Mr X's
	estimated   bool
	// detectives found on an estimated Mr X location, not yet moved
	unconfirmed pieceSet

	moves  []Move
	winner pieceSet
}

type StateOption func(*State)

// WithLog seeds the travel log.
func WithLog(entries ...LogEntry) StateOption {
	return func(s *State) {
		s.log = slices.Clone(entries)
	}
}

// WithRemaining sets the pieces still to move this turn.
func WithRemaining(pieces ...Piece) StateOption {
	return func(s *State) {
		s.remaining = setOf(pieces...)
	}
}

func WithEvaderMoved(moved bool) StateOption {
	return func(s *State) {
		s.evaderMoved = moved
	}
}

// WithEstimatedEvader marks Mr X's location as a guess from the travel log.
// Detectives already standing there do not capture him until they move.
func WithEstimatedEvader() StateOption {
	return func(s *State) {
		s.estimated = true
	}
}

// NewState validates a position and builds its State. Without options Mr X is
// to move and the travel log is empty.
func NewState(setup *Setup, mrX Player, detectives []Player, options ...StateOption) (*State, error) {
	if setup == nil || setup.Graph == nil {
		return nil, fmt.Errorf("missing graph: %w", ErrInvalidSetup)
	}
	if !mrX.IsMrX() {
		return nil, fmt.Errorf("evader is %s: %w", mrX.Piece, ErrInvalidSetup)
	}
	if mrX.Location != Unknown && !setup.Graph.Has(mrX.Location) {
		return nil, fmt.Errorf("Mr X location %d not on graph: %w", mrX.Location, ErrInvalidSetup)
	}
	if !mrX.Tickets.valid() {
		return nil, fmt.Errorf("negative ticket count for Mr X: %w", ErrInvalidSetup)
	}

	var seen pieceSet
	occupied := make(map[int]Piece, len(detectives))
	for _, d := range detectives {
		if !d.Piece.IsDetective() {
			return nil, fmt.Errorf("%s is not a detective: %w", d.Piece, ErrInvalidSetup)
		}
		if seen.has(d.Piece) {
			return nil, fmt.Errorf("duplicate detective %s: %w", d.Piece, ErrInvalidSetup)
		}
		seen = seen.with(d.Piece)
		if !setup.Graph.Has(d.Location) {
			return nil, fmt.Errorf("%s location %d not on graph: %w", d.Piece, d.Location, ErrInvalidSetup)
		}
		if other, ok := occupied[d.Location]; ok {
			return nil, fmt.Errorf("%s and %s share location %d: %w", other, d.Piece, d.Location, ErrInvalidSetup)
		}
		occupied[d.Location] = d.Piece
		if !d.Tickets.valid() {
			return nil, fmt.Errorf("negative ticket count for %s: %w", d.Piece, ErrInvalidSetup)
		}
	}

	s := &State{
		setup:      setup,
		mrX:        mrX,
		detectives: slices.Clone(detectives),
		remaining:  setOf(MrX),
	}
	for _, option := range options {
		option(s)
	}
	if len(s.log) > len(setup.Rounds) {
		return nil, fmt.Errorf("log has %d entries for %d rounds: %w", len(s.log), len(setup.Rounds), ErrInvalidSetup)
	}
	if s.remaining.empty() {
		return nil, fmt.Errorf("no pieces left to move: %w", ErrInvalidSetup)
	}
	for _, p := range s.remaining.pieces() {
		if p.IsDetective() && !seen.has(p) {
			return nil, fmt.Errorf("remaining piece %s is not in play: %w", p, ErrInvalidSetup)
		}
	}

	if s.estimated {
		for _, d := range s.detectives {
			if d.Location == s.mrX.Location {
				s.unconfirmed = s.unconfirmed.with(d.Piece)
			}
		}
	}

	s.resolve()
	return s, nil
}

func (s *State) resolve() {
	s.moves = s.generateMoves()
	s.winner = s.decideWinner()
}

// AvailableMoves lists the legal moves for the pieces still to move, or
// nothing once the game has a winner. The slice is shared and must not be modified.
func (s *State) AvailableMoves() []Move {
	if !s.winner.empty() {
		return nil
	}
	return s.moves
}

// Advance applies a legal move and returns the resulting state.
func (s *State) Advance(move Move) (*State, error) {
	if move == nil || !slices.Contains(s.AvailableMoves(), move) {
		return nil, fmt.Errorf("%v: %w", move, ErrIllegalMove)
	}

	next := &State{
		setup:      s.setup,
		mrX:        s.mrX,
		detectives: slices.Clone(s.detectives),
		remaining:  s.remaining,
		log:        s.log,

		unconfirmed: s.unconfirmed.without(move.Commenced()),
	}

	mover := move.Commenced()
	if mover.IsMrX() {
		next.log = slices.Clone(s.log)
		next.unconfirmed = 0
		switch m := move.(type) {
		case SingleMove:
			next.log = next.appendLog(next.log, m)
			next.mrX = next.mrX.Use(m.Ticket).At(m.Destination)
		case DoubleMove:
			first, second := m.Halves()
			next.log = next.appendLog(next.log, first)
			next.log = next.appendLog(next.log, second)
			next.mrX = next.mrX.Use(m.Ticket1).Use(m.Ticket2).Use(Double).At(m.Destination2)
		}
	} else {
		m, ok := move.(SingleMove)
		if !ok {
			return nil, fmt.Errorf("detective %s cannot make %v: %w", mover, move, ErrIllegalMove)
		}
		i := next.detectiveIndex(mover)
		next.detectives[i] = next.detectives[i].Use(m.Ticket).At(m.Destination)
		next.mrX = next.mrX.Give(m.Ticket)
	}

	next.remaining = next.remaining.without(mover)
	for _, p := range next.remaining.pieces() {
		if player, _ := next.Player(p); player.Tickets.Total() == 0 {
			next.remaining = next.remaining.without(p)
		}
	}

	if next.remaining.empty() {
		if mover.IsMrX() {
			for _, d := range next.detectives {
				next.remaining = next.remaining.with(d.Piece)
			}
		} else {
			next.remaining = setOf(MrX)
		}
	}
	next.evaderMoved = mover.IsMrX()

	next.resolve()
	return next, nil
}

func (s *State) appendLog(log []LogEntry, m SingleMove) []LogEntry {
	if s.setup.Rounds[len(log)] {
		return append(log, Reveal(m.Ticket, m.Destination))
	}
	return append(log, Hidden(m.Ticket))
}

// Winner returns the winning pieces, empty while the game is undecided.
func (s *State) Winner() []Piece {
	return s.winner.pieces()
}

func (s *State) IsOver() bool {
	return !s.winner.empty()
}

// MrXWon reports whether the game is decided in Mr X's favour.
func (s *State) MrXWon() bool {
	return s.winner.has(MrX)
}

func (s *State) decideWinner() pieceSet {
	detectiveTickets := 0
	var detectives pieceSet
	for _, d := range s.detectives {
		detectiveTickets += d.Tickets.Total()
		detectives = detectives.with(d.Piece)
	}

	if detectiveTickets == 0 {
		return setOf(MrX)
	}
	for _, d := range s.detectives {
		if d.Location == s.mrX.Location && !s.unconfirmed.has(d.Piece) {
			return detectives
		}
	}
	if s.remaining.has(MrX) && len(s.moves) > 0 && !s.hasMrXMove() {
		return detectives
	}
	if len(s.log) == len(s.setup.Rounds) {
		return setOf(MrX)
	}
	if len(s.moves) == 0 {
		if s.remaining.has(MrX) {
			return detectives
		}
		return setOf(MrX)
	}
	return 0
}

func (s *State) hasMrXMove() bool {
	for _, m := range s.moves {
		if m.Commenced().IsMrX() {
			return true
		}
	}
	return false
}

// EvaderLocation returns the true location when Mr X is to move, and otherwise
// the most recently revealed location from the travel log.
func (s *State) EvaderLocation() (int, bool) {
	for _, m := range s.moves {
		if m.Commenced().IsMrX() {
			return m.From(), true
		}
	}
	for i := len(s.log) - 1; i >= 0; i-- {
		if s.log[i].Revealed {
			return s.log[i].Location, true
		}
	}
	return Unknown, false
}

// IsEvaderTurn reports whether Mr X is the piece to move.
func (s *State) IsEvaderTurn() bool {
	return s.remaining.has(MrX)
}

// EvaderMoved reports whether this state directly follows a move by Mr X.
func (s *State) EvaderMoved() bool {
	return s.evaderMoved
}

// Copy returns an independent deep copy.
func (s *State) Copy() *State {
	c := *s
	c.detectives = slices.Clone(s.detectives)
	c.log = slices.Clone(s.log)
	c.moves = slices.Clone(s.moves)
	return &c
}

func (s *State) Setup() *Setup {
	return s.setup
}

// MrX returns the simulated Mr X, whose location may be an estimate.
func (s *State) MrX() Player {
	return s.mrX
}

func (s *State) Detectives() []Player {
	return slices.Clone(s.detectives)
}

func (s *State) Remaining() []Piece {
	return s.remaining.pieces()
}

func (s *State) Log() []LogEntry {
	return slices.Clone(s.log)
}

// Round is the number of rounds Mr X has completed.
func (s *State) Round() int {
	return len(s.log)
}

// Player returns the player for a piece.
func (s *State) Player(p Piece) (Player, bool) {
	if p.IsMrX() {
		return s.mrX, true
	}
	if i := s.detectiveIndex(p); i >= 0 {
		return s.detectives[i], true
	}
	return Player{}, false
}

func (s *State) detectiveIndex(p Piece) int {
	return slices.IndexFunc(s.detectives, func(d Player) bool { return d.Piece == p })
}

// Hash identifies the position. Mr X's location is included, so boards that
// only differ in where he really is hash differently.
func (s *State) Hash() StateHash {
	buf := make([]byte, 0, 256)
	writePlayer := func(p Player) {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(p.Piece))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(p.Location))
		for _, n := range p.Tickets {
			buf = binary.LittleEndian.AppendUint64(buf, uint64(n))
		}
	}

	writePlayer(s.mrX)
	for _, d := range s.detectives {
		writePlayer(d)
	}
	buf = append(buf, uint8(s.remaining))
	for _, e := range s.log {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(e.Ticket))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(e.Location))
	}

	hasher := fnv.New64a()
	hasher.Write(buf)
	return StateHash(hasher.Sum64())
}

func (s *State) String() string {
	return fmt.Sprintf("round %d, Mr X at %d, detectives %v, remaining %v, winner %v",
		len(s.log), s.mrX.Location, s.detectives, s.Remaining(), s.Winner())
}
