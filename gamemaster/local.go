// Package gamemaster holds the authoritative game: it knows where Mr X really
// is and only accepts legal moves.
package gamemaster

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"scotlandyard/game"
	"scotlandyard/utils"
)

var ErrGameOver = errors.New("game is over")

// UpdateGetter returns the oldest move not yet seen and the board after it,
// or nils when there is nothing new.
type UpdateGetter func() (game.Move, game.Board)

// Engine is the host a game loop plays against.
type Engine interface {
	Init() (game.Board, UpdateGetter)
	Play(game.Move) error
	Winner() []game.Piece
	MrX() game.Player
	Fingerprint() game.StateHash
}

type update struct {
	move  game.Move
	state *game.State
}

type Local struct {
	mu      sync.Mutex
	initial *game.State
	state   *game.State
	updates []update
}

var _ Engine = (*Local)(nil)

func NewLocal(setup *game.Setup, mrX game.Player, detectives []game.Player) (*Local, error) {
	state, err := game.NewState(setup, mrX, detectives)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}
	return &Local{initial: state, state: state}, nil
}

// Init restarts the game and returns its first board.
func (e *Local) Init() (game.Board, UpdateGetter) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = e.initial
	e.updates = nil

	return e.state, func() (game.Move, game.Board) {
		e.mu.Lock()
		defer e.mu.Unlock()

		if len(e.updates) == 0 {
			return nil, nil
		}
		u := e.updates[0]
		e.updates = e.updates[1:]
		return u.move, u.state
	}
}

func (e *Local) Play(move game.Move) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.IsOver() {
		return fmt.Errorf("%v: %w", move, ErrGameOver)
	}
	if utils.FindIndex(e.state.AvailableMoves(), move) < 0 {
		return fmt.Errorf("%v: %w", move, game.ErrIllegalMove)
	}

	next, err := e.state.Advance(move)
	if err != nil {
		return err
	}
	e.state = next
	e.updates = append(e.updates, update{move: move, state: next})
	return nil
}

// Fingerprint identifies the current position, Mr X's true location included.
func (e *Local) Fingerprint() game.StateHash {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Hash()
}

func (e *Local) Winner() []game.Piece {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.state.Winner())
}

// MrX is the true Mr X, which only the host knows.
func (e *Local) MrX() game.Player {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.MrX()
}
