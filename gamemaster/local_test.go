package gamemaster

import (
	"errors"
	"testing"

	"scotlandyard/game"
	"scotlandyard/game/gametest"
)

func newLocal(t *testing.T) *Local {
	t.Helper()
	engine, err := NewLocal(
		game.NewSetup(gametest.Line(6), gametest.Rounds(5)),
		game.NewPlayer(game.MrX, game.NewTickets(5, 0, 0, 0, 0), 3),
		[]game.Player{game.NewPlayer(game.Red, game.DetectiveTickets(), 1)},
	)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return engine
}

func TestLocalEngineInit(t *testing.T) {
	engine := newLocal(t)
	board, getUpdate := engine.Init()

	if board == nil {
		t.Fatal("expected a board, got nil")
	}
	if len(board.AvailableMoves()) != 2 {
		t.Errorf("expected 2 moves for Mr X, got %v", board.AvailableMoves())
	}

	// Check that getUpdate returns nil if no moves have been played
	move, newBoard := getUpdate()
	if move != nil || newBoard != nil {
		t.Errorf("expected no update yet, got move=%v board=%v", move, newBoard)
	}
}

func TestLocalEnginePlay_ValidMove(t *testing.T) {
	engine := newLocal(t)
	_, getUpdate := engine.Init()

	move := game.SingleMove{Piece: game.MrX, Source: 3, Ticket: game.Taxi, Destination: 4}
	if err := engine.Play(move); err != nil {
		t.Fatalf("expected valid move, got error: %v", err)
	}

	got, board := getUpdate()
	if got != move {
		t.Errorf("expected update for %v, got %v", move, got)
	}
	if log := board.TravelLog(); len(log) != 1 || log[0].Revealed {
		t.Errorf("expected one hidden log entry, got %v", log)
	}
	if engine.MrX().Location != 4 {
		t.Errorf("expected Mr X at 4, got %d", engine.MrX().Location)
	}

	// Updates are consumed once
	if move, _ := getUpdate(); move != nil {
		t.Errorf("expected no further update, got %v", move)
	}
}

func TestLocalEngineFingerprint(t *testing.T) {
	engine := newLocal(t)
	engine.Init()
	initial := engine.Fingerprint()

	if err := engine.Play(game.SingleMove{Piece: game.MrX, Source: 3, Ticket: game.Taxi, Destination: 4}); err != nil {
		t.Fatalf("expected valid move, got error: %v", err)
	}
	if engine.Fingerprint() == initial {
		t.Error("expected the fingerprint to change after a move")
	}

	engine.Init()
	if got := engine.Fingerprint(); got != initial {
		t.Errorf("expected fingerprint %x after Init, got %x", initial, got)
	}
}

func TestLocalEnginePlay_InvalidMove(t *testing.T) {
	engine := newLocal(t)
	engine.Init()

	move := game.SingleMove{Piece: game.Red, Source: 1, Ticket: game.Taxi, Destination: 2}
	if err := engine.Play(move); !errors.Is(err, game.ErrIllegalMove) {
		t.Errorf("expected illegal move error, got %v", err)
	}
}

func TestLocalEnginePlay_GameOver(t *testing.T) {
	engine := newLocal(t)
	engine.Init()

	moves := []game.Move{
		game.SingleMove{Piece: game.MrX, Source: 3, Ticket: game.Taxi, Destination: 2},
		game.SingleMove{Piece: game.Red, Source: 1, Ticket: game.Taxi, Destination: 2},
	}
	for _, move := range moves {
		if err := engine.Play(move); err != nil {
			t.Fatalf("unexpected error for %v: %v", move, err)
		}
	}

	winner := engine.Winner()
	if len(winner) != 1 || winner[0] != game.Red {
		t.Errorf("expected Red to win, got %v", winner)
	}

	err := engine.Play(game.SingleMove{Piece: game.MrX, Source: 2, Ticket: game.Taxi, Destination: 3})
	if !errors.Is(err, ErrGameOver) {
		t.Errorf("expected game over error, got %v", err)
	}

	// Init starts over
	board, _ := engine.Init()
	if len(board.AvailableMoves()) != 2 {
		t.Errorf("expected a fresh game after Init, got %v", board.AvailableMoves())
	}
}
