// Package session implements the per-peer turn controller: cursor
// navigation, the select-then-move cycle and commits to the local board.
// Both peers run an identical Session; they are kept in step by replacing
// the board and turn wholesale whenever the opponent commits.
package session

import (
	"fmt"

	"github.com/qnkhuat/chessduel/pkg/board"
	"github.com/qnkhuat/chessduel/pkg/movegen"
)

type Mode int

const (
	Idle Mode = iota
	PieceSelected
)

func (m Mode) String() string {
	if m == PieceSelected {
		return "PieceSelected"
	}
	return "Idle"
}

// Flash tells the display which warning, if any, the last confirm raised.
type Flash int

const (
	FlashNone Flash = iota
	FlashInvalidSelection
	FlashInvalidMove
)

// Move is a committed displacement, kept only to highlight the last move.
type Move struct {
	From board.Square
	To   board.Square
}

func (m Move) String() string {
	return fmt.Sprintf("%s%s", m.From, m.To)
}

// Commit describes the move a successful Confirm applied to the board.
type Commit struct {
	Move
	Piece        board.Piece
	Captured     board.Piece
	KingCaptured bool
	// Turn is the side to move after the commit.
	Turn board.Color
}

type Session struct {
	Board board.Board
	Turn  board.Color
	Local board.Color

	Cursor       board.Square
	Mode         Mode
	Selected     board.Square
	Destinations movegen.SquareSet

	Flash    Flash
	LastMove *Move

	GameOver bool
	Winner   board.Color
}

// New starts a session for the peer playing local. White moves first.
func New(local board.Color) *Session {
	return &Session{
		Board: board.Initial(),
		Turn:  board.White,
		Local: local,
	}
}

func (s *Session) IsLocalTurn() bool {
	return !s.GameOver && s.Turn == s.Local
}

// MoveCursor shifts the cursor, clamping at the board edges.
func (s *Session) MoveCursor(dRow, dCol int) {
	s.Flash = FlashNone
	s.Cursor = s.Cursor.Offset(dRow, dCol).Clamp()
}

// Confirm selects the piece under the cursor when idle, or moves the
// selected piece to the cursor when one is selected. A non-nil Commit is
// returned only when the board changed.
func (s *Session) Confirm() (*Commit, error) {
	s.Flash = FlashNone
	if s.GameOver {
		return nil, ErrGameOver
	}
	if !s.IsLocalTurn() {
		return nil, ErrNotYourTurn
	}

	if s.Mode == Idle {
		return nil, s.selectPiece()
	}
	return s.commit()
}

func (s *Session) selectPiece() error {
	p := s.Board.At(s.Cursor)
	if !p.BelongsTo(s.Turn) {
		s.Flash = FlashInvalidSelection
		return fmt.Errorf("%w: %s on %s", ErrInvalidSelection, p, s.Cursor)
	}

	s.Selected = s.Cursor
	s.Destinations = movegen.LegalDestinations(p, s.Cursor, &s.Board)
	s.Mode = PieceSelected
	return nil
}

func (s *Session) commit() (*Commit, error) {
	if !s.Destinations.Has(s.Cursor) {
		s.Flash = FlashInvalidMove
		return nil, fmt.Errorf("%w: %s%s", ErrInvalidMove, s.Selected, s.Cursor)
	}

	mv := Move{From: s.Selected, To: s.Cursor}
	piece := s.Board.At(mv.From)
	captured := s.Board.Move(mv.From, mv.To)

	s.Turn = s.Turn.Opposite()
	s.LastMove = &mv
	s.clearSelection()

	c := &Commit{
		Move:         mv,
		Piece:        piece,
		Captured:     captured,
		KingCaptured: captured.Kind == board.King && captured.IsOpponent(piece.Color),
		Turn:         s.Turn,
	}
	if c.KingCaptured {
		s.GameOver = true
		s.Winner = piece.Color
	}
	return c, nil
}

// Cancel drops the current selection. It does nothing when idle.
func (s *Session) Cancel() {
	s.Flash = FlashNone
	if s.Mode == PieceSelected {
		s.clearSelection()
	}
}

func (s *Session) clearSelection() {
	s.Mode = Idle
	s.Selected = board.Square{}
	s.Destinations = nil
}

// ApplyUpdate replaces the board and turn with the opponent's snapshot.
func (s *Session) ApplyUpdate(b board.Board, turn board.Color, last *Move) {
	s.Board = b
	s.Turn = turn
	s.LastMove = last
	s.Flash = FlashNone
	s.clearSelection()
}

// ApplyGameOver records that the opponent captured the local king.
func (s *Session) ApplyGameOver() {
	s.GameOver = true
	s.Winner = s.Local.Opposite()
	s.clearSelection()
}
