package session

import "errors"

var (
	// ErrInvalidSelection means the cursor is not on a piece of the side to move.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrInvalidMove means the cursor is not on a legal destination of the selected piece.
	ErrInvalidMove = errors.New("invalid move")

	// ErrNotYourTurn is returned when the local peer tries to act on the opponent's turn.
	ErrNotYourTurn = errors.New("not your turn")

	ErrGameOver = errors.New("game is over")
)
