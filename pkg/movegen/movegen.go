// Package movegen computes where a single piece may go on a board.
//
// Legality here is geometric: bounds, blocking and occupancy. Nothing is
// filtered for leaving the own king attacked; losing the king ends the game.
package movegen

import (
	"github.com/qnkhuat/chessduel/pkg/board"
)

type direction struct {
	dRow, dCol int
}

var (
	orthogonal  = []direction{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonal    = []direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	neighbours  = append(append([]direction{}, orthogonal...), diagonal...)
	knightJumps = []direction{{-2, -1}, {-2, 1}, {2, -1}, {2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}}
)

// LegalDestinations returns every square p standing on from may move to.
// It never mutates b.
func LegalDestinations(p board.Piece, from board.Square, b *board.Board) SquareSet {
	moves := NewSquareSet()
	if p.IsEmpty() || !from.Valid() {
		return moves
	}

	switch p.Kind {
	case board.Pawn:
		pawnMoves(moves, p.Color, from, b)
	case board.Rook:
		slide(moves, p.Color, from, b, orthogonal)
	case board.Bishop:
		slide(moves, p.Color, from, b, diagonal)
	case board.Queen:
		// Rook and bishop rays from the same square cover the queen.
		moves.Union(LegalDestinations(board.NewPiece(board.Rook, p.Color), from, b))
		moves.Union(LegalDestinations(board.NewPiece(board.Bishop, p.Color), from, b))
	case board.Knight:
		step(moves, p.Color, from, b, knightJumps)
	case board.King:
		step(moves, p.Color, from, b, neighbours)
	}
	return moves
}

// Forward is the row delta a pawn of color c advances by.
func Forward(c board.Color) int {
	if c == board.White {
		return -1
	}
	return 1
}

// StartRow is the rank pawns of color c may double-step from.
func StartRow(c board.Color) int {
	if c == board.White {
		return 6
	}
	return 1
}

func pawnMoves(moves SquareSet, c board.Color, from board.Square, b *board.Board) {
	dir := Forward(c)

	one := from.Offset(dir, 0)
	if one.Valid() && b.At(one).IsEmpty() {
		moves.Add(one)

		two := from.Offset(2*dir, 0)
		if from.Row == StartRow(c) && two.Valid() && b.At(two).IsEmpty() {
			moves.Add(two)
		}
	}

	for _, dCol := range []int{-1, 1} {
		target := from.Offset(dir, dCol)
		if target.Valid() && b.At(target).IsOpponent(c) {
			moves.Add(target)
		}
	}
}

func slide(moves SquareSet, c board.Color, from board.Square, b *board.Board, dirs []direction) {
	for _, d := range dirs {
		for sq := from.Offset(d.dRow, d.dCol); sq.Valid(); sq = sq.Offset(d.dRow, d.dCol) {
			target := b.At(sq)
			if target.IsEmpty() {
				moves.Add(sq)
				continue
			}
			if target.IsOpponent(c) {
				moves.Add(sq)
			}
			break
		}
	}
}

func step(moves SquareSet, c board.Color, from board.Square, b *board.Board, dirs []direction) {
	for _, d := range dirs {
		sq := from.Offset(d.dRow, d.dCol)
		if !sq.Valid() {
			continue
		}
		if target := b.At(sq); target.IsEmpty() || target.IsOpponent(c) {
			moves.Add(sq)
		}
	}
}
