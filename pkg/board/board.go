// Package board holds the 8x8 position model shared by both peers.
package board

import "strings"

// Board is a row-major grid. It is a value type: assigning a Board copies every square.
type Board [Size][Size]Piece

var backRank = [Size]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Initial returns a fresh copy of the starting layout with black on row 0.
func Initial() Board {
	var b Board
	for c := 0; c < Size; c++ {
		b[0][c] = NewPiece(backRank[c], Black)
		b[1][c] = NewPiece(Pawn, Black)
		b[6][c] = NewPiece(Pawn, White)
		b[7][c] = NewPiece(backRank[c], White)
	}
	return b
}

func (b *Board) At(s Square) Piece {
	return b[s.Row][s.Col]
}

func (b *Board) Set(s Square, p Piece) {
	b[s.Row][s.Col] = p
}

// Move displaces the piece on from onto to and empties from. It returns
// whatever stood on to before, which is discarded from the board.
func (b *Board) Move(from, to Square) Piece {
	captured := b.At(to)
	b.Set(to, b.At(from))
	b.Set(from, Empty)
	return captured
}

// Draw renders the board as glyph rows for logs.
func (b *Board) Draw() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			p := b[r][c]
			if p.IsEmpty() {
				sb.WriteString("·")
			} else {
				sb.WriteString(p.Glyph())
			}
			if c < Size-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
