package board

import (
	"fmt"

	"github.com/notnil/chess"
)

const Size = 8

// Square addresses one cell. Row 0 is rank 8, column 0 is file a.
type Square struct {
	Row int
	Col int
}

func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < Size && s.Col >= 0 && s.Col < Size
}

func (s Square) Offset(dRow, dCol int) Square {
	return Square{Row: s.Row + dRow, Col: s.Col + dCol}
}

// Clamp pulls s back inside the board.
func (s Square) Clamp() Square {
	return Square{Row: clamp(s.Row), Col: clamp(s.Col)}
}

// Chess converts s to the square index used by the notation library, where A1 is 0.
func (s Square) Chess() chess.Square {
	return getSquare(chess.File(s.Col), chess.Rank(Size-1-s.Row))
}

// String returns algebraic notation such as "e2".
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return s.Chess().String()
}

func fromChess(sq chess.Square) Square {
	return Square{Row: Size - 1 - int(sq.Rank()), Col: int(sq.File())}
}

func getSquare(f chess.File, r chess.Rank) chess.Square {
	return chess.Square((int(r) * Size) + int(f))
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v >= Size {
		return Size - 1
	}
	return v
}

// ParseSquare reads algebraic notation such as "e2".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Square{}, fmt.Errorf("board: bad square %q", s)
	}
	return fromChess(getSquare(chess.File(s[0]-'a'), chess.Rank(s[1]-'1'))), nil
}
