package board

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

// fenSuffix completes a placement field into a full FEN so the notation
// library can decode it. Only the placement is meaningful to us.
const fenSuffix = " w - - 0 1"

var toChess = map[Piece]chess.Piece{
	NewPiece(King, White):   chess.WhiteKing,
	NewPiece(Queen, White):  chess.WhiteQueen,
	NewPiece(Rook, White):   chess.WhiteRook,
	NewPiece(Bishop, White): chess.WhiteBishop,
	NewPiece(Knight, White): chess.WhiteKnight,
	NewPiece(Pawn, White):   chess.WhitePawn,
	NewPiece(King, Black):   chess.BlackKing,
	NewPiece(Queen, Black):  chess.BlackQueen,
	NewPiece(Rook, Black):   chess.BlackRook,
	NewPiece(Bishop, Black): chess.BlackBishop,
	NewPiece(Knight, Black): chess.BlackKnight,
	NewPiece(Pawn, Black):   chess.BlackPawn,
}

var fromChessPiece = func() map[chess.Piece]Piece {
	m := make(map[chess.Piece]Piece, len(toChess))
	for p, cp := range toChess {
		m[cp] = p
	}
	return m
}()

// FEN returns the piece placement field of the board, rank 8 first.
func (b *Board) FEN() string {
	m := make(map[chess.Square]chess.Piece)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if p := b[r][c]; !p.IsEmpty() {
				m[Sq(r, c).Chess()] = toChess[p]
			}
		}
	}
	return chess.NewBoard(m).String()
}

// ParseFEN decodes a placement field. A full FEN string is accepted as well;
// everything after the placement is ignored.
func ParseFEN(placement string) (Board, error) {
	placement = strings.TrimSpace(placement)
	if i := strings.IndexByte(placement, ' '); i >= 0 {
		placement = placement[:i]
	}
	if strings.Count(placement, "/") != Size-1 {
		return Board{}, fmt.Errorf("board: placement %q does not have %d ranks", placement, Size)
	}

	opt, err := chess.FEN(placement + fenSuffix)
	if err != nil {
		return Board{}, fmt.Errorf("board: decode placement %q: %w", placement, err)
	}

	var b Board
	for sq, cp := range chess.NewGame(opt).Position().Board().SquareMap() {
		p, ok := fromChessPiece[cp]
		if !ok {
			continue
		}
		b.Set(fromChess(sq), p)
	}
	return b, nil
}
