package board

import "fmt"

type Color int

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "Unknown"
	}
}

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// MarshalText writes the lower case color name used on the wire and in config files.
func (c Color) MarshalText() ([]byte, error) {
	switch c {
	case White:
		return []byte("white"), nil
	case Black:
		return []byte("black"), nil
	}
	return nil, fmt.Errorf("board: unknown color %d", int(c))
}

func (c *Color) UnmarshalText(text []byte) error {
	color, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = color
	return nil
}

func ParseColor(s string) (Color, error) {
	switch s {
	case "white", "White", "w":
		return White, nil
	case "black", "Black", "b":
		return Black, nil
	}
	return White, fmt.Errorf("board: unknown color %q", s)
}

type Kind int

const (
	NoKind Kind = iota
	Pawn
	Rook
	Knight
	Bishop
	Queen
	King
)

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "Pawn"
	case Rook:
		return "Rook"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "Empty"
	}
}

// Piece is a (kind, color) pair. The zero value is Empty.
type Piece struct {
	Kind  Kind
	Color Color
}

var Empty = Piece{}

func NewPiece(k Kind, c Color) Piece {
	return Piece{Kind: k, Color: c}
}

func (p Piece) IsEmpty() bool {
	return p.Kind == NoKind
}

// IsOpponent reports whether p is a piece of the other side. Empty is never an opponent.
func (p Piece) IsOpponent(c Color) bool {
	return !p.IsEmpty() && p.Color != c
}

func (p Piece) BelongsTo(c Color) bool {
	return !p.IsEmpty() && p.Color == c
}

var whiteGlyphs = map[Kind]string{Pawn: "♙", Rook: "♖", Knight: "♘", Bishop: "♗", Queen: "♕", King: "♔"}
var blackGlyphs = map[Kind]string{Pawn: "♟", Rook: "♜", Knight: "♞", Bishop: "♝", Queen: "♛", King: "♚"}

// Glyph returns the unicode chess symbol, or a space for Empty.
func (p Piece) Glyph() string {
	if p.IsEmpty() {
		return " "
	}
	if p.Color == White {
		return whiteGlyphs[p.Kind]
	}
	return blackGlyphs[p.Kind]
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "Empty"
	}
	return p.Color.String() + " " + p.Kind.String()
}
