package board

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const initialPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

func TestInitialLayout(t *testing.T) {
	b := Initial()

	if got := b.At(Sq(0, 4)); got != NewPiece(King, Black) {
		t.Errorf("e8 holds %s, want Black King", got)
	}
	if got := b.At(Sq(7, 3)); got != NewPiece(Queen, White) {
		t.Errorf("d1 holds %s, want White Queen", got)
	}
	for c := 0; c < Size; c++ {
		if got := b.At(Sq(6, c)); got != NewPiece(Pawn, White) {
			t.Errorf("row 6 col %d holds %s, want White Pawn", c, got)
		}
		if got := b.At(Sq(1, c)); got != NewPiece(Pawn, Black) {
			t.Errorf("row 1 col %d holds %s, want Black Pawn", c, got)
		}
		for r := 2; r < 6; r++ {
			if !b.At(Sq(r, c)).IsEmpty() {
				t.Errorf("square %s should be empty", Sq(r, c))
			}
		}
	}
}

func TestInitialIsACopy(t *testing.T) {
	a := Initial()
	a.Move(Sq(6, 4), Sq(4, 4))

	b := Initial()
	if !b.At(Sq(4, 4)).IsEmpty() {
		t.Fatal("mutating one initial board leaked into another")
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		from, to Square
		captured Piece
	}{
		{"onto empty", Sq(6, 4), Sq(4, 4), Empty},
		{"onto opponent", Sq(7, 0), Sq(0, 0), NewPiece(Rook, Black)},
		{"onto own piece", Sq(7, 1), Sq(6, 3), NewPiece(Pawn, White)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Initial()
			moved := b.At(tt.from)

			captured := b.Move(tt.from, tt.to)
			if captured != tt.captured {
				t.Errorf("captured %s, want %s", captured, tt.captured)
			}
			if got := b.At(tt.to); got != moved {
				t.Errorf("destination holds %s, want %s", got, moved)
			}
			if !b.At(tt.from).IsEmpty() {
				t.Errorf("source still holds %s", b.At(tt.from))
			}
		})
	}
}

func TestSquareString(t *testing.T) {
	tests := map[Square]string{
		Sq(6, 4): "e2",
		Sq(4, 4): "e4",
		Sq(0, 0): "a8",
		Sq(7, 7): "h1",
		Sq(8, 0): "-",
	}
	for sq, want := range tests {
		if got := sq.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", sq, got, want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Sq(-1, 9).Clamp(); got != Sq(0, 7) {
		t.Errorf("Clamp = %v, want (0,7)", got)
	}
}

func TestFEN(t *testing.T) {
	b := Initial()
	if got := b.FEN(); got != initialPlacement {
		t.Errorf("FEN() = %q, want %q", got, initialPlacement)
	}

	b.Move(Sq(6, 4), Sq(4, 4))
	if got, want := b.FEN(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR"; got != want {
		t.Errorf("FEN() after e2e4 = %q, want %q", got, want)
	}

	parsed, err := ParseFEN(b.FEN())
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if diff := cmp.Diff(b, parsed); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFENAcceptsFullString(t *testing.T) {
	b, err := ParseFEN(initialPlacement + " b KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if diff := cmp.Diff(Initial(), b); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFENErrors(t *testing.T) {
	for _, s := range []string{
		"",
		"rnbqkbnr/pppppppp/8/8",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR",
	} {
		if _, err := ParseFEN(s); err == nil {
			t.Errorf("ParseFEN(%q) succeeded, want error", s)
		}
	}
}

func TestColorText(t *testing.T) {
	for _, c := range []Color{White, Black} {
		text, err := c.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Color
		if err := back.UnmarshalText(text); err != nil {
			t.Fatal(err)
		}
		if back != c {
			t.Errorf("text round trip of %s gave %s", c, back)
		}
	}
	var c Color
	if err := c.UnmarshalText([]byte("green")); err == nil {
		t.Error("expected error for unknown color")
	}
}

func TestParseSquare(t *testing.T) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			want := Sq(r, c)
			got, err := ParseSquare(want.String())
			if err != nil || got != want {
				t.Errorf("ParseSquare(%q) = %v, %v", want.String(), got, err)
			}
		}
	}
	for _, bad := range []string{"", "e", "i1", "a9", "e22", "E2"} {
		if _, err := ParseSquare(bad); err == nil {
			t.Errorf("ParseSquare(%q) succeeded", bad)
		}
	}
}

func TestDraw(t *testing.T) {
	b := Initial()
	rows := strings.Split(strings.TrimSuffix(b.Draw(), "\n"), "\n")
	if len(rows) != Size {
		t.Fatalf("Draw gave %d rows", len(rows))
	}
	if rows[0] != "♜ ♞ ♝ ♛ ♚ ♝ ♞ ♜" {
		t.Errorf("rank 8 = %q", rows[0])
	}
	if rows[4] != "· · · · · · · ·" {
		t.Errorf("rank 4 = %q", rows[4])
	}
	if rows[7] != "♖ ♘ ♗ ♕ ♔ ♗ ♘ ♖" {
		t.Errorf("rank 1 = %q", rows[7])
	}
}
