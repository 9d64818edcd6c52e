package movegen

import (
	"sort"
	"strings"

	"github.com/qnkhuat/chessduel/pkg/board"
)

// SquareSet is an unordered set of destination squares.
type SquareSet map[board.Square]struct{}

func NewSquareSet(squares ...board.Square) SquareSet {
	s := make(SquareSet, len(squares))
	for _, sq := range squares {
		s.Add(sq)
	}
	return s
}

func (s SquareSet) Add(sq board.Square) {
	s[sq] = struct{}{}
}

func (s SquareSet) Has(sq board.Square) bool {
	_, ok := s[sq]
	return ok
}

func (s SquareSet) Len() int {
	return len(s)
}

// Union adds every square of o to s.
func (s SquareSet) Union(o SquareSet) SquareSet {
	for sq := range o {
		s.Add(sq)
	}
	return s
}

// Sorted returns the squares in row-major order.
func (s SquareSet) Sorted() []board.Square {
	out := make([]board.Square, 0, len(s))
	for sq := range s {
		out = append(out, sq)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

func (s SquareSet) String() string {
	names := make([]string, 0, len(s))
	for _, sq := range s.Sorted() {
		names = append(names, sq.String())
	}
	return "{" + strings.Join(names, " ") + "}"
}
