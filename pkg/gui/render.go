package gui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/chessduel/pkg/board"
	"github.com/qnkhuat/chessduel/pkg/game"
	"github.com/qnkhuat/chessduel/pkg/session"
)

const (
	leftMargin = 4
	topMargin  = 4

	// board squares are two cells wide
	squareWidth = 2
	infoColumn  = leftMargin + 2 + board.Size*squareWidth + 4

	MinWidth  = infoColumn + 28
	MinHeight = topMargin + board.Size + 6
)

const tooSmall = "Terminal too small, please resize"

// drawText places text at the specified coordinates with the provided style
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawRune places a rune at the specified coordinates with the provided style
func drawRune(s tcell.Screen, x, y int, style tcell.Style, r rune) {
	s.SetContent(x, y, r, nil, style)
}

// DefStyle is the default style for tcell rendering
var DefStyle = tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)

// stylePiece applies the theme's style to a piece based upon its color
func stylePiece(p board.Piece, sqBg tcell.Color, t Theme) tcell.Style {
	pieceStyle := tcell.StyleDefault.Background(sqBg)
	if p.Color == board.White {
		return pieceStyle.Foreground(t.White)
	}
	return pieceStyle.Foreground(t.Black).Bold(true)
}

// squareBg returns the theme's color for sq before any highlight
func squareBg(sq board.Square, t Theme) tcell.Color {
	if (sq.Row+sq.Col)%2 == 1 {
		return t.SquareDark
	}
	return t.SquareLight
}

// screenPos maps a board square to the left cell it occupies.
func screenPos(sq board.Square) (x, y int) {
	return leftMargin + 2 + sq.Col*squareWidth, topMargin + sq.Row
}

// drawSquare draws a board square and its corresponding piece
func drawSquare(s tcell.Screen, sq board.Square, p board.Piece, sqBg tcell.Color, t Theme) {
	x, y := screenPos(sq)
	bg := tcell.StyleDefault.Background(sqBg)
	if p.IsEmpty() {
		s.SetContent(x, y, ' ', nil, bg)
	} else {
		s.SetContent(x, y, []rune(p.Glyph())[0], nil, stylePiece(p, sqBg, t))
	}
	// pad to make the square roughly square
	s.SetContent(x+1, y, ' ', nil, bg)
}

// highlight picks the background for sq, most specific first.
func highlight(v game.View, sq board.Square, warn bool, t Theme) tcell.Color {
	sess := v.Session
	switch {
	case sq == sess.Cursor && !sess.GameOver:
		if warn {
			return t.CursorWarn
		}
		if sess.Mode == session.PieceSelected {
			return t.CursorHeld
		}
		return t.Cursor
	case sess.Mode == session.PieceSelected && sq == sess.Selected:
		return t.CursorHeld
	case sess.Mode == session.PieceSelected && sess.Destinations.Has(sq):
		return t.SquareHint
	case sess.LastMove != nil && (sq == sess.LastMove.From || sq == sess.LastMove.To):
		return t.SquareHigh
	}
	return squareBg(sq, t)
}

// drawBoard draws the board with row 0 at the top
func drawBoard(s tcell.Screen, v game.View, warn bool, t Theme) {
	rankStyle := tcell.StyleDefault.Foreground(t.Rank)
	for r := 0; r < board.Size; r++ {
		drawRune(s, leftMargin, topMargin+r, rankStyle, rune('8'-r))
		for c := 0; c < board.Size; c++ {
			sq := board.Sq(r, c)
			drawSquare(s, sq, v.Board.At(sq), highlight(v, sq, warn, t), t)
		}
	}
	fileStyle := tcell.StyleDefault.Foreground(t.File)
	drawText(s, leftMargin+2, topMargin+board.Size, fileStyle, "a b c d e f g h")
}

// drawMoveLabel displays whose turn it is above the board
func drawMoveLabel(s tcell.Screen, v game.View, t Theme) {
	label := fmt.Sprintf(" %s to Move ", v.Turn)
	if v.GameOver {
		label = " Game Over "
	}
	labelStyle := tcell.StyleDefault.Background(t.MoveLabelBg).Foreground(t.MoveLabelFg)
	drawText(s, leftMargin+2, topMargin-2, labelStyle, label)
}

// drawMsgLabel displays the status line under the board
func drawMsgLabel(s tcell.Screen, msg string, t Theme) {
	labelStyle := tcell.StyleDefault.Foreground(t.Msg)
	drawText(s, leftMargin, topMargin+board.Size+2, labelStyle, msg)
}

// drawPlayers lists the opponent above the local player, matching the
// side of the board each one starts on when the local player is White.
func drawPlayers(s tcell.Screen, v game.View, t Theme) {
	nameStyle := tcell.StyleDefault.Foreground(t.PlayerNames)
	remote := fmt.Sprintf("%s %s", glyphFor(v.Local.Opposite()), nameOr(v.RemoteName, "opponent"))
	local := fmt.Sprintf("%s %s (you)", glyphFor(v.Local), nameOr(v.LocalName, "you"))
	drawText(s, infoColumn, topMargin, nameStyle, remote)
	drawText(s, infoColumn, topMargin+board.Size-1, nameStyle, local)

	if v.Clock == nil {
		return
	}
	clockStyle := tcell.StyleDefault.Foreground(t.Clock)
	drawText(s, infoColumn, topMargin+1, clockStyle, game.FormatDuration(v.Clock.Elapsed(v.Local.Opposite())))
	drawText(s, infoColumn, topMargin+board.Size-2, clockStyle, game.FormatDuration(v.Clock.Elapsed(v.Local)))
}

func glyphFor(c board.Color) string {
	return board.NewPiece(board.King, c).Glyph()
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

// drawSelection shows the held piece and where it can go.
func drawSelection(s tcell.Screen, v game.View, t Theme) {
	if v.Mode != session.PieceSelected {
		return
	}
	style := tcell.StyleDefault.Foreground(t.Rank)
	p := v.Board.At(v.Selected)
	drawText(s, infoColumn, topMargin+3, style, fmt.Sprintf("%s %s", p.Glyph(), v.Selected))
	drawText(s, infoColumn, topMargin+4, style, fmt.Sprintf("-> %s", v.Destinations))
}

// render draws one frame. warn paints the cursor with the warning color.
func render(s tcell.Screen, v game.View, t Theme, warn bool) {
	s.Clear()
	w, h := s.Size()
	if w < MinWidth || h < MinHeight {
		drawText(s, 0, 0, tcell.StyleDefault.Foreground(t.Msg), tooSmall)
		s.Show()
		return
	}
	drawMoveLabel(s, v, t)
	drawBoard(s, v, warn, t)
	drawPlayers(s, v, t)
	drawSelection(s, v, t)
	drawMsgLabel(s, v.Status, t)
	s.Show()
}
