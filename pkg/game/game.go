// Package game runs one peer's side of a match: a single cooperative loop
// that reads local input on the local turn and blocks on the opponent's
// message otherwise.
package game

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/qnkhuat/chessduel/pkg/board"
	"github.com/qnkhuat/chessduel/pkg/event"
	"github.com/qnkhuat/chessduel/pkg/peer"
	"github.com/qnkhuat/chessduel/pkg/session"
)

// ErrQuit is returned when the local player asks to leave.
var ErrQuit = errors.New("player quit")

const (
	StatusWaiting = "Waiting for opponent's move..."
)

// Display renders the session and yields input actions.
type Display interface {
	Render(v View)
	// Flash shows the warning for v.Flash for a moment.
	Flash(v View)
	// NextAction blocks until the player presses a bound key.
	NextAction() (event.Action, error)
	// Discard drops actions queued while the opponent was moving.
	Discard()
}

// Channel is the stream to the opponent.
type Channel interface {
	Send(m peer.Message) error
	Receive() (peer.Message, error)
}

// View is everything a display needs to draw one frame.
type View struct {
	*session.Session
	Status     string
	LocalName  string
	RemoteName string
	Clock      *Clock
}

type Result struct {
	Winner board.Color
	Won    bool
	Moves  int
}

type Game struct {
	Session    *session.Session
	Display    Display
	Channel    Channel
	Logger     *zap.Logger
	LocalName  string
	RemoteName string
	Clock      *Clock

	moves int
}

func New(s *session.Session, d Display, ch Channel, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Game{
		Session: s,
		Display: d,
		Channel: ch,
		Logger:  logger,
		Clock:   NewClock(),
	}
}

// Run plays until a king is taken, the player quits or the stream fails.
// Stream failures are returned as peer.ConnectionError or peer.DecodeError.
func (g *Game) Run() (Result, error) {
	s := g.Session
	g.Clock.Start(s.Turn)
	defer g.Clock.Pause()

	for !s.GameOver {
		var err error
		if s.IsLocalTurn() {
			if err = g.localTurn(); err != nil && !errors.Is(err, ErrQuit) {
				err = fmt.Errorf("local turn: %w", err)
			}
		} else if err = g.remoteTurn(); err != nil {
			err = fmt.Errorf("waiting for opponent: %w", err)
		}
		if err != nil {
			if peer.IsDecodeError(err) {
				g.Logger.Warn("bad message from opponent", zap.String("board", "\n"+s.Board.Draw()))
			}
			g.Logger.Warn("game stopped", zap.Error(err))
			g.Display.Render(g.view(err.Error()))
			return Result{Moves: g.moves}, err
		}
	}

	g.Clock.Pause()
	res := Result{Winner: s.Winner, Won: s.Winner == s.Local, Moves: g.moves}
	g.Logger.Info("game over", zap.Stringer("winner", s.Winner), zap.Int("moves", g.moves))
	g.Display.Render(g.view(fmt.Sprintf("%s wins! Press any key to exit.", s.Winner)))
	return res, nil
}

func (g *Game) localTurn() error {
	s := g.Session
	g.Display.Render(g.view(fmt.Sprintf("Current turn: %s", s.Turn)))

	action, err := g.Display.NextAction()
	if err != nil {
		return err
	}

	if dRow, dCol, ok := action.CursorDelta(); ok {
		s.MoveCursor(dRow, dCol)
		return nil
	}

	switch action {
	case event.ActionCancel:
		s.Cancel()
	case event.ActionQuit:
		return ErrQuit
	case event.ActionConfirm:
		commit, err := s.Confirm()
		switch {
		case errors.Is(err, session.ErrInvalidSelection), errors.Is(err, session.ErrInvalidMove):
			g.Logger.Debug("rejected input", zap.Error(err))
			g.Display.Flash(g.view(fmt.Sprintf("Current turn: %s", s.Turn)))
			return nil
		case err != nil:
			return err
		case commit != nil:
			return g.sendCommit(commit)
		}
	}
	return nil
}

func (g *Game) sendCommit(c *session.Commit) error {
	g.moves++
	g.Clock.Start(c.Turn)
	g.Logger.Info("move",
		zap.Stringer("move", c.Move),
		zap.Stringer("piece", c.Piece),
		zap.Stringer("captured", c.Captured),
	)

	if c.KingCaptured {
		return g.Channel.Send(peer.GameOver{})
	}
	return g.Channel.Send(peer.MoveUpdate{
		Board: g.Session.Board,
		Turn:  c.Turn,
		Move:  c.Move.String(),
	})
}

func (g *Game) remoteTurn() error {
	s := g.Session
	g.Display.Render(g.view(StatusWaiting))

	m, err := g.Channel.Receive()
	if err != nil {
		return err
	}

	switch m := m.(type) {
	case peer.MoveUpdate:
		if m.Turn != s.Local {
			return &peer.DecodeError{Err: fmt.Errorf("move update hands the turn to %s", m.Turn)}
		}
		s.ApplyUpdate(m.Board, m.Turn, g.parseMove(m.Move))
		g.moves++
		g.Clock.Start(m.Turn)
		g.Display.Discard()
		g.Logger.Info("opponent moved", zap.String("move", m.Move))
	case peer.GameOver:
		s.ApplyGameOver()
		g.Display.Discard()
		g.Logger.Info("opponent took the king")
	default:
		return &peer.DecodeError{Err: fmt.Errorf("unexpected %s message during play", m.Type())}
	}
	return nil
}

func (g *Game) parseMove(mv string) *session.Move {
	if mv == "" {
		return nil
	}
	if len(mv) == 4 {
		from, ferr := board.ParseSquare(mv[:2])
		to, terr := board.ParseSquare(mv[2:])
		if ferr == nil && terr == nil {
			return &session.Move{From: from, To: to}
		}
	}
	g.Logger.Warn("ignoring unreadable last move", zap.String("move", mv))
	return nil
}

func (g *Game) view(status string) View {
	return View{
		Session:    g.Session,
		Status:     status,
		LocalName:  g.LocalName,
		RemoteName: g.RemoteName,
		Clock:      g.Clock,
	}
}
