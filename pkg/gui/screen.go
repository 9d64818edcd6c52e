// Package gui draws a match on a tcell screen and turns key presses into
// event actions for the game loop.
package gui

import (
	"errors"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/qnkhuat/chessduel/pkg/event"
	"github.com/qnkhuat/chessduel/pkg/game"
)

// ErrClosed is returned by NextAction once the screen has been closed.
var ErrClosed = errors.New("screen closed")

const actionBuffer = 32

type Options struct {
	Theme         Theme
	FlashDuration time.Duration
	// OnQuit runs on the event goroutine when the quit key is pressed,
	// even while the game loop is blocked on the opponent.
	OnQuit func()
	// Tick redraws the last frame periodically so the clock moves. Zero disables it.
	Tick   time.Duration
	Logger *zap.Logger
}

// Screen implements game.Display on top of a tcell.Screen.
type Screen struct {
	screen  tcell.Screen
	opts    Options
	actions chan event.Action
	done    chan struct{}

	mu   sync.Mutex
	last *game.View

	closeOnce sync.Once
	quitOnce  sync.Once
}

// NewScreen initializes s and starts reading its events.
func NewScreen(s tcell.Screen, opts Options) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	if opts.Theme.Name == "" {
		opts.Theme = ThemeBasic
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	s.SetStyle(DefStyle)
	s.HideCursor()
	s.Clear()

	sc := &Screen{
		screen:  s,
		opts:    opts,
		actions: make(chan event.Action, actionBuffer),
		done:    make(chan struct{}),
	}
	go sc.pump()
	if opts.Tick > 0 {
		go sc.tick(opts.Tick)
	}
	return sc, nil
}

func (sc *Screen) pump() {
	defer close(sc.actions)
	for {
		ev := sc.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			sc.screen.Sync()
			sc.redraw()
		case *tcell.EventKey:
			a := event.FromKey(ev)
			if a == event.ActionQuit && sc.opts.OnQuit != nil {
				sc.quitOnce.Do(sc.opts.OnQuit)
			}
			select {
			case sc.actions <- a:
			default:
				sc.opts.Logger.Debug("dropping key, queue full", zap.Stringer("action", a))
			}
		}
	}
}

func (sc *Screen) tick(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-sc.done:
			return
		case <-t.C:
			sc.redraw()
		}
	}
}

func (sc *Screen) redraw() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.last != nil {
		render(sc.screen, *sc.last, sc.opts.Theme, false)
	}
}

// snapshot copies the session so redraws from other goroutines never see
// the game loop mutating it.
func snapshot(v game.View) game.View {
	if v.Session != nil {
		s := *v.Session
		v.Session = &s
	}
	return v
}

func (sc *Screen) Render(v game.View) {
	v = snapshot(v)
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.last = &v
	render(sc.screen, v, sc.opts.Theme, false)
}

// Flash paints the cursor in the warning color for the flash duration,
// then draws v normally.
func (sc *Screen) Flash(v game.View) {
	v = snapshot(v)
	sc.mu.Lock()
	sc.last = &v
	render(sc.screen, v, sc.opts.Theme, true)
	sc.mu.Unlock()

	select {
	case <-time.After(sc.opts.FlashDuration):
	case <-sc.done:
		return
	}
	sc.redraw()
}

func (sc *Screen) NextAction() (event.Action, error) {
	a, ok := <-sc.actions
	if !ok {
		return event.ActionUnknown, ErrClosed
	}
	return a, nil
}

func (sc *Screen) Discard() {
	for {
		select {
		case _, ok := <-sc.actions:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// WaitKey blocks until any key is pressed or the screen closes.
func (sc *Screen) WaitKey() {
	sc.NextAction()
}

// Close restores the terminal. It is safe to call more than once.
func (sc *Screen) Close() {
	sc.closeOnce.Do(func() {
		close(sc.done)
		sc.screen.Fini()
	})
}
