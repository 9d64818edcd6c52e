package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/qnkhuat/chessduel/pkg/board"
)

// Clock accumulates how long each side has spent on its turns. It is only
// shown to the players and never ends a game.
type Clock struct {
	mu      sync.Mutex
	elapsed [2]time.Duration
	running board.Color
	since   time.Time
	paused  bool
	now     func() time.Time
}

func NewClock() *Clock {
	return &Clock{paused: true, now: time.Now}
}

// Start runs the clock of color c, charging any running side first.
func (cl *Clock) Start(c board.Color) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.pause()
	cl.running = c
	cl.since = cl.now()
	cl.paused = false
}

func (cl *Clock) Pause() {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.pause()
}

func (cl *Clock) pause() {
	if cl.paused {
		return
	}
	cl.elapsed[cl.running] += cl.now().Sub(cl.since)
	cl.paused = true
}

// Elapsed returns the total time of c, including the running turn.
func (cl *Clock) Elapsed(c board.Color) time.Duration {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	d := cl.elapsed[c]
	if !cl.paused && cl.running == c {
		d += cl.now().Sub(cl.since)
	}
	return d
}

func (cl *Clock) String() string {
	return fmt.Sprintf("White %s  Black %s", FormatDuration(cl.Elapsed(board.White)), FormatDuration(cl.Elapsed(board.Black)))
}

func FormatDuration(d time.Duration) string {
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
