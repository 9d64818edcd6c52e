package event

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestFromKey(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		want Action
	}{
		{tcell.KeyUp, 0, ActionCursorUp},
		{tcell.KeyRune, 'j', ActionCursorDown},
		{tcell.KeyLeft, 0, ActionCursorLeft},
		{tcell.KeyRune, 'L', ActionCursorRight},
		{tcell.KeyEnter, 0, ActionConfirm},
		{tcell.KeyRune, ' ', ActionConfirm},
		{tcell.KeyEscape, 0, ActionCancel},
		{tcell.KeyCtrlC, 0, ActionQuit},
		{tcell.KeyRune, 'q', ActionQuit},
		{tcell.KeyRune, 'x', ActionUnknown},
		{tcell.KeyF1, 0, ActionUnknown},
	}

	for _, tt := range tests {
		ev := tcell.NewEventKey(tt.key, tt.r, tcell.ModNone)
		if got := FromKey(ev); got != tt.want {
			t.Errorf("FromKey(%v, %q) = %s, want %s", tt.key, tt.r, got, tt.want)
		}
	}
}

func TestCursorDelta(t *testing.T) {
	if dr, dc, ok := ActionCursorUp.CursorDelta(); !ok || dr != -1 || dc != 0 {
		t.Errorf("Up delta = (%d,%d,%v)", dr, dc, ok)
	}
	if _, _, ok := ActionConfirm.CursorDelta(); ok {
		t.Error("Confirm should not move the cursor")
	}
}
