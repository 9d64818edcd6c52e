package event

import (
	"github.com/gdamore/tcell/v2"
)

type Keybinding struct {
	k tcell.Key
	r rune

	a Action
}

var keybindings = []*Keybinding{
	{k: tcell.KeyUp, a: ActionCursorUp},
	{r: 'k', a: ActionCursorUp},
	{r: 'K', a: ActionCursorUp},
	{k: tcell.KeyDown, a: ActionCursorDown},
	{r: 'j', a: ActionCursorDown},
	{r: 'J', a: ActionCursorDown},
	{k: tcell.KeyLeft, a: ActionCursorLeft},
	{r: 'h', a: ActionCursorLeft},
	{r: 'H', a: ActionCursorLeft},
	{k: tcell.KeyRight, a: ActionCursorRight},
	{r: 'l', a: ActionCursorRight},
	{r: 'L', a: ActionCursorRight},
	{k: tcell.KeyEnter, a: ActionConfirm},
	{r: ' ', a: ActionConfirm},
	{k: tcell.KeyEscape, a: ActionCancel},
	{k: tcell.KeyCtrlC, a: ActionQuit},
	{r: 'q', a: ActionQuit},
	{r: 'Q', a: ActionQuit},
}

// FromKey maps a key press to an action. Unbound keys give ActionUnknown.
func FromKey(ev *tcell.EventKey) Action {
	k := ev.Key()
	for _, bind := range keybindings {
		if bind.k != 0 && bind.k == k {
			return bind.a
		}
		if bind.r != 0 && k == tcell.KeyRune && bind.r == ev.Rune() {
			return bind.a
		}
	}
	return ActionUnknown
}
