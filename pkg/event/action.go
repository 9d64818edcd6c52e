// Package event turns terminal key presses into the small set of actions
// the game loop understands.
package event

type Action int

const (
	ActionUnknown Action = iota
	ActionCursorUp
	ActionCursorDown
	ActionCursorLeft
	ActionCursorRight
	ActionConfirm
	ActionCancel
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionCursorUp:
		return "Up"
	case ActionCursorDown:
		return "Down"
	case ActionCursorLeft:
		return "Left"
	case ActionCursorRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionCancel:
		return "Cancel"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// CursorDelta returns the (row, col) step of a cursor action and false for any other action.
func (a Action) CursorDelta() (int, int, bool) {
	switch a {
	case ActionCursorUp:
		return -1, 0, true
	case ActionCursorDown:
		return 1, 0, true
	case ActionCursorLeft:
		return 0, -1, true
	case ActionCursorRight:
		return 0, 1, true
	}
	return 0, 0, false
}
