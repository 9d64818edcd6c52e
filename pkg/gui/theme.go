package gui

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
)

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name        string
	MoveLabelBg tcell.Color
	MoveLabelFg tcell.Color
	SquareDark  tcell.Color
	SquareLight tcell.Color
	SquareHigh  tcell.Color // last move
	SquareHint  tcell.Color // legal destinations
	Cursor      tcell.Color // cursor while idle
	CursorHeld  tcell.Color // cursor while a piece is selected
	CursorWarn  tcell.Color // cursor flashing after invalid input
	White       tcell.Color
	Black       tcell.Color
	Msg         tcell.Color
	Rank        tcell.Color
	File        tcell.Color
	PlayerNames tcell.Color
	Clock       tcell.Color
}

// ThemeBasic is the default theme
var ThemeBasic = Theme{
	Name:        "basic",
	MoveLabelBg: tcell.Color252,
	MoveLabelFg: tcell.ColorBlack,
	SquareDark:  tcell.Color188,
	SquareLight: tcell.Color230,
	SquareHigh:  tcell.Color223,
	SquareHint:  tcell.Color157,
	Cursor:      tcell.Color117,
	CursorHeld:  tcell.Color114,
	CursorWarn:  tcell.Color226,
	White:       tcell.Color232,
	Black:       tcell.Color232,
	Msg:         tcell.Color160,
	Rank:        tcell.Color247,
	File:        tcell.Color247,
	PlayerNames: tcell.ColorDefault,
	Clock:       tcell.Color247,
}

// ThemeClassic mimics a plain eight color curses terminal.
var ThemeClassic = Theme{
	Name:        "classic",
	MoveLabelBg: tcell.ColorYellow,
	MoveLabelFg: tcell.ColorBlack,
	SquareDark:  tcell.ColorMaroon,
	SquareLight: tcell.ColorBlack,
	SquareHigh:  tcell.ColorOlive,
	SquareHint:  tcell.ColorGreen,
	Cursor:      tcell.ColorNavy,
	CursorHeld:  tcell.ColorGreen,
	CursorWarn:  tcell.ColorYellow,
	White:       tcell.ColorWhite,
	Black:       tcell.ColorWhite,
	Msg:         tcell.ColorYellow,
	Rank:        tcell.ColorWhite,
	File:        tcell.ColorWhite,
	PlayerNames: tcell.ColorWhite,
	Clock:       tcell.ColorWhite,
}

var themes = map[string]Theme{
	ThemeBasic.Name:   ThemeBasic,
	ThemeClassic.Name: ThemeClassic,
}

// ThemeByName returns a built-in theme. An empty name gives ThemeBasic.
func ThemeByName(name string) (Theme, error) {
	if name == "" {
		return ThemeBasic, nil
	}
	if t, ok := themes[name]; ok {
		return t, nil
	}
	return Theme{}, fmt.Errorf("theme: no theme named %q (have %v)", name, ThemeNames())
}

func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
