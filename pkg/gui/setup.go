package gui

import (
	"errors"

	"github.com/rivo/tview"

	"github.com/qnkhuat/chessduel/pkg/board"
)

// ErrSetupCancelled is returned when the player leaves the setup form.
var ErrSetupCancelled = errors.New("setup cancelled")

type Role int

const (
	RoleHost Role = iota
	RoleJoin
)

// Setup holds the choices made on the start form.
type Setup struct {
	Role    Role
	Address string
	Name    string
	Color   board.Color
}

var (
	roleOptions  = []string{"Host a game", "Join a game"}
	colorOptions = []string{board.White.String(), board.Black.String()}
)

// newSetupForm builds the form; done is called with the final choice.
func newSetupForm(initial Setup, done func(Setup, error)) *tview.Form {
	choice := initial
	form := tview.NewForm().SetButtonsAlign(tview.AlignCenter)
	form.AddDropDown("Mode", roleOptions, int(initial.Role), func(_ string, i int) {
		choice.Role = Role(i)
	}).AddInputField("Address", initial.Address, 24, nil, func(text string) {
		choice.Address = text
	}).AddInputField("Name", initial.Name, 24, nil, func(text string) {
		choice.Name = text
	}).AddDropDown("Color (host)", colorOptions, int(initial.Color), func(_ string, i int) {
		choice.Color = board.Color(i)
	}).AddButton("Start", func() {
		done(choice, nil)
	}).AddButton("Quit", func() {
		done(choice, ErrSetupCancelled)
	})
	form.SetBorder(true).SetTitle(" chessterm ").SetTitleAlign(tview.AlignCenter)
	return form
}

// RunSetup shows the start form on the terminal and returns the choice.
func RunSetup(initial Setup) (Setup, error) {
	app := tview.NewApplication()
	var (
		result Setup
		err    = ErrSetupCancelled
	)
	form := newSetupForm(initial, func(s Setup, e error) {
		result, err = s, e
		app.Stop()
	})
	if runErr := app.SetRoot(form, true).Run(); runErr != nil {
		return Setup{}, runErr
	}
	return result, err
}
