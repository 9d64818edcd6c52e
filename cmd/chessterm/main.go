package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/qnkhuat/chessduel/pkg/config"
	"github.com/qnkhuat/chessduel/pkg/game"
	"github.com/qnkhuat/chessduel/pkg/gui"
	"github.com/qnkhuat/chessduel/pkg/logging"
	"github.com/qnkhuat/chessduel/pkg/peer"
	"github.com/qnkhuat/chessduel/pkg/session"
)

const usage = `usage:
  chessterm [flags] host [addr]   wait for an opponent on addr (default %s)
  chessterm [flags] join addr     connect to a waiting host
  chessterm [flags]               choose from a setup form

flags:
`

var (
	errColor  = color.New(color.FgRed, color.Bold)
	infoColor = color.New(color.FgCyan)
	winColor  = color.New(color.FgGreen, color.Bold)
	lossColor = color.New(color.FgYellow)
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("chessterm", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), usage, config.DefaultAddress)
		fs.PrintDefaults()
	}
	cfg, err := config.Parse(fs, args, config.Client)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		errColor.Fprintln(os.Stderr, err)
		return 2
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		errColor.Fprintln(os.Stderr, "chessterm needs an interactive terminal")
		return 1
	}

	logger, err := logging.New(cfg.Log.Path, "client", cfg.Log.Level)
	if err != nil {
		errColor.Fprintln(os.Stderr, err)
		return 1
	}
	defer logger.Sync()

	setup, err := resolveSetup(cfg, fs.Args())
	if errors.Is(err, gui.ErrSetupCancelled) {
		return 0
	}
	if err != nil {
		errColor.Fprintln(os.Stderr, err)
		fs.Usage()
		return 2
	}

	conn, local, remote, err := connect(cfg, setup, logger)
	if err != nil {
		logger.Error("could not start match", zap.Error(err))
		errColor.Fprintln(os.Stderr, err)
		return 1
	}
	defer conn.Close()
	conn.ReceiveTimeout = cfg.Sync.ReceiveTimeout
	logger.Info("match started",
		zap.String("local", local.Name),
		zap.Stringer("color", local.Color),
		zap.String("remote", remote.Name),
		zap.String("remote_addr", conn.RemoteAddr()),
		zap.String("session", local.SessionID),
	)

	res, err := play(cfg, conn, local, remote, logger)
	return report(res, err, remote.Name)
}

// resolveSetup turns the positional arguments into a setup, asking with
// the form when there are none.
func resolveSetup(cfg *config.Config, args []string) (gui.Setup, error) {
	setup := gui.Setup{
		Role:    gui.RoleHost,
		Address: cfg.Address,
		Name:    cfg.Name,
		Color:   cfg.Color,
	}
	if len(args) == 0 {
		return gui.RunSetup(setup)
	}

	switch args[0] {
	case "host":
		if len(args) > 2 {
			return setup, errors.New("host takes at most one address")
		}
		if len(args) == 2 {
			setup.Address = args[1]
		}
	case "join":
		if len(args) != 2 {
			return setup, errors.New("join needs exactly one address")
		}
		setup.Role = gui.RoleJoin
		setup.Address = args[1]
	default:
		return setup, fmt.Errorf("unknown command %q", args[0])
	}
	return setup, nil
}

func connect(cfg *config.Config, setup gui.Setup, logger *zap.Logger) (conn *peer.Conn, local, remote peer.Hello, err error) {
	if setup.Role == gui.RoleJoin {
		infoColor.Printf("Connecting to %s...\n", setup.Address)
		conn, err = peer.Dial(setup.Address, cfg.Sync.DialTimeout, logger)
		if err != nil {
			return nil, local, remote, err
		}
		local, remote, err = peer.JoinHandshake(conn, setup.Name)
	} else {
		l, lerr := peer.Listen(setup.Address, logger)
		if lerr != nil {
			return nil, local, remote, lerr
		}
		infoColor.Printf("Waiting for an opponent on %s (you play %s)...\n", l.Addr(), setup.Color)
		conn, err = l.Accept()
		if err != nil {
			return nil, local, remote, err
		}
		local, remote, err = peer.HostHandshake(conn, setup.Name, setup.Color)
	}
	if err != nil {
		conn.Close()
		return nil, local, remote, err
	}
	return conn, local, remote, nil
}

// errLeft marks a game the local player abandoned while waiting.
var errLeft = errors.New("left the game")

func play(cfg *config.Config, conn *peer.Conn, local, remote peer.Hello, logger *zap.Logger) (game.Result, error) {
	theme, err := gui.ThemeByName(cfg.UI.Theme)
	if err != nil {
		return game.Result{}, err
	}
	ts, err := tcell.NewScreen()
	if err != nil {
		return game.Result{}, err
	}

	var quit int32
	screen, err := gui.NewScreen(ts, gui.Options{
		Theme:         theme,
		FlashDuration: cfg.UI.FlashDuration,
		OnQuit: func() {
			atomic.StoreInt32(&quit, 1)
			conn.Close()
		},
		Tick:   time.Second,
		Logger: logger,
	})
	if err != nil {
		return game.Result{}, err
	}
	defer screen.Close()

	g := game.New(session.New(local.Color), screen, conn, logger)
	g.LocalName = local.Name
	g.RemoteName = remote.Name

	res, err := g.Run()
	if err == nil {
		screen.WaitKey()
		return res, nil
	}
	if atomic.LoadInt32(&quit) == 1 && peer.IsConnectionError(err) {
		err = errLeft
	}
	return res, err
}

func report(res game.Result, err error, opponent string) int {
	switch {
	case errors.Is(err, game.ErrQuit), errors.Is(err, errLeft):
		infoColor.Println("You left the game.")
		return 0
	case peer.IsConnectionError(err):
		errColor.Fprintf(os.Stderr, "Lost connection to %s: %v\n", opponent, err)
		return 1
	case peer.IsDecodeError(err):
		errColor.Fprintf(os.Stderr, "Received a bad message from %s: %v\n", opponent, err)
		return 1
	case err != nil:
		errColor.Fprintln(os.Stderr, err)
		return 1
	case res.Won:
		winColor.Printf("You won against %s in %d moves!\n", opponent, res.Moves)
	default:
		lossColor.Printf("%s wins after %d moves.\n", res.Winner, res.Moves)
	}
	return 0
}
