// Package sshd lets people play over SSH: every session gets its own
// pseudo-terminal running the chessterm client.
package sshd

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"strings"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
	"go.uber.org/zap"
	gossh "golang.org/x/crypto/ssh"

	"github.com/qnkhuat/chessduel/pkg/config"
	"github.com/qnkhuat/chessduel/pkg/peer"
)

const errNoPty = "non-interactive terminals are not supported\n"

const sshUsage = `usage:
  ssh -t <server> host [addr]
  ssh -t <server> join addr
`

var errBadCommand = errors.New("unsupported command")

type Server struct {
	*ssh.Server
	client    string
	clientLog string
	logger    *zap.Logger
}

// New builds the server from cfg. Nothing listens until Serve or
// ListenAndServe is called.
func New(cfg config.SSHDConfig, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Client == "" {
		return nil, fmt.Errorf("%w: sshd.client is empty", config.ErrInvalidConfig)
	}

	signer, err := HostSigner(cfg.HostKey)
	if err != nil {
		return nil, err
	}

	s := &Server{client: cfg.Client, clientLog: cfg.ClientLog, logger: logger}
	s.Server = &ssh.Server{
		Addr:        cfg.Addr,
		IdleTimeout: cfg.IdleTimeout,
		Handler:     s.handle,
	}
	s.AddHostKey(signer)
	return s, nil
}

// HostSigner loads the PEM key at path. An empty path gives a fresh
// ed25519 key, so clients will see a new fingerprint after each restart.
func HostSigner(path string) (gossh.Signer, error) {
	if path == "" {
		_, key, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("generate host key: %w", err)
		}
		return gossh.NewSignerFromKey(key)
	}

	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read host key: %w", err)
	}
	signer, err := gossh.ParsePrivateKey(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parse host key %s: %w", path, err)
	}
	return signer, nil
}

// Serve accepts sessions on l until the server is closed.
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("ssh server listening", zap.Stringer("addr", l.Addr()))
	err := s.Server.Serve(l)
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) ListenAndServe() error {
	addr := s.Addr
	if addr == "" {
		addr = config.DefaultSSHAddress
	}
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(l)
}

func (s *Server) handle(sess ssh.Session) {
	logger := s.logger.With(
		zap.String("user", sess.User()),
		zap.String("remote", sess.RemoteAddr().String()),
	)

	args, err := s.clientArgs(sess.Command())
	if err != nil {
		logger.Warn("rejecting command", zap.Strings("command", sess.Command()), zap.Error(err))
		io.WriteString(sess, fmt.Sprintf("%v\n%s", err, sshUsage))
		sess.Exit(2)
		return
	}

	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		logger.Info("rejecting session without pty")
		io.WriteString(sess, errNoPty)
		sess.Exit(1)
		return
	}

	cmdCtx, cancelCmd := context.WithCancel(sess.Context())
	defer cancelCmd()

	cmd := exec.CommandContext(cmdCtx, s.client, args...)
	cmd.Env = append(os.Environ(), fmt.Sprintf("TERM=%s", ptyReq.Term))

	f, err := pty.Start(cmd)
	if err != nil {
		logger.Error("failed to start client", zap.Error(err))
		io.WriteString(sess, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		sess.Exit(1)
		return
	}
	defer f.Close()
	logger.Info("session started", zap.Strings("args", sess.Command()))

	setWinsize(f, ptyReq.Window)
	go func() {
		for win := range winCh {
			setWinsize(f, win)
		}
	}()

	go io.Copy(f, sess)
	io.Copy(sess, f)

	code := 0
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		} else {
			code = 1
		}
	}
	logger.Info("session ended", zap.Int("exit", code))
	sess.Exit(code)
}

// clientArgs checks the ssh command line and builds the client's
// arguments. Remote users may only pick `host [addr]` or `join addr`; the
// config and log flags are always the server's own.
func (s *Server) clientArgs(command []string) ([]string, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("%w: a command is required", errBadCommand)
	}
	for _, arg := range command {
		if strings.HasPrefix(arg, "-") {
			return nil, fmt.Errorf("%w: flag %q is not allowed", errBadCommand, arg)
		}
	}

	switch command[0] {
	case "host":
		if len(command) > 2 {
			return nil, fmt.Errorf("%w: host takes at most one address", errBadCommand)
		}
	case "join":
		if len(command) != 2 {
			return nil, fmt.Errorf("%w: join needs exactly one address", errBadCommand)
		}
	default:
		return nil, fmt.Errorf("%w: %q", errBadCommand, command[0])
	}
	if len(command) == 2 {
		if err := checkAddr(command[1]); err != nil {
			return nil, err
		}
	}

	args := []string{"-config=", "-log=" + s.clientLog}
	return append(args, command...), nil
}

// checkAddr only lets TCP addresses through; a path would be a unix socket
// on the server's filesystem.
func checkAddr(addr string) error {
	if network, _ := peer.NetworkAndAddress(addr); network != "tcp" || strings.ContainsAny(addr, `/\`) {
		return fmt.Errorf("%w: address %q", errBadCommand, addr)
	}
	return nil
}

func setWinsize(f *os.File, w ssh.Window) {
	pty.Setsize(f, &pty.Winsize{Rows: uint16(w.Height), Cols: uint16(w.Width)})
}
