// Package peer carries game state between the two players over one
// ordered, reliable byte stream. Messages are newline delimited JSON
// envelopes. There are no acknowledgements and no retries: any failure
// ends the session.
package peer

import (
	"bufio"
	"errors"
	"io"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultPort = ":1998"

	// maxMessageSize bounds one envelope line. A full board is well under 1KB.
	maxMessageSize = 64 * 1024
)

type readDeadliner interface {
	SetReadDeadline(t time.Time) error
}

// Conn is one end of the peer stream. Send and Receive must not be called
// concurrently; the game loop alternates between them.
type Conn struct {
	rw      io.ReadWriteCloser
	scanner *bufio.Scanner
	logger  *zap.Logger

	// ReceiveTimeout bounds each Receive when the stream supports read
	// deadlines. Zero waits forever.
	ReceiveTimeout time.Duration
}

func NewConn(rw io.ReadWriteCloser, logger *zap.Logger) *Conn {
	if logger == nil {
		logger = zap.NewNop()
	}
	scanner := bufio.NewScanner(rw)
	scanner.Buffer(make([]byte, 0, 4096), maxMessageSize)
	return &Conn{rw: rw, scanner: scanner, logger: logger}
}

// Send writes one message. It fails with a ConnectionError when the stream
// is closed or the write does not go through.
func (c *Conn) Send(m Message) error {
	b, err := Encode(m)
	if err != nil {
		return err
	}
	b = append(b, '\n')

	if _, err := c.rw.Write(b); err != nil {
		return &ConnectionError{Op: "send", Err: err}
	}
	c.logger.Debug("sent message", zap.String("type", string(m.Type())), zap.Int("bytes", len(b)))
	return nil
}

// Receive blocks until one complete message arrives.
func (c *Conn) Receive() (Message, error) {
	if d, ok := c.rw.(readDeadliner); ok && c.ReceiveTimeout > 0 {
		if err := d.SetReadDeadline(time.Now().Add(c.ReceiveTimeout)); err != nil {
			return nil, &ConnectionError{Op: "receive", Err: err}
		}
		defer d.SetReadDeadline(time.Time{})
	}

	if !c.scanner.Scan() {
		err := c.scanner.Err()
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &DecodeError{Err: err}
		}
		if err == nil {
			err = io.EOF
		}
		return nil, &ConnectionError{Op: "receive", Err: err}
	}

	m, err := Decode(c.scanner.Bytes())
	if err != nil {
		return nil, err
	}
	c.logger.Debug("received message", zap.String("type", string(m.Type())))
	return m, nil
}

func (c *Conn) Close() error {
	return c.rw.Close()
}

// RemoteAddr returns the address of the other peer, or an empty string for
// streams that are not network connections.
func (c *Conn) RemoteAddr() string {
	if nc, ok := c.rw.(net.Conn); ok && nc.RemoteAddr() != nil {
		return nc.RemoteAddr().String()
	}
	return ""
}

// NetworkAndAddress picks unix for anything that looks like a socket path
// and tcp otherwise.
func NetworkAndAddress(address string) (string, string) {
	address = strings.TrimSpace(address)
	if strings.ContainsRune(address, '/') {
		return "unix", address
	}
	if address == "" {
		address = DefaultPort
	} else if !strings.ContainsRune(address, ':') {
		address += DefaultPort
	}
	return "tcp", address
}

// Listener waits for the single opponent of a hosted game.
type Listener struct {
	l      net.Listener
	logger *zap.Logger
}

func Listen(address string, logger *zap.Logger) (*Listener, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	network, address := NetworkAndAddress(address)
	l, err := net.Listen(network, address)
	if err != nil {
		return nil, &ConnectionError{Op: "listen", Err: err}
	}
	logger.Info("listening", zap.String("network", network), zap.String("address", l.Addr().String()))
	return &Listener{l: l, logger: logger}, nil
}

func (l *Listener) Addr() net.Addr {
	return l.l.Addr()
}

// Accept takes the first connection and stops listening.
func (l *Listener) Accept() (*Conn, error) {
	defer l.l.Close()

	conn, err := l.l.Accept()
	if err != nil {
		return nil, &ConnectionError{Op: "accept", Err: err}
	}
	l.logger.Info("opponent connected", zap.String("remote", conn.RemoteAddr().String()))
	return NewConn(conn, l.logger), nil
}

func (l *Listener) Close() error {
	return l.l.Close()
}

// Dial connects to a hosted game. It does not retry.
func Dial(address string, timeout time.Duration, logger *zap.Logger) (*Conn, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	network, address := NetworkAndAddress(address)
	conn, err := net.DialTimeout(network, address, timeout)
	if err != nil {
		return nil, &ConnectionError{Op: "dial", Err: err}
	}
	logger.Info("connected", zap.String("network", network), zap.String("address", address))
	return NewConn(conn, logger), nil
}
