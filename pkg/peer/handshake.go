package peer

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/qnkhuat/chessduel/pkg/board"
)

// HostHandshake introduces the hosting peer, which plays color, and waits
// for the joiner's reply. The joiner must take the other color and echo the
// session id.
func HostHandshake(c *Conn, name string, color board.Color) (local, remote Hello, err error) {
	local = Hello{Name: name, Color: color, SessionID: uuid.New().String()}
	if err := c.Send(local); err != nil {
		return local, remote, err
	}

	remote, err = receiveHello(c)
	if err != nil {
		return local, remote, err
	}
	if remote.Color != color.Opposite() || remote.SessionID != local.SessionID {
		return local, remote, &DecodeError{Err: fmt.Errorf("joiner replied as %s in session %q", remote.Color, remote.SessionID)}
	}
	c.logger.Info("handshake done", zap.String("session", local.SessionID), zap.String("opponent", remote.Name))
	return local, remote, nil
}

// JoinHandshake waits for the host's introduction and answers with the
// opposite color.
func JoinHandshake(c *Conn, name string) (local, remote Hello, err error) {
	remote, err = receiveHello(c)
	if err != nil {
		return local, remote, err
	}
	if _, perr := uuid.Parse(remote.SessionID); perr != nil {
		return local, remote, &DecodeError{Err: fmt.Errorf("host sent bad session id: %w", perr)}
	}

	local = Hello{Name: name, Color: remote.Color.Opposite(), SessionID: remote.SessionID}
	if err := c.Send(local); err != nil {
		return local, remote, err
	}
	c.logger.Info("handshake done", zap.String("session", local.SessionID), zap.String("opponent", remote.Name))
	return local, remote, nil
}

func receiveHello(c *Conn) (Hello, error) {
	m, err := c.Receive()
	if err != nil {
		return Hello{}, err
	}
	h, ok := m.(Hello)
	if !ok {
		return Hello{}, &DecodeError{Err: fmt.Errorf("expected hello, got %s", m.Type())}
	}
	return h, nil
}
