package peer

import (
	"errors"
	"fmt"
)

var (
	errMissingData = errors.New("message has no data")
	errMissingTurn = errors.New("move update has no turn")
)

type errUnknownType MessageType

func (e errUnknownType) Error() string {
	return fmt.Sprintf("unknown message type %q", string(e))
}

// ConnectionError reports a closed or broken stream. The session cannot
// continue after one.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error during %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// DecodeError reports a payload that could not be turned into a message, or
// a message that does not fit the point of the protocol it arrived at.
type DecodeError struct {
	Err     error
	Payload []byte
}

func (e *DecodeError) Error() string {
	if len(e.Payload) > 0 {
		return fmt.Sprintf("decode error: %v (payload %q)", e.Err, truncate(e.Payload, 80))
	}
	return fmt.Sprintf("decode error: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsConnectionError reports whether err wraps a ConnectionError.
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// IsDecodeError reports whether err wraps a DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
