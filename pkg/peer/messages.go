package peer

import (
	"encoding/json"

	"github.com/qnkhuat/chessduel/pkg/board"
)

type MessageType string

const (
	TypeMessageHello    MessageType = "hello"
	TypeMessageMove     MessageType = "move"
	TypeMessageGameOver MessageType = "gameover"
)

type Message interface {
	Type() MessageType
}

// MessageTransport is the envelope written to the stream, one per line.
type MessageTransport struct {
	MsgType MessageType
	Data    json.RawMessage
}

// Hello is exchanged once, before the first move. Color is the color the
// sender plays.
type Hello struct {
	Name      string
	Color     board.Color
	SessionID string
}

func (m Hello) Type() MessageType {
	return TypeMessageHello
}

// MoveUpdate carries the full board and turn pointer after a commit. The
// receiver replaces its own state with it.
type MoveUpdate struct {
	Board board.Board
	Turn  board.Color
	// Move is the committed move in coordinate notation, for display only.
	Move string
}

func (m MoveUpdate) Type() MessageType {
	return TypeMessageMove
}

type moveUpdateData struct {
	Fen  string
	Turn *board.Color
	Move string `json:",omitempty"`
}

func (m MoveUpdate) MarshalJSON() ([]byte, error) {
	turn := m.Turn
	return json.Marshal(moveUpdateData{Fen: m.Board.FEN(), Turn: &turn, Move: m.Move})
}

func (m *MoveUpdate) UnmarshalJSON(data []byte) error {
	var d moveUpdateData
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	if d.Turn == nil {
		return errMissingTurn
	}
	b, err := board.ParseFEN(d.Fen)
	if err != nil {
		return err
	}
	*m = MoveUpdate{Board: b, Turn: *d.Turn, Move: d.Move}
	return nil
}

// GameOver is sent instead of a MoveUpdate when the committed move took the
// opponent's king.
type GameOver struct{}

func (m GameOver) Type() MessageType {
	return TypeMessageGameOver
}

// Encode wraps m in its transport envelope.
func Encode(m Message) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return json.Marshal(MessageTransport{MsgType: m.Type(), Data: data})
}

// Decode parses one envelope line.
func Decode(line []byte) (Message, error) {
	var transport MessageTransport
	if err := json.Unmarshal(line, &transport); err != nil {
		return nil, &DecodeError{Err: err, Payload: line}
	}

	var (
		m   Message
		err error
	)
	switch transport.MsgType {
	case TypeMessageHello:
		var message Hello
		err = unmarshalData(transport.Data, &message)
		m = message
	case TypeMessageMove:
		var message MoveUpdate
		err = unmarshalData(transport.Data, &message)
		m = message
	case TypeMessageGameOver:
		m = GameOver{}
	default:
		return nil, &DecodeError{Err: errUnknownType(transport.MsgType), Payload: line}
	}
	if err != nil {
		return nil, &DecodeError{Err: err, Payload: line}
	}
	return m, nil
}

func unmarshalData(data json.RawMessage, v interface{}) error {
	if len(data) == 0 {
		return errMissingData
	}
	return json.Unmarshal(data, v)
}
