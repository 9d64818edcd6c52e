package peer

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/qnkhuat/chessduel/pkg/board"
)

func pipe(t *testing.T) (*Conn, *Conn) {
	t.Helper()
	a, b := net.Pipe()
	ca, cb := NewConn(a, nil), NewConn(b, nil)
	t.Cleanup(func() {
		ca.Close()
		cb.Close()
	})
	return ca, cb
}

func sendAsync(c *Conn, m Message) <-chan error {
	errc := make(chan error, 1)
	go func() { errc <- c.Send(m) }()
	return errc
}

func afterE2E4() board.Board {
	b := board.Initial()
	b.Move(board.Sq(6, 4), board.Sq(4, 4))
	return b
}

func TestEncodeMoveUpdate(t *testing.T) {
	got, err := Encode(MoveUpdate{Board: afterE2E4(), Turn: board.Black, Move: "e2e4"})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"MsgType":"move","Data":{"Fen":"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR","Turn":"black","Move":"e2e4"}}`
	if string(got) != want {
		t.Errorf("Encode =\n%s\nwant\n%s", got, want)
	}

	got, err = Encode(GameOver{})
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"MsgType":"gameover","Data":{}}`; string(got) != want {
		t.Errorf("Encode(GameOver) = %s, want %s", got, want)
	}
}

func TestSendReceive(t *testing.T) {
	tests := []Message{
		MoveUpdate{Board: afterE2E4(), Turn: board.Black, Move: "e2e4"},
		MoveUpdate{Board: board.Initial(), Turn: board.White},
		GameOver{},
		Hello{Name: "brave-otter", Color: board.Black, SessionID: "abc"},
	}

	for _, want := range tests {
		t.Run(string(want.Type()), func(t *testing.T) {
			a, b := pipe(t)
			errc := sendAsync(a, want)

			got, err := b.Receive()
			if err != nil {
				t.Fatalf("Receive: %v", err)
			}
			if err := <-errc; err != nil {
				t.Fatalf("Send: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("message mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := map[string]string{
		"not json":     `hello there`,
		"unknown type": `{"MsgType":"resign","Data":{}}`,
		"no data":      `{"MsgType":"move"}`,
		"bad fen":      `{"MsgType":"move","Data":{"Fen":"rnbqkbnr/8","Turn":"white"}}`,
		"bad turn":     `{"MsgType":"move","Data":{"Fen":"8/8/8/8/8/8/8/8","Turn":"green"}}`,
		"no turn":      `{"MsgType":"move","Data":{"Fen":"8/8/8/8/8/8/8/8"}}`,
		"bad hello":    `{"MsgType":"hello","Data":[1,2]}`,
	}

	for name, line := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(line))
			if !IsDecodeError(err) {
				t.Fatalf("Decode(%s) err = %v, want DecodeError", line, err)
			}
			if IsConnectionError(err) {
				t.Error("decode failure reported as connection error")
			}
		})
	}
}

func TestReceiveMalformedLine(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	c := NewConn(b, nil)
	defer c.Close()

	go a.Write([]byte("{\"MsgType\":\n"))

	_, err := c.Receive()
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v, want DecodeError", err)
	}
}

func TestReceiveOnClosedStream(t *testing.T) {
	a, b := pipe(t)
	a.Close()

	_, err := b.Receive()
	if !IsConnectionError(err) {
		t.Fatalf("Receive err = %v, want ConnectionError", err)
	}
}

func TestSendOnClosedStream(t *testing.T) {
	a, _ := pipe(t)
	a.Close()

	err := a.Send(GameOver{})
	var ce *ConnectionError
	if !errors.As(err, &ce) || ce.Op != "send" {
		t.Fatalf("Send err = %v, want ConnectionError during send", err)
	}
}

func TestListenDialAndTimeout(t *testing.T) {
	l, err := Listen("127.0.0.1:0", nil)
	if err != nil {
		t.Fatal(err)
	}

	accepted := make(chan *Conn, 1)
	go func() {
		c, err := l.Accept()
		if err != nil {
			t.Error(err)
		}
		accepted <- c
	}()

	joiner, err := Dial(l.Addr().String(), time.Second, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer joiner.Close()
	host := <-accepted
	if host == nil {
		t.FailNow()
	}
	defer host.Close()

	if err := host.Send(MoveUpdate{Board: board.Initial(), Turn: board.Black}); err != nil {
		t.Fatal(err)
	}
	if _, err := joiner.Receive(); err != nil {
		t.Fatal(err)
	}

	if got, want := joiner.RemoteAddr(), l.Addr().String(); got != want {
		t.Errorf("joiner remote addr = %q, want %q", got, want)
	}

	joiner.ReceiveTimeout = 50 * time.Millisecond
	_, err = joiner.Receive()
	var ne net.Error
	if !IsConnectionError(err) || !errors.As(err, &ne) || !ne.Timeout() {
		t.Fatalf("err = %v, want ConnectionError wrapping a timeout", err)
	}
}

func TestHandshake(t *testing.T) {
	a, b := pipe(t)

	type result struct {
		local, remote Hello
		err           error
	}
	hostc := make(chan result, 1)
	go func() {
		l, r, err := HostHandshake(a, "host", board.Black)
		hostc <- result{l, r, err}
	}()

	local, remote, err := JoinHandshake(b, "guest")
	if err != nil {
		t.Fatalf("JoinHandshake: %v", err)
	}
	host := <-hostc
	if host.err != nil {
		t.Fatalf("HostHandshake: %v", host.err)
	}

	if local.Color != board.White || remote.Color != board.Black {
		t.Errorf("joiner plays %s against %s", local.Color, remote.Color)
	}
	if host.remote.Name != "guest" || remote.Name != "host" {
		t.Errorf("names not exchanged: %q %q", host.remote.Name, remote.Name)
	}
	if local.SessionID != host.local.SessionID || local.SessionID == "" {
		t.Errorf("session ids differ: %q %q", local.SessionID, host.local.SessionID)
	}
}

func TestHandshakeRejectsMove(t *testing.T) {
	a, b := pipe(t)
	errc := sendAsync(a, MoveUpdate{Board: board.Initial(), Turn: board.White})

	_, _, err := JoinHandshake(b, "guest")
	if !IsDecodeError(err) {
		t.Fatalf("err = %v, want DecodeError", err)
	}
	<-errc
}

func TestNetworkAndAddress(t *testing.T) {
	tests := []struct {
		in, network, address string
	}{
		{"", "tcp", ":1998"},
		{"localhost", "tcp", "localhost:1998"},
		{"10.0.0.2:4000", "tcp", "10.0.0.2:4000"},
		{"/tmp/chess.sock", "unix", "/tmp/chess.sock"},
	}
	for _, tt := range tests {
		network, address := NetworkAndAddress(tt.in)
		if network != tt.network || address != tt.address {
			t.Errorf("NetworkAndAddress(%q) = %s %s, want %s %s", tt.in, network, address, tt.network, tt.address)
		}
	}
}
