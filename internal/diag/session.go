package diag

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/benbjohnson/clock"
)

// Session is a live diagnostic stream opened against a running
// process. It yields an ordered, unbounded, non-restartable sequence
// of log records; the stream ends only when the remote process closes
// it.
type Session struct {
	conn net.Conn
	dec  *json.Decoder
	clk  clock.Clock
}

// Attach opens a session against pid and renders every formatted log
// message to w until the remote process closes the stream. The
// session is released on every exit path. Any open or mid-stream
// failure is returned as-is; there is no partial or degraded view.
func Attach(pid int, w io.Writer) error {
	s, err := Open(pid)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.Stream(w)
}

// Open dials the diagnostic endpoint of pid and subscribes at
// informational level for all categories.
func Open(pid int) (*Session, error) {
	conn, err := dialEndpoint(pid)
	if err != nil {
		return nil, fmt.Errorf("open diagnostic session for pid %d: %w", pid, err)
	}
	s := newSession(conn, clock.New())
	if err := s.subscribe(SubscribeRequest{Level: "info", Categories: "*"}); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

func newSession(conn net.Conn, clk clock.Clock) *Session {
	return &Session{conn: conn, dec: json.NewDecoder(conn), clk: clk}
}

func (s *Session) subscribe(req SubscribeRequest) error {
	if err := json.NewEncoder(s.conn).Encode(req); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	return nil
}

// Next blocks until the next formatted log message arrives, skipping
// events of any other kind. It returns io.EOF once the remote process
// closes the stream.
func (s *Session) Next() (LogRecord, error) {
	for {
		var ev Event
		if err := s.dec.Decode(&ev); err != nil {
			if errors.Is(err, io.EOF) {
				return LogRecord{}, io.EOF
			}
			return LogRecord{}, fmt.Errorf("read diagnostic event: %w", err)
		}
		if ev.Kind != EventKindMessage {
			continue
		}
		return LogRecord{
			Captured: s.clk.Now(),
			Level:    ev.Level,
			Logger:   ev.Logger,
			Message:  ev.Message,
		}, nil
	}
}

// Stream renders records to w in arrival order until the stream
// closes. Arrival order is emission order: the transport is a single
// ordered stream with no reordering.
func (s *Session) Stream(w io.Writer) error {
	for {
		rec, err := s.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := rec.Render(w); err != nil {
			return err
		}
	}
}

// Close releases the session.
func (s *Session) Close() error {
	return s.conn.Close()
}
