package diag

import (
	"encoding/json"
	"net"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// subscriberBuffer is the per-session queue depth. A session that
// cannot keep up loses events rather than stalling the logger.
const subscriberBuffer = 256

// Server publishes the current process's log stream on its diagnostic
// endpoint. It implements io.Writer so it can be attached to the
// logger as an extra sink: every line it receives is one zerolog JSON
// event, which it re-frames and fans out to attached sessions.
type Server struct {
	ln net.Listener

	mu     sync.Mutex
	subs   map[*subscriber]struct{}
	closed bool
}

type subscriber struct {
	conn net.Conn
	min  zerolog.Level
	ch   chan []byte
}

// NewServer opens the diagnostic endpoint for the current process and
// starts accepting sessions.
func NewServer() (*Server, error) {
	ln, err := listenEndpoint(os.Getpid())
	if err != nil {
		return nil, err
	}
	return newServer(ln), nil
}

func newServer(ln net.Listener) *Server {
	s := &Server{
		ln:   ln,
		subs: make(map[*subscriber]struct{}),
	}
	go s.accept()
	return s
}

func (s *Server) accept() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		go s.serve(conn)
	}
}

// serve performs the session handshake: one subscribe request in, a
// hello event out, then the subscriber receives log events until it
// disconnects or the server closes.
func (s *Server) serve(conn net.Conn) {
	var req SubscribeRequest
	if err := json.NewDecoder(conn).Decode(&req); err != nil {
		conn.Close()
		return
	}

	min, err := zerolog.ParseLevel(req.Level)
	if err != nil || req.Level == "" {
		min = zerolog.InfoLevel
	}

	sub := &subscriber{
		conn: conn,
		min:  min,
		ch:   make(chan []byte, subscriberBuffer),
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.subs[sub] = struct{}{}
	hello, _ := json.Marshal(Event{Kind: EventKindHello, PID: os.Getpid()})
	sub.ch <- append(hello, '\n')
	s.mu.Unlock()

	// Writer pump: delivery order is queue order, one ordered stream
	// per session.
	go func() {
		for p := range sub.ch {
			if _, err := sub.conn.Write(p); err != nil {
				break
			}
		}
		sub.conn.Close()
	}()

	// Sessions send nothing after the subscribe request; a read
	// returning means the peer went away.
	go func() {
		buf := make([]byte, 1)
		for {
			if _, err := sub.conn.Read(buf); err != nil {
				break
			}
		}
		s.drop(sub)
	}()
}

func (s *Server) drop(sub *subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[sub]; ok {
		delete(s.subs, sub)
		close(sub.ch)
	}
}

// Write fans one zerolog JSON line out to every attached session at or
// above its subscribed level. Lines without a message are control
// events of the logger itself and are not re-framed. Write never
// blocks on a slow session and never reports an error to the logger.
func (s *Server) Write(p []byte) (int, error) {
	ev, ok := decodeLoggerLine(p)
	if !ok {
		return len(p), nil
	}

	line, err := json.Marshal(ev)
	if err != nil {
		return len(p), nil
	}
	line = append(line, '\n')

	lvl, lvlErr := zerolog.ParseLevel(ev.Level)

	s.mu.Lock()
	for sub := range s.subs {
		if lvlErr == nil && lvl < sub.min {
			continue
		}
		select {
		case sub.ch <- line:
		default:
			// Queue full: drop for this session.
		}
	}
	s.mu.Unlock()

	return len(p), nil
}

// Close shuts the endpoint and every attached session.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	err := s.ln.Close()
	for sub := range s.subs {
		delete(s.subs, sub)
		close(sub.ch)
	}
	s.mu.Unlock()
	return err
}

// decodeLoggerLine maps a zerolog event onto a wire event. The
// component field carries the logger/category name.
func decodeLoggerLine(p []byte) (Event, bool) {
	var line struct {
		Level     string `json:"level"`
		Component string `json:"component"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(p, &line); err != nil || line.Message == "" {
		return Event{}, false
	}
	return Event{
		Kind:    EventKindMessage,
		Level:   line.Level,
		Logger:  line.Component,
		Message: line.Message,
	}, true
}
