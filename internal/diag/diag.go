// Package diag implements live diagnostics attachment.
//
// A running instance publishes its structured log stream on a
// per-process endpoint (a unix socket on most platforms, a named pipe
// on Windows), named so that a controller can find it knowing only the
// process id. A controller opens a session against that endpoint,
// subscribes at a minimum severity, and receives the instance's log
// events as they happen, independent of the instance's own log sinks.
//
// The wire format is one JSON object per line. It is not an invented
// schema: the publisher re-frames the zerolog events the process
// already emits, carrying the same level, component, and message
// fields.
package diag

// Event kinds on the wire. Sessions only render EventKindMessage; any
// other kind is control chatter and is skipped by the consumer.
const (
	EventKindMessage = "message"
	EventKindHello   = "hello"
)

// Event is one wire-level diagnostic event.
type Event struct {
	Kind    string `json:"kind"`
	Level   string `json:"level,omitempty"`
	Logger  string `json:"logger,omitempty"`
	Message string `json:"message,omitempty"`
	PID     int    `json:"pid,omitempty"`
}

// SubscribeRequest opens a session: a minimum severity and a category
// selector, where "*" selects all categories.
type SubscribeRequest struct {
	Level      string `json:"level"`
	Categories string `json:"categories"`
}
