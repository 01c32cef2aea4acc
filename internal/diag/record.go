package diag

import (
	"fmt"
	"io"
	"time"
)

// LogRecord is one decoded diagnostic event, stamped with the time it
// was captured on the consumer side. Records are rendered immediately
// and never persisted.
type LogRecord struct {
	Captured time.Time
	Level    string
	Logger   string
	Message  string
}

// Render writes the record in the fixed layout: a timestamp line
// tagged with severity, the logger name, the message, then one blank
// separator line.
func (r LogRecord) Render(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s [%s]\n%s\n%s\n\n",
		r.Captured.Format(time.RFC3339), r.Level, r.Logger, r.Message)
	return err
}
