package diag

import (
	"bytes"
	"testing"
	"time"
)

func TestLogRecordRender(t *testing.T) {
	rec := LogRecord{
		Captured: time.Date(2026, 2, 26, 10, 30, 0, 0, time.FixedZone("KST", 9*3600)),
		Level:    "info",
		Logger:   "worker",
		Message:  "tick",
	}

	var buf bytes.Buffer
	if err := rec.Render(&buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := "2026-02-26T10:30:00+09:00 [info]\nworker\ntick\n\n"
	if buf.String() != want {
		t.Errorf("Render output = %q, want %q", buf.String(), want)
	}
}

func TestLogRecordRenderEmptyFields(t *testing.T) {
	rec := LogRecord{
		Captured: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Level:    "warn",
	}

	var buf bytes.Buffer
	if err := rec.Render(&buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := "2026-01-01T00:00:00Z [warn]\n\n\n\n"
	if buf.String() != want {
		t.Errorf("Render output = %q, want %q", buf.String(), want)
	}
}
