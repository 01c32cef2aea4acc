//go:build !windows
// +build !windows

package hostenv

import "testing"

func TestUnderSystemdEnvMarkers(t *testing.T) {
	t.Setenv("INVOCATION_ID", "")
	t.Setenv("JOURNAL_STREAM", "")

	if underSystemd() {
		t.Error("underSystemd() = true with no systemd markers set")
	}

	t.Setenv("INVOCATION_ID", "4cf15c7special")
	if !underSystemd() {
		t.Error("underSystemd() = false with INVOCATION_ID set")
	}

	t.Setenv("INVOCATION_ID", "")
	t.Setenv("JOURNAL_STREAM", "8:1234567")
	if !underSystemd() {
		t.Error("underSystemd() = false with JOURNAL_STREAM set")
	}
}

func TestDetectOutsideSupervisors(t *testing.T) {
	t.Setenv("INVOCATION_ID", "")
	t.Setenv("JOURNAL_STREAM", "")

	if got := Detect(); got != Interactive {
		t.Errorf("Detect() = %v, want Interactive", got)
	}
}
