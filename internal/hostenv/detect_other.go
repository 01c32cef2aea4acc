//go:build !windows
// +build !windows

package hostenv

import "os"

// underWindowsService is always false outside Windows.
func underWindowsService() bool {
	return false
}

// underSystemd reports whether systemd launched this process. systemd
// sets INVOCATION_ID for every unit it starts (since v232) and
// JOURNAL_STREAM when stdout/stderr are connected to the journal.
// Either marker is sufficient; a terminal check is deliberately not
// used because piped interactive runs would misclassify.
func underSystemd() bool {
	return os.Getenv("INVOCATION_ID") != "" || os.Getenv("JOURNAL_STREAM") != ""
}
