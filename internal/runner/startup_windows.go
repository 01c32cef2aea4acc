//go:build windows
// +build windows

package runner

import (
	"fmt"

	"golang.org/x/sys/windows/svc/eventlog"
)

// ReportStartupError writes a startup error to the Windows event log
// so that "net start" failures carry the real cause even before the
// logger exists.
func ReportStartupError(serviceName string, err error) {
	// Installing an existing source fails; that is fine.
	_ = eventlog.InstallAsEventCreate(serviceName, eventlog.Error|eventlog.Warning|eventlog.Info)

	elog, openErr := eventlog.Open(serviceName)
	if openErr != nil {
		return
	}
	defer elog.Close()

	elog.Error(1, fmt.Sprintf("Failed to start: %v", err))
}
