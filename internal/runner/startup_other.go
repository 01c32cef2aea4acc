//go:build !windows
// +build !windows

package runner

// ReportStartupError is a no-op outside Windows; the event log has no
// counterpart here and supervisors capture stderr themselves.
func ReportStartupError(serviceName string, err error) {
}
