//go:build windows
// +build windows

package hostenv

import "golang.org/x/sys/windows/svc"

// underWindowsService asks the SCM whether this process was started as
// a service. An inconclusive probe counts as not supervised.
func underWindowsService() bool {
	isService, err := svc.IsWindowsService()
	if err != nil {
		return false
	}
	return isService
}

// underSystemd is always false on Windows.
func underSystemd() bool {
	return false
}
