//go:build !windows
// +build !windows

package bootstrap

// normalizeWorkdir is a no-op outside Windows; supervisors there set
// WorkingDirectory themselves.
func normalizeWorkdir() (bool, error) {
	return true, nil
}
