//go:build windows
// +build windows

package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
)

// normalizeWorkdir moves the working directory to the executable's
// directory. The SCM starts services in C:\Windows\System32, which
// breaks every relative path the application uses.
func normalizeWorkdir() (bool, error) {
	exePath, err := os.Executable()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrExecutableNotFound, err)
	}
	if err := os.Chdir(filepath.Dir(exePath)); err != nil {
		return false, fmt.Errorf("chdir to %s: %w", filepath.Dir(exePath), err)
	}
	return true, nil
}
