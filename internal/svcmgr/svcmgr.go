// Package svcmgr manages platform service registrations for the
// current executable. It exposes a single capability set — create and
// start, stop and delete, look up the backing process id — with one
// implementation per supported service manager (Windows SCM, systemd).
package svcmgr

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrUnsupportedPlatform is returned by New on any operating system
// without a supported service manager.
var ErrUnsupportedPlatform = errors.New("service management is not supported on this platform")

// Argument is a single startup parameter replayed to the managed
// process. Value may be empty for bare flags. Order is significant.
type Argument struct {
	Name  string
	Value string
}

// Options configures service creation. The zero value registers the
// service with no extra arguments. Options are not mutated by any
// backend.
type Options struct {
	Arguments   []Argument
	DisplayName string
	Description string

	// RunAs is the account the service runs under. Empty means the
	// platform default (LocalSystem on Windows, root under systemd).
	RunAs string
}

// Service is a named handle to a platform registration. Handles hold
// no state beyond the name; all durable state lives in the platform's
// service registry. Construct a fresh handle per operation.
type Service interface {
	// Name returns the registry name the handle operates on.
	Name() string

	// CreateStart registers a service definition pointing at exePath
	// with the options' arguments as startup parameters, then starts
	// it. Behavior on an already-registered name is platform-defined.
	CreateStart(exePath string, opts Options) error

	// StopDelete stops the running instance, if any, and removes the
	// registration. Tolerates an already-stopped or absent service.
	StopDelete() error

	// ProcessID reports the OS process id currently backing the
	// service. A registered but not running service is (0, false, nil),
	// not an error.
	ProcessID() (pid int, found bool, err error)
}

// New returns the service backend for the running OS. The platform
// check happens here, before any command is dispatched.
func New(name string) (Service, error) {
	return newPlatform(name)
}

// NameFromExecutable derives a service name from an executable path:
// the base file name with a trailing ".exe" stripped, matched without
// regard to case. Other extensions are left alone.
func NameFromExecutable(exePath string) string {
	base := filepath.Base(exePath)
	if strings.EqualFold(filepath.Ext(base), ".exe") {
		base = base[:len(base)-len(".exe")]
	}
	return base
}

// flatten renders ordered arguments into command-line tokens.
func flatten(args []Argument) []string {
	var out []string
	for _, a := range args {
		out = append(out, a.Name)
		if a.Value != "" {
			out = append(out, a.Value)
		}
	}
	return out
}
