// Package bootstrap decides, at process start, whether the executable
// should run its normal application logic or act as its own service
// installer and controller.
//
// Supervised processes (Windows service, systemd unit) always fall
// through to application logic. Interactive invocations whose first
// argument is a recognized command perform one service-management
// action instead and report that the process should exit.
package bootstrap

import (
	"errors"
	"fmt"
	"os"

	"selfsvc/internal/diag"
	"selfsvc/internal/hostenv"
	"selfsvc/internal/svcmgr"
)

// ErrExecutableNotFound is returned when the runtime cannot report the
// current executable's path. This indicates a corrupted or exotic host
// environment and is always fatal.
var ErrExecutableNotFound = errors.New("cannot resolve the current executable path")

// Bootstrapper holds the collaborators of the bootstrap decision.
// Production code uses New; tests substitute individual fields.
type Bootstrapper struct {
	// Detect classifies the hosting context.
	Detect func() hostenv.Context

	// NewService returns the platform backend for a service name.
	NewService func(name string) (svcmgr.Service, error)

	// StreamLogs attaches to a running instance and blocks until its
	// stream ends.
	StreamLogs func(pid int) error

	// Executable reports the current executable's path.
	Executable func() (string, error)

	// FixWorkdir normalizes the working directory when hosted by the
	// native service supervisor, which starts services in a system
	// directory rather than the install location.
	FixWorkdir func() (bool, error)
}

// New returns a Bootstrapper wired to the real platform collaborators.
func New() *Bootstrapper {
	return &Bootstrapper{
		Detect:     hostenv.Detect,
		NewService: svcmgr.New,
		StreamLogs: func(pid int) error { return diag.Attach(pid, os.Stdout) },
		Executable: os.Executable,
		FixWorkdir: normalizeWorkdir,
	}
}

// Run inspects args with the default collaborators. See
// Bootstrapper.Run.
func Run(args []string, serviceName string, opts *svcmgr.Options) (bool, error) {
	return New().Run(args, serviceName, opts)
}

// Run decides what this invocation is. It returns true when the
// process should continue into its normal application logic, and false
// when a service-management action was performed and the process
// should exit. Backend errors are returned unchanged; nothing here
// retries or rolls back.
func (b *Bootstrapper) Run(args []string, serviceName string, opts *svcmgr.Options) (bool, error) {
	switch b.Detect() {
	case hostenv.WindowsService:
		return b.FixWorkdir()
	case hostenv.Systemd:
		// systemd-managed processes always proceed to normal logic,
		// arguments included: the unit replays them for the payload,
		// not for us.
		return true, nil
	}

	cmd := ParseCommand(args)
	if cmd == CommandNone {
		return true, nil
	}

	exePath, err := b.Executable()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrExecutableNotFound, err)
	}

	name := serviceName
	if name == "" {
		name = svcmgr.NameFromExecutable(exePath)
	}

	// Backend selection happens before dispatch so an unsupported
	// platform fails here, ahead of any command logic.
	service, err := b.NewService(name)
	if err != nil {
		return false, err
	}

	switch cmd {
	case CommandStart:
		var o svcmgr.Options
		if opts != nil {
			o = *opts
		}
		if err := service.CreateStart(exePath, o); err != nil {
			return false, err
		}

	case CommandStop:
		if err := service.StopDelete(); err != nil {
			return false, err
		}

	case CommandLogs:
		pid, found, err := service.ProcessID()
		if err != nil {
			return false, err
		}
		if !found {
			// Not running is not an error: nothing to stream, and
			// nothing to print. The logger is not up yet here, so any
			// message would land as raw JSON on stdout.
			return false, nil
		}
		if err := b.StreamLogs(pid); err != nil {
			return false, err
		}
	}

	return false, nil
}
