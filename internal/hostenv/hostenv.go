// Package hostenv classifies the supervisory relationship between the
// current process and whatever launched it.
package hostenv

// Context identifies the host supervising the current process.
type Context int

const (
	// Interactive means no supervisor was detected: the process was
	// started from a shell, a debugger, or another plain parent.
	Interactive Context = iota

	// WindowsService means the process is hosted by the Windows
	// service control manager.
	WindowsService

	// Systemd means the process runs as a systemd unit.
	Systemd
)

// String returns a short name for logging.
func (c Context) String() string {
	switch c {
	case WindowsService:
		return "windows-service"
	case Systemd:
		return "systemd"
	default:
		return "interactive"
	}
}

// Detect classifies the current process environment. The probe is
// side-effect-free and idempotent; callers may re-detect at will.
//
// The checks run in a fixed priority order: native service supervisor
// first, then systemd, then Interactive. A process can only have one
// legitimate supervisor, but the predicates are independent, so the
// order resolves any accidental overlap deterministically.
func Detect() Context {
	return classify(underWindowsService(), underSystemd())
}

func classify(windowsService, systemd bool) Context {
	if windowsService {
		return WindowsService
	}
	if systemd {
		return Systemd
	}
	return Interactive
}
