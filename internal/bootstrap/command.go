package bootstrap

import "strings"

// Command is a service-management action requested on the command
// line.
type Command int

const (
	// CommandNone means no recognized service command: the process
	// should proceed to its normal application logic.
	CommandNone Command = iota
	CommandStart
	CommandStop
	CommandLogs
)

// String returns the command-line spelling.
func (c Command) String() string {
	switch c {
	case CommandStart:
		return "start"
	case CommandStop:
		return "stop"
	case CommandLogs:
		return "logs"
	default:
		return "none"
	}
}

// ParseCommand resolves the leading argument to a Command. Matching is
// an explicit case-insensitive comparison against the command names;
// anything else — including numeric tokens that would hit a Command
// value — is CommandNone.
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandNone
	}
	switch strings.ToLower(args[0]) {
	case "start":
		return CommandStart
	case "stop":
		return CommandStop
	case "logs":
		return CommandLogs
	default:
		return CommandNone
	}
}
