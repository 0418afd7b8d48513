package domain

import "strings"

// ControlKind classifies an operator command.
type ControlKind uint8

const (
	// ControlUnknown is any line that is not a recognized command. It is ignored.
	ControlUnknown ControlKind = iota
	// ControlRestart restarts every task immediately.
	ControlRestart
	// ControlStatus asks every task to report whether a process is held.
	ControlStatus
	// ControlQuit ends every task loop and the session.
	ControlQuit
)

// ControlCommand is a normalized operator line.
type ControlCommand string

// ParseControl trims and lower-cases an input line. The boolean is false for
// blank lines, which are never broadcast.
func ParseControl(line string) (ControlCommand, bool) {
	cmd := strings.ToLower(strings.TrimSpace(line))
	if cmd == "" {
		return "", false
	}
	return ControlCommand(cmd), true
}

// Kind returns the command class.
func (c ControlCommand) Kind() ControlKind {
	switch c {
	case "rs", "restart":
		return ControlRestart
	case "status":
		return ControlStatus
	case "quit", "q", "exit":
		return ControlQuit
	default:
		return ControlUnknown
	}
}
