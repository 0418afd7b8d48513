package domain

// StatusUnavailable is reported when a process exit code cannot be determined,
// for example when the process was terminated by a signal.
const StatusUnavailable = -1

// ChangeEvent is a filesystem change. Only the absolute path crosses the bus.
type ChangeEvent struct {
	Path string
}

// CommandOutput is the captured result of a one-shot command.
type CommandOutput struct {
	Status int
	Stdout string
	Stderr string
}
