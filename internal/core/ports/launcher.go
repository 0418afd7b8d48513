package ports

import (
	"context"

	"go.trai.ch/anymon/internal/core/domain"
)

// Process is a running child started by a Launcher.
type Process interface {
	// PID returns the operating system process id.
	PID() int
	// Terminate asks the process to exit gracefully. It does not wait.
	Terminate() error
	// Kill forcibly stops the process. It does not wait.
	Kill() error
	// Done is closed once the process has exited and been reaped.
	Done() <-chan struct{}
	// ExitCode returns the exit status, or domain.StatusUnavailable while the
	// process is running or when it was ended by a signal.
	ExitCode() int
}

// Launcher defines the interface for resolving and starting long-running programs.
//
//go:generate mockgen -source=launcher.go -destination=mocks/mock_launcher.go -package=mocks
type Launcher interface {
	// Launch starts cmd and returns immediately with a handle to it.
	Launch(ctx context.Context, cmd domain.Command) (Process, error)
}
