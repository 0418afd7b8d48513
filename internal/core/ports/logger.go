package ports

// Logger defines the interface for operator-facing output.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Info prints a status line.
	Info(msg string)
	// Warn prints a recoverable problem.
	Warn(msg string)
	// Error prints an error along with its cause chain.
	Error(err error)
	// Named returns a logger whose lines carry the given task prefix.
	Named(task string) Logger
}
