package ports

import "iter"

// ControlInput defines the interface for reading operator commands.
//
//go:generate mockgen -source=control_input.go -destination=mocks/mock_control_input.go -package=mocks
type ControlInput interface {
	// Lines returns an iterator over input lines. It ends at EOF or after Cancel.
	Lines() iter.Seq[string]
	// Cancel interrupts a pending read. It reports whether the read was
	// interrupted; on false the reader is detached and its goroutine abandoned.
	Cancel() bool
}
