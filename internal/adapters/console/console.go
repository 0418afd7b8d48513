// Package console reads operator commands from a terminal or pipe.
package console

import (
	"bufio"
	"io"
	"iter"

	"github.com/muesli/cancelreader"
	"go.trai.ch/anymon/internal/core/ports"
)

var _ ports.ControlInput = (*Console)(nil)

// Console implements ports.ControlInput over a cancellable reader.
//
// When the input cannot be made cancellable (for example a regular file),
// reads are not interrupted and Cancel reports false so the caller can
// detach from the reading goroutine instead.
type Console struct {
	reader io.Reader
	cancel func() bool
}

// New wraps in for line reading.
func New(in io.Reader) *Console {
	cr, err := cancelreader.NewReader(in)
	if err != nil {
		return &Console{reader: in, cancel: func() bool { return false }}
	}
	return &Console{reader: cr, cancel: cr.Cancel}
}

// Lines yields input lines without their terminator. It ends at EOF, on a
// read error, or after Cancel.
func (c *Console) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		scanner := bufio.NewScanner(c.reader)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}
}

// Cancel interrupts a pending read. It reports whether the interruption succeeded.
func (c *Console) Cancel() bool {
	return c.cancel()
}
