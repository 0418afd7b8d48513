package console_test

import (
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/anymon/internal/adapters/console"
)

func TestConsole_LinesFromReader(t *testing.T) {
	c := console.New(strings.NewReader("rs\n  status \n\nquit"))

	lines := slices.Collect(c.Lines())
	assert.Equal(t, []string{"rs", "  status ", "", "quit"}, lines)
}

func TestConsole_CancelUnsupportedReader(t *testing.T) {
	c := console.New(strings.NewReader(""))
	assert.False(t, c.Cancel())
}

func TestConsole_EarlyBreak(t *testing.T) {
	c := console.New(strings.NewReader("a\nb\nc\n"))

	var got []string
	for line := range c.Lines() {
		got = append(got, line)
		if line == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestConsole_CancelInterruptsPipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})

	c := console.New(r)

	lines := make(chan string, 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for line := range c.Lines() {
			lines <- line
		}
	}()

	_, err = w.WriteString("status\n")
	require.NoError(t, err)

	select {
	case line := <-lines:
		assert.Equal(t, "status", line)
	case <-time.After(5 * time.Second):
		t.Fatal("no line received")
	}

	if !c.Cancel() {
		t.Skip("cancellation not supported for pipes on this platform")
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Lines did not end after Cancel")
	}
}
