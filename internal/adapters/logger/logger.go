// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/anymon/internal/core/ports"
)

// TaskKey is the attribute carrying the task name of a Named logger.
const TaskKey = "task"

// messager describes an error that can report its own message without the chain.
// This matches the Message() method provided by zerr.Error.
type messager interface {
	Message() string
}

// metadataer describes an error carrying structured metadata, as zerr.Error does.
type metadataer interface {
	Metadata() map[string]any
}

// ErrorEntry is one link of an error chain prepared for display.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// sink holds the handlers shared by a logger and all of its Named children.
type sink struct {
	mu       sync.RWMutex
	jsonMode bool
	plain    bool
	stdout   io.Writer
	stderr   io.Writer
	info     *slog.Logger
	problems *slog.Logger
}

// Logger implements ports.Logger using log/slog.
// Info lines go to stdout; warnings and errors go to stderr.
type Logger struct {
	sink *sink
	task string
}

// New creates a new Logger instance.
func New() ports.Logger {
	s := &sink{stdout: os.Stdout, stderr: os.Stderr}
	s.rebuild()
	return &Logger{sink: s}
}

// SetOutput updates the logger's output destinations.
// A nil writer falls back to os.Stdout or os.Stderr respectively.
// It preserves the current JSON and color settings and affects every Named child.
func (l *Logger) SetOutput(stdout, stderr io.Writer) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	l.sink.stdout = stdout
	l.sink.stderr = stderr
	l.sink.rebuild()
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	l.sink.jsonMode = enable
	l.sink.rebuild()
}

// SetPlain disables colors in pretty output regardless of the environment.
func (l *Logger) SetPlain(enable bool) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	l.sink.plain = enable
	l.sink.rebuild()
}

// rebuild must be called with the sink lock held.
func (s *sink) rebuild() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if s.jsonMode {
		s.info = slog.New(slog.NewJSONHandler(s.stdout, opts))
		s.problems = slog.New(slog.NewJSONHandler(s.stderr, opts))
		return
	}
	s.info = slog.New(NewPrettyHandler(s.stdout, opts, s.plain))
	s.problems = slog.New(NewPrettyHandler(s.stderr, opts, s.plain))
}

// Named returns a logger that prefixes every line with the task name.
func (l *Logger) Named(task string) ports.Logger {
	return &Logger{sink: l.sink, task: task}
}

func (l *Logger) attrs() []any {
	if l.task == "" {
		return nil
	}
	return []any{TaskKey, l.task}
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.sink.mu.RLock()
	defer l.sink.mu.RUnlock()
	l.sink.info.Info(msg, l.attrs()...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.sink.mu.RLock()
	defer l.sink.mu.RUnlock()
	l.sink.problems.Warn(msg, l.attrs()...)
}

// Error logs an error along with its cause chain.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.sink.mu.RLock()
	defer l.sink.mu.RUnlock()

	if l.sink.jsonMode {
		l.sink.problems.Error("operation failed", append(l.attrs(), "error", err.Error())...)
		return
	}

	msg := formatErrorEntries(collectErrorEntries(err))
	l.sink.problems.Error(msg, l.attrs()...)
}

// collectErrorEntries walks the error chain. zerr links contribute their own
// message and metadata; the first non-zerr link ends the walk with its full text.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error()})
			break
		}

		entry := ErrorEntry{Message: m.Message(), Metadata: map[string]any{}}
		if md, ok := current.(metadataer); ok {
			maps.Copy(entry.Metadata, md.Metadata())
		}
		entries = append(entries, entry)
		current = errors.Unwrap(current)
	}
	return entries
}

// formatErrorEntries renders entries as a main error followed by its causes.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		lead, indent := "    → ", "      "
		if i == 0 {
			lead, indent = "Error: ", "       "
		} else if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}

		lines = append(lines, lead+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
