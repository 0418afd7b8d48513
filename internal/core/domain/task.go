package domain

import (
	"path/filepath"
	"strings"
)

// Command is a program invocation as configured by the operator.
type Command struct {
	// Line is the command line exactly as written in the config.
	Line string
	// PTY runs the program attached to a pseudo-terminal.
	PTY bool
	// ShellFallback runs Line through /bin/sh -c when it cannot be split or
	// its program cannot be found on PATH.
	ShellFallback bool
}

// TaskSpec is the immutable description of a watched task.
type TaskSpec struct {
	Name    string
	Command Command
	Restart bool
	Include *GlobSet
	Roots   []string
}

// Matches reports whether a change at path is relevant to the task.
// A task without configured watch patterns matches every path.
func (t *TaskSpec) Matches(path string) bool {
	if t.Include == nil || t.Include.Empty() {
		return true
	}
	return t.Include.Match(path)
}

// relativeTo returns path relative to root, or false when path lies outside root.
func relativeTo(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}
