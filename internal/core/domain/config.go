package domain

import "time"

// Config is the loaded configuration file.
type Config struct {
	// Path is the file the configuration was read from.
	Path   string
	Global GlobalConfig
	Tasks  []TaskConfig
}

// GlobalConfig holds settings shared by every task.
// Nil pointers mean the key was absent from the file.
type GlobalConfig struct {
	Debounce      *time.Duration
	KillTimeout   *time.Duration
	Ignore        []string
	ShellFallback *bool
}

// TaskConfig is a single task record as configured.
type TaskConfig struct {
	Name    string
	Watch   []string
	Run     string
	Restart *bool
	PTY     bool
}

// RestartEnabled reports whether file changes restart the task. Defaults to true.
func (t TaskConfig) RestartEnabled() bool {
	if t.Restart == nil {
		return true
	}
	return *t.Restart
}
