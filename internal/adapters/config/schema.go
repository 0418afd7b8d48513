package config

// File represents the structure of the anymon.toml configuration file.
type File struct {
	Global *GlobalDTO `toml:"global"`
	Task   []TaskDTO  `toml:"task"`
}

// GlobalDTO represents the [global] table. Durations are in milliseconds.
type GlobalDTO struct {
	Debounce      *uint64  `toml:"debounce"`
	KillTimeout   *uint64  `toml:"kill_timeout"`
	Ignore        []string `toml:"ignore"`
	ShellFallback *bool    `toml:"shell_fallback"`
}

// TaskDTO represents a [[task]] entry.
type TaskDTO struct {
	Name    string   `toml:"name"`
	Watch   []string `toml:"watch"`
	Run     string   `toml:"run"`
	Restart *bool    `toml:"restart"`
	PTY     bool     `toml:"pty"`
}
