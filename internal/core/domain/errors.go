package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnsupportedConfigFormat is returned when the config file is not a TOML file.
	ErrUnsupportedConfigFormat = zerr.New("unsupported config file format (only TOML allowed)")

	// ErrMissingTaskName is returned when a task record has no name.
	ErrMissingTaskName = zerr.New("task is missing a name")

	// ErrMissingRunCommand is returned when a task record has no run command.
	ErrMissingRunCommand = zerr.New("task is missing a run command")

	// ErrDuplicateTaskName is returned when two task records share a name.
	ErrDuplicateTaskName = zerr.New("duplicate task name")

	// ErrNoTasksDefined is returned when watch mode starts with a config that has no tasks.
	ErrNoTasksDefined = zerr.New("no tasks defined in config")

	// ErrWatchRequiresConfig is returned when watch mode starts without a loaded config.
	ErrWatchRequiresConfig = zerr.New("watch requires --config anymon.toml")

	// ErrInvalidGlobPattern is returned when a glob pattern cannot be compiled.
	ErrInvalidGlobPattern = zerr.New("invalid glob pattern")

	// ErrEmptyCommand is returned when a command line contains no program.
	ErrEmptyCommand = zerr.New("empty command")

	// ErrCommandParseFailed is returned when a command line cannot be split into arguments.
	ErrCommandParseFailed = zerr.New("failed to parse command line")

	// ErrProgramNotFound is returned when a program cannot be resolved and shell fallback is disabled.
	ErrProgramNotFound = zerr.New("program not found")

	// ErrProcessSpawnFailed is returned when a child process cannot be started.
	ErrProcessSpawnFailed = zerr.New("failed to spawn process")

	// ErrProcessSignalFailed is returned when a signal cannot be delivered to a child process.
	ErrProcessSignalFailed = zerr.New("failed to signal process")

	// ErrCommandFailed is returned when a one-shot command exits with a non-zero status.
	ErrCommandFailed = zerr.New("command exited with non-zero status")

	// ErrWatcherStartFailed is returned when the filesystem watcher cannot be started.
	ErrWatcherStartFailed = zerr.New("failed to start watcher")

	// ErrWatchRootInvalid is returned when a watch root cannot be resolved or is not a directory.
	ErrWatchRootInvalid = zerr.New("invalid watch root")

	// ErrInvalidFlagValue is returned when a command line flag has an unusable value.
	ErrInvalidFlagValue = zerr.New("invalid flag value")
)
