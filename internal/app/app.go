// Package app implements the application layer for anymon.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/anymon/internal/adapters/detector"
	"go.trai.ch/anymon/internal/core/domain"
	"go.trai.ch/anymon/internal/core/ports"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	launcher     ports.Launcher
	executor     ports.Executor
	watcher      ports.Watcher
	input        ports.ControlInput
	logger       ports.Logger

	stdout  io.Writer
	stderr  io.Writer
	workDir string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	launcher ports.Launcher,
	executor ports.Executor,
	watcher ports.Watcher,
	input ports.ControlInput,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		launcher:     launcher,
		executor:     executor,
		watcher:      watcher,
		input:        input,
		logger:       log,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
	}
}

// WithOutput redirects the captured output of one-shot commands and debug dumps.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithWorkDir overrides the directory used to resolve the config file and
// relative watch roots. It defaults to the process working directory.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// Options are the settings shared by every subcommand.
type Options struct {
	// ConfigPath is the --config value. Empty means discover anymon.toml.
	ConfigPath string
	// Overrides holds the flags that were set explicitly.
	Overrides domain.Overrides
}

// OutputOptions controls how log lines are rendered.
type OutputOptions struct {
	JSON  bool
	Color string
}

// outputConfigurer is implemented by loggers whose rendering can be switched at runtime.
type outputConfigurer interface {
	SetJSON(enable bool)
	SetPlain(enable bool)
}

// ConfigureOutput applies the logging flags to the logger.
func (a *App) ConfigureOutput(opts OutputOptions) error {
	mode, err := detector.ResolveMode(detector.DetectEnvironment(), opts.Color)
	if err != nil {
		return err
	}
	if l, ok := a.logger.(outputConfigurer); ok {
		l.SetJSON(opts.JSON)
		l.SetPlain(mode == detector.ModePlain)
	}
	return nil
}

// Run executes command once without a shell and reports its exit code.
func (a *App) Run(ctx context.Context, command string) error {
	a.logger.Info("run: " + command)

	fields := strings.Fields(command)
	if len(fields) == 0 {
		a.logger.Warn("empty command")
		return nil
	}

	out, err := a.executor.Run(ctx, fields[0], fields[1:])
	if err != nil {
		err = zerr.With(zerr.Wrap(err, "failed to run"), "command", command)
		a.logger.Error(err)
		return errors.Join(domain.ErrCommandFailed, err)
	}

	_, _ = io.WriteString(a.stdout, out.Stdout)
	_, _ = io.WriteString(a.stderr, out.Stderr)
	a.logger.Info(fmt.Sprintf("process exited: %d", out.Status))

	if out.Status != 0 {
		return domain.ErrCommandFailed
	}
	return nil
}

func (a *App) cwd() (string, error) {
	if a.workDir != "" {
		return a.workDir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", zerr.Wrap(err, "failed to determine working directory")
	}
	return dir, nil
}

// loadConfig returns the configuration, or nil when there is none. Load
// failures are logged rather than returned.
func (a *App) loadConfig(cwd, path string) *domain.Config {
	cfg, err := a.configLoader.Load(cwd, path)
	if err != nil {
		a.logger.Error(zerr.Wrap(err, "failed to load TOML config"))
		return nil
	}
	return cfg
}

// resolveRoots makes every root absolute against cwd. No roots means cwd.
func resolveRoots(cwd string, roots []string) []string {
	if len(roots) == 0 {
		return []string{filepath.Clean(cwd)}
	}
	resolved := make([]string, 0, len(roots))
	for _, r := range roots {
		if !filepath.IsAbs(r) {
			r = filepath.Join(cwd, r)
		}
		resolved = append(resolved, filepath.Clean(r))
	}
	return resolved
}
