// Package config provides the configuration loader for anymon.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.trai.ch/anymon/internal/core/domain"
	"go.trai.ch/anymon/internal/core/ports"
	"go.trai.ch/zerr"
)

// Loader implements ports.ConfigLoader using a TOML file.
type Loader struct {
	Logger ports.Logger
	fs     FileSystem
}

// NewLoader creates a new Loader reading from the real filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return NewLoaderWithFS(logger, NewOSFS())
}

// NewLoaderWithFS creates a new Loader with a custom filesystem.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem) *Loader {
	return &Loader{Logger: logger, fs: fsys}
}

// Load reads the configuration at path, resolved against cwd. With an empty
// path, anymon.toml in cwd is used when it exists; otherwise no config is
// returned.
func (l *Loader) Load(cwd, path string) (*domain.Config, error) {
	configPath, found := l.resolvePath(cwd, path)
	if !found {
		return nil, nil //nolint:nilnil // no config file is not an error
	}

	if !strings.EqualFold(filepath.Ext(configPath), ".toml") {
		return nil, zerr.With(domain.ErrUnsupportedConfigFormat, "path", configPath)
	}

	var file File
	if err := l.readAndDecode(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	cfg, err := buildConfig(&file)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	cfg.Path = configPath
	return cfg, nil
}

func (l *Loader) resolvePath(cwd, path string) (string, bool) {
	if path == "" {
		candidate := filepath.Join(cwd, domain.DefaultConfigFile)
		if _, err := l.fs.Stat(candidate); err != nil {
			return "", false
		}
		return candidate, true
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	return filepath.Clean(path), true
}

func (l *Loader) readAndDecode(configPath string, target *File) error {
	data, err := l.fs.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	md, err := toml.Decode(string(data), target)
	if err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "line", perr.Position.Line)
		}
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	for _, key := range md.Undecoded() {
		l.Logger.Warn(fmt.Sprintf("unknown config key %q in %s", key.String(), filepath.Base(configPath)))
	}
	return nil
}

func buildConfig(file *File) (*domain.Config, error) {
	cfg := &domain.Config{}

	if g := file.Global; g != nil {
		cfg.Global = domain.GlobalConfig{
			Debounce:      optionalMillis(g.Debounce),
			KillTimeout:   optionalMillis(g.KillTimeout),
			Ignore:        g.Ignore,
			ShellFallback: g.ShellFallback,
		}
	}

	seen := make(map[string]bool, len(file.Task))
	for i, dto := range file.Task {
		name := strings.TrimSpace(dto.Name)
		if name == "" {
			return nil, zerr.With(domain.ErrMissingTaskName, "index", i)
		}
		if strings.TrimSpace(dto.Run) == "" {
			return nil, zerr.With(domain.ErrMissingRunCommand, "task", name)
		}
		if seen[name] {
			return nil, zerr.With(domain.ErrDuplicateTaskName, "task", name)
		}
		seen[name] = true

		cfg.Tasks = append(cfg.Tasks, domain.TaskConfig{
			Name:    name,
			Watch:   dto.Watch,
			Run:     strings.TrimSpace(dto.Run),
			Restart: dto.Restart,
			PTY:     dto.PTY,
		})
	}

	return cfg, nil
}

func optionalMillis(v *uint64) *time.Duration {
	if v == nil {
		return nil
	}
	d := domain.Millis(*v)
	return &d
}
