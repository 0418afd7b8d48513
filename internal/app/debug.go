package app

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/anymon/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

type debugView struct {
	Path     string          `yaml:"path"`
	Settings debugSettings   `yaml:"settings"`
	Tasks    []debugTaskView `yaml:"tasks"`
}

type debugSettings struct {
	Roots         []string `yaml:"roots"`
	DebounceMS    int64    `yaml:"debounce_ms"`
	KillTimeoutMS int64    `yaml:"kill_timeout_ms"`
	Ignore        []string `yaml:"ignore,omitempty"`
	ShellFallback bool     `yaml:"shell_fallback"`
}

type debugTaskView struct {
	Name    string   `yaml:"name"`
	Run     string   `yaml:"run"`
	Watch   []string `yaml:"watch,omitempty"`
	Restart bool     `yaml:"restart"`
	PTY     bool     `yaml:"pty,omitempty"`
}

// Debug prints the loaded configuration and the effective settings.
func (a *App) Debug(_ context.Context, opts Options) error {
	a.logger.Info("debug mode")

	cwd, err := a.cwd()
	if err != nil {
		return err
	}

	cfg := a.loadConfig(cwd, opts.ConfigPath)
	if cfg == nil {
		a.logger.Info("no config loaded")
		return nil
	}

	settings := domain.ResolveSettings(cfg, opts.Overrides)
	view := debugView{
		Path: cfg.Path,
		Settings: debugSettings{
			Roots:         resolveRoots(cwd, settings.Roots),
			DebounceMS:    settings.Debounce.Milliseconds(),
			KillTimeoutMS: settings.KillTimeout.Milliseconds(),
			Ignore:        settings.Ignore,
			ShellFallback: settings.ShellFallback,
		},
	}
	for _, t := range cfg.Tasks {
		view.Tasks = append(view.Tasks, debugTaskView{
			Name:    t.Name,
			Run:     t.Run,
			Watch:   t.Watch,
			Restart: t.RestartEnabled(),
			PTY:     t.PTY,
		})
	}

	data, err := yaml.Marshal(view)
	if err != nil {
		return zerr.Wrap(err, "failed to render config")
	}

	a.logger.Info("loaded config: " + cfg.Path)
	_, _ = a.stdout.Write(data)
	_, _ = fmt.Fprintf(a.stdout, "digest: %016x\n", xxhash.Sum64(data))
	return nil
}
