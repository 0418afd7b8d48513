package app

import (
	"context"

	"go.trai.ch/anymon/internal/core/domain"
	"go.trai.ch/anymon/internal/engine/bus"
	"go.trai.ch/anymon/internal/engine/registry"
	"go.trai.ch/anymon/internal/engine/runner"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	// pathBusCapacity is how many change events a slow runner may fall behind.
	pathBusCapacity = 1024
	// controlBusCapacity is how many operator commands a slow runner may fall behind.
	controlBusCapacity = 32
)

// Watch runs every configured task and restarts them on matching changes
// until ctx is cancelled or the operator quits.
//
//nolint:cyclop,funlen // orchestration function
func (a *App) Watch(ctx context.Context, opts Options) error {
	a.logger.Info("watch mode")

	cwd, err := a.cwd()
	if err != nil {
		return err
	}

	cfg := a.loadConfig(cwd, opts.ConfigPath)
	if cfg == nil {
		return domain.ErrWatchRequiresConfig
	}
	if len(cfg.Tasks) == 0 {
		a.logger.Warn("no tasks defined in config")
		return nil
	}

	settings := domain.ResolveSettings(cfg, opts.Overrides)
	settings.Roots = resolveRoots(cwd, settings.Roots)

	specs := registry.Build(cfg.Tasks, settings, a.logger)
	ignore := registry.BuildIgnore(settings.Ignore, settings.Roots, a.logger)

	paths := bus.New[domain.ChangeEvent](pathBusCapacity)
	control := bus.New[domain.ControlCommand](controlBusCapacity)

	// Subscriptions are taken before the watcher produces anything.
	runners := make([]*runner.Runner, 0, len(specs))
	for _, spec := range specs {
		runners = append(runners, runner.New(
			spec,
			a.launcher,
			a.logger.Named(spec.Name),
			paths.Subscribe(),
			control.Subscribe(),
			runner.Options{Debounce: settings.Debounce, KillTimeout: settings.KillTimeout},
		))
	}

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()

	if err := a.watcher.Start(watchCtx, settings.Roots...); err != nil {
		paths.Close()
		control.Close()
		return zerr.Wrap(err, "failed to start watcher")
	}
	for _, root := range settings.Roots {
		a.logger.Info("watching: " + root)
	}

	// Ingress: ignored paths never reach any runner.
	pumpDone := make(chan struct{})
	go func() {
		defer close(pumpDone)
		for ev := range a.watcher.Events() {
			if ignore.Match(ev.Path) {
				continue
			}
			paths.Send(ev)
		}
	}()

	runCtx, stopRunners := context.WithCancel(ctx)
	defer stopRunners()

	g, runCtx := errgroup.WithContext(runCtx)
	for _, r := range runners {
		g.Go(func() error {
			return r.Run(runCtx)
		})
	}

	quit := make(chan struct{})
	inputDone := make(chan struct{})
	go func() {
		defer close(inputDone)
		for line := range a.input.Lines() {
			cmd, ok := domain.ParseControl(line)
			if !ok {
				continue
			}
			control.Send(cmd)
			if cmd.Kind() == domain.ControlQuit {
				close(quit)
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("received interrupt, shutting down")
	case <-quit:
		a.logger.Info("shutdown requested from stdin")
	}

	// A reader that cannot be interrupted is left behind.
	if a.input.Cancel() {
		<-inputDone
	}

	stopRunners()
	if err := a.watcher.Stop(); err != nil {
		a.logger.Error(zerr.Wrap(err, "failed to stop watcher"))
	}
	stopWatch()
	<-pumpDone

	paths.Close()
	control.Close()

	return g.Wait()
}
