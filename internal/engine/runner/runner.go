// Package runner drives one task: it debounces matching change events and
// restarts the task's process, while servicing operator commands.
package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.trai.ch/anymon/internal/core/domain"
	"go.trai.ch/anymon/internal/core/ports"
	"go.trai.ch/anymon/internal/engine/bus"
	"go.trai.ch/zerr"
)

// Options configures the timing of a Runner.
type Options struct {
	Debounce    time.Duration
	KillTimeout time.Duration
}

// Runner owns the process slot of a single task.
type Runner struct {
	spec     *domain.TaskSpec
	launcher ports.Launcher
	log      ports.Logger
	events   *bus.Subscription[domain.ChangeEvent]
	control  *bus.Subscription[domain.ControlCommand]
	opts     Options

	mu   sync.Mutex
	proc ports.Process

	// Processes that were signalled but not awaited. They are killed on teardown
	// if they are still alive.
	stale []ports.Process

	timer      *time.Timer
	debouncing bool
	lastChange time.Time
}

// New creates a Runner. The subscriptions must be taken before any event is
// published that the runner is expected to observe.
func New(
	spec *domain.TaskSpec,
	launcher ports.Launcher,
	logger ports.Logger,
	events *bus.Subscription[domain.ChangeEvent],
	control *bus.Subscription[domain.ControlCommand],
	opts Options,
) *Runner {
	if opts.Debounce < 0 {
		opts.Debounce = 0
	}
	return &Runner{
		spec:     spec,
		launcher: launcher,
		log:      logger,
		events:   events,
		control:  control,
		opts:     opts,
	}
}

// Name returns the task name.
func (r *Runner) Name() string {
	return r.spec.Name
}

// Running reports whether the runner currently holds a process.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.proc != nil
}

// Run spawns the task once and then processes events until ctx is cancelled,
// a quit command arrives, or either bus is closed. The held process is
// terminated before Run returns.
func (r *Runner) Run(ctx context.Context) error {
	defer r.events.Close()
	defer r.control.Close()
	defer r.teardown()

	r.mu.Lock()
	r.log.Info("starting: " + r.spec.Command.Line)
	if err := r.spawnLocked(ctx); err != nil {
		r.log.Error(zerr.Wrap(err, "failed to spawn"))
	}
	r.mu.Unlock()

	r.timer = time.NewTimer(r.opts.Debounce)
	r.timer.Stop()
	defer r.timer.Stop()

	for {
		var timerC <-chan time.Time
		if r.debouncing {
			timerC = r.timer.C
		}

		var held ports.Process
		var exited <-chan struct{}
		r.mu.Lock()
		if r.proc != nil {
			held = r.proc
			exited = held.Done()
		}
		r.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil

		case <-r.events.Ready():
			if closed := r.drainEvents(); closed {
				if r.debouncing {
					r.settle(ctx)
				}
				return nil
			}

		case <-r.control.Ready():
			if stop := r.drainControl(ctx); stop {
				return nil
			}

		case <-timerC:
			if wait := r.opts.Debounce - time.Since(r.lastChange); wait > 0 {
				r.timer.Reset(wait)
				continue
			}
			r.settle(ctx)

		case <-exited:
			r.observeExit(held)
		}
	}
}

// drainEvents consumes every pending change event. It reports whether the bus is closed.
func (r *Runner) drainEvents() bool {
	for {
		ev, err := r.events.TryRecv()
		switch {
		case err == nil:
			r.onChange(ev.Path)
		case errors.Is(err, bus.ErrEmpty):
			return false
		case errors.Is(err, bus.ErrClosed):
			return true
		default:
			if n, ok := bus.IsLagged(err); ok {
				r.log.Warn(fmt.Sprintf("event lagged by %d messages", n))
			}
		}
	}
}

func (r *Runner) onChange(path string) {
	if !r.spec.Matches(path) {
		return
	}
	if !r.debouncing {
		r.log.Info("change detected: " + path)
		r.debouncing = true
	}
	r.lastChange = time.Now()
	r.timer.Reset(r.opts.Debounce)
}

// drainControl consumes every pending operator command. It reports whether the runner should stop.
func (r *Runner) drainControl(ctx context.Context) bool {
	for {
		cmd, err := r.control.TryRecv()
		switch {
		case err == nil:
			if stop := r.handleControl(ctx, cmd); stop {
				return true
			}
		case errors.Is(err, bus.ErrEmpty):
			return false
		case errors.Is(err, bus.ErrClosed):
			return true
		default:
			if n, ok := bus.IsLagged(err); ok {
				r.log.Warn(fmt.Sprintf("control channel lagged by %d messages", n))
			}
		}
	}
}

func (r *Runner) handleControl(ctx context.Context, cmd domain.ControlCommand) bool {
	switch cmd.Kind() {
	case domain.ControlRestart:
		r.restartNow(ctx)
	case domain.ControlStatus:
		if r.Running() {
			r.log.Info("status: running")
		} else {
			r.log.Info("status: stopped")
		}
	case domain.ControlQuit:
		r.log.Info("quitting task loop")
		return true
	case domain.ControlUnknown:
	}
	return false
}

// settle ends the quiet window and applies the task's restart policy.
func (r *Runner) settle(ctx context.Context) {
	r.debouncing = false
	r.timer.Stop()
	if !r.spec.Restart {
		return
	}
	r.restartAfterChange(ctx)
}

// restartAfterChange stops the held process, waiting up to the kill timeout,
// and spawns a replacement.
func (r *Runner) restartAfterChange(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p := r.proc; p != nil {
		r.proc = nil
		r.log.Info("stopping existing process...")
		if err := p.Terminate(); err != nil {
			r.log.Error(err)
		}

		wait := time.NewTimer(r.opts.KillTimeout)
		select {
		case <-p.Done():
			wait.Stop()
			r.log.Info("stopped")
		case <-wait.C:
			r.log.Warn("kill timeout exceeded")
			r.stale = append(r.stale, p)
		case <-ctx.Done():
			wait.Stop()
			r.proc = p
			return
		}
	}

	r.log.Info("starting: " + r.spec.Command.Line)
	if err := r.spawnLocked(ctx); err != nil {
		r.log.Error(zerr.Wrap(err, "failed to spawn"))
	}
}

// restartNow signals the held process without waiting and spawns a replacement,
// regardless of the restart policy.
func (r *Runner) restartNow(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p := r.proc; p != nil {
		r.proc = nil
		r.log.Info("restarting (stop)...")
		if err := p.Terminate(); err != nil {
			r.log.Error(err)
		}
		r.stale = append(r.stale, p)
	}

	if err := r.spawnLocked(ctx); err != nil {
		r.log.Error(zerr.Wrap(err, "restart failed"))
		return
	}
	r.log.Info("restarted")
}

// spawnLocked must be called with r.mu held and the slot empty.
func (r *Runner) spawnLocked(ctx context.Context) error {
	r.pruneStale()
	p, err := r.launcher.Launch(ctx, r.spec.Command)
	if err != nil {
		return err
	}
	r.proc = p
	return nil
}

// observeExit clears the slot when the held process exits on its own.
// The process is not relaunched until the next trigger.
func (r *Runner) observeExit(p ports.Process) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.proc != p {
		return
	}
	r.proc = nil

	code := p.ExitCode()
	msg := fmt.Sprintf("process exited: %d", code)
	if code == 0 {
		r.log.Info(msg)
	} else {
		r.log.Warn(msg)
	}
}

func (r *Runner) pruneStale() {
	alive := r.stale[:0]
	for _, p := range r.stale {
		select {
		case <-p.Done():
		default:
			alive = append(alive, p)
		}
	}
	r.stale = alive
}

// teardown terminates every process the runner still knows about. Processes
// that ignore termination for longer than the kill timeout are killed.
func (r *Runner) teardown() {
	r.mu.Lock()
	procs := r.stale
	if r.proc != nil {
		procs = append(procs, r.proc)
	}
	r.proc = nil
	r.stale = nil
	r.mu.Unlock()

	var pending []ports.Process
	for _, p := range procs {
		select {
		case <-p.Done():
			continue
		default:
		}
		if err := p.Terminate(); err != nil {
			r.log.Error(err)
		}
		pending = append(pending, p)
	}
	if len(pending) == 0 {
		return
	}

	deadline := time.NewTimer(r.opts.KillTimeout)
	defer deadline.Stop()
	for _, p := range pending {
		select {
		case <-p.Done():
			continue
		case <-deadline.C:
		}
		// Deadline passed: force every remaining process.
		for _, q := range pending {
			select {
			case <-q.Done():
			default:
				if err := q.Kill(); err != nil {
					r.log.Error(err)
				}
			}
		}
		return
	}
}
