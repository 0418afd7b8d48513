package app_test

import (
	"context"
	"iter"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/anymon/internal/core/domain"
	"go.trai.ch/anymon/internal/core/ports"
)

// fakeProcess exits as soon as it is signalled.
type fakeProcess struct {
	pid  int
	done chan struct{}
	once sync.Once
}

func (p *fakeProcess) PID() int              { return p.pid }
func (p *fakeProcess) Terminate() error      { p.stop(); return nil }
func (p *fakeProcess) Kill() error           { p.stop(); return nil }
func (p *fakeProcess) Done() <-chan struct{} { return p.done }
func (p *fakeProcess) ExitCode() int         { return domain.StatusUnavailable }

func (p *fakeProcess) stop() { p.once.Do(func() { close(p.done) }) }

func (p *fakeProcess) alive() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

type fakeLauncher struct {
	mu    sync.Mutex
	cmds  []domain.Command
	procs []*fakeProcess
}

func (l *fakeLauncher) Launch(_ context.Context, cmd domain.Command) (ports.Process, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p := &fakeProcess{pid: len(l.procs) + 1, done: make(chan struct{})}
	l.cmds = append(l.cmds, cmd)
	l.procs = append(l.procs, p)
	return p, nil
}

func (l *fakeLauncher) launches() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.procs)
}

func (l *fakeLauncher) cmd(i int) domain.Command {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cmds[i]
}

func (l *fakeLauncher) anyAlive() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.ContainsFunc(l.procs, (*fakeProcess).alive)
}

// fakeWatcher replays events pushed through emit.
type fakeWatcher struct {
	mu       sync.Mutex
	roots    []string
	startErr error
	events   chan domain.ChangeEvent
	stopped  sync.Once
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{events: make(chan domain.ChangeEvent, 16)}
}

func (w *fakeWatcher) Start(_ context.Context, roots ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.startErr != nil {
		return w.startErr
	}
	w.roots = roots
	return nil
}

func (w *fakeWatcher) Stop() error {
	w.stopped.Do(func() { close(w.events) })
	return nil
}

func (w *fakeWatcher) Events() iter.Seq[domain.ChangeEvent] {
	return func(yield func(domain.ChangeEvent) bool) {
		for ev := range w.events {
			if !yield(ev) {
				return
			}
		}
	}
}

func (w *fakeWatcher) emit(path string) {
	w.events <- domain.ChangeEvent{Path: path}
}

func (w *fakeWatcher) watched() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.roots
}

// fakeInput yields lines pushed through send until cancelled.
type fakeInput struct {
	lines    chan string
	cancel   chan struct{}
	once     sync.Once
	canceled bool
}

func newFakeInput() *fakeInput {
	return &fakeInput{lines: make(chan string), cancel: make(chan struct{})}
}

func (f *fakeInput) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			select {
			case line := <-f.lines:
				if !yield(line) {
					return
				}
			case <-f.cancel:
				return
			}
		}
	}
}

func (f *fakeInput) Cancel() bool {
	f.once.Do(func() {
		f.canceled = true
		close(f.cancel)
	})
	return true
}

func (f *fakeInput) send(line string) {
	f.lines <- line
}

// recordLogger keeps every line, prefixed with its level and task.
type recordLogger struct {
	mu    *sync.Mutex
	lines *[]string
	task  string
}

func newRecordLogger() *recordLogger {
	return &recordLogger{mu: &sync.Mutex{}, lines: &[]string{}}
}

func (l *recordLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.task != "" {
		msg = "[" + l.task + "] " + msg
	}
	*l.lines = append(*l.lines, level+": "+msg)
}

func (l *recordLogger) Info(msg string) { l.add("info", msg) }
func (l *recordLogger) Warn(msg string) { l.add("warn", msg) }
func (l *recordLogger) Error(err error) { l.add("error", err.Error()) }

func (l *recordLogger) Named(task string) ports.Logger {
	return &recordLogger{mu: l.mu, lines: l.lines, task: task}
}

func (l *recordLogger) has(line string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Contains(*l.lines, line)
}

func (l *recordLogger) contains(sub string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.ContainsFunc(*l.lines, func(s string) bool { return strings.Contains(s, sub) })
}
