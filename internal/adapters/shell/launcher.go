// Package shell starts task processes and runs one-shot commands.
package shell

import (
	"context"
	"io"
	"os"
	"os/exec"
	"sync/atomic"
	"time"

	"github.com/creack/pty"
	"go.trai.ch/anymon/internal/core/domain"
	"go.trai.ch/anymon/internal/core/ports"
	"go.trai.ch/zerr"
)

// ptyDrainTimeout bounds how long the reaper waits for pty output after exit.
const ptyDrainTimeout = 100 * time.Millisecond

// Launcher implements ports.Launcher using os/exec.
type Launcher struct {
	stdout   io.Writer
	stderr   io.Writer
	split    splitFunc
	lookPath lookPathFunc
}

// NewLauncher creates a Launcher whose children inherit the process's stdout and stderr.
func NewLauncher() *Launcher {
	return NewLauncherWithOutput(os.Stdout, os.Stderr)
}

// NewLauncherWithOutput creates a Launcher writing child output to the given writers.
func NewLauncherWithOutput(stdout, stderr io.Writer) *Launcher {
	return &Launcher{
		stdout:   stdout,
		stderr:   stderr,
		split:    splitFields,
		lookPath: exec.LookPath,
	}
}

// Launch starts cmd in its own process group and returns without waiting.
//
// The child's lifetime is not bound to ctx; callers stop it through the
// returned handle so that termination stays graceful.
func (l *Launcher) Launch(ctx context.Context, cmd domain.Command) (ports.Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := selectPlan(cmd, l.split, l.lookPath)
	if err != nil {
		return nil, err
	}

	c := exec.Command(p.path, p.args...) //nolint:gosec // operator provided command
	c.Args[0] = p.name

	if cmd.PTY {
		return l.startPTY(c, cmd.Line)
	}

	c.SysProcAttr = sysProcAttr()
	c.Stdout = l.stdout
	c.Stderr = l.stderr
	if err := c.Start(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrProcessSpawnFailed.Error()), "command", cmd.Line)
	}

	proc := newProcess(c)
	go proc.reap(nil, nil)
	return proc, nil
}

func (l *Launcher) startPTY(c *exec.Cmd, line string) (ports.Process, error) {
	// pty.Start places the child in a new session, which also makes it a
	// process group leader.
	ptmx, err := pty.Start(c)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrProcessSpawnFailed.Error()), "command", line)
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		_, _ = io.Copy(l.stdout, ptmx)
	}()

	proc := newProcess(c)
	go proc.reap(ptmx, ioDone)
	return proc, nil
}

// process implements ports.Process for a started exec.Cmd.
type process struct {
	cmd  *exec.Cmd
	done chan struct{}
	code atomic.Int64
}

func newProcess(c *exec.Cmd) *process {
	p := &process{cmd: c, done: make(chan struct{})}
	p.code.Store(domain.StatusUnavailable)
	return p
}

func (p *process) reap(ptmx *os.File, ioDone <-chan struct{}) {
	_ = p.cmd.Wait()

	if ptmx != nil {
		select {
		case <-ioDone:
		case <-time.After(ptyDrainTimeout):
		}
		_ = ptmx.Close()
		<-ioDone
	}

	if state := p.cmd.ProcessState; state != nil {
		p.code.Store(int64(state.ExitCode()))
	}
	close(p.done)
}

func (p *process) PID() int {
	return p.cmd.Process.Pid
}

func (p *process) Terminate() error {
	if p.exited() {
		return nil
	}
	return terminate(p.cmd.Process)
}

func (p *process) Kill() error {
	if p.exited() {
		return nil
	}
	return kill(p.cmd.Process)
}

func (p *process) Done() <-chan struct{} {
	return p.done
}

func (p *process) ExitCode() int {
	return int(p.code.Load())
}

func (p *process) exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}
