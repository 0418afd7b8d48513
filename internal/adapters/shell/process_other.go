//go:build !unix

package shell

import (
	"errors"
	"os"
	"syscall"

	"go.trai.ch/anymon/internal/core/domain"
	"go.trai.ch/zerr"
)

func sysProcAttr() *syscall.SysProcAttr {
	return nil
}

// terminate falls back to killing; there is no portable graceful signal.
func terminate(p *os.Process) error {
	return kill(p)
}

func kill(p *os.Process) error {
	err := p.Kill()
	if err == nil || errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return zerr.With(zerr.Wrap(err, domain.ErrProcessSignalFailed.Error()), "pid", p.Pid)
}
