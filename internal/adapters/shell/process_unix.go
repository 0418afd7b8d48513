//go:build unix

package shell

import (
	"errors"
	"os"
	"syscall"

	"go.trai.ch/anymon/internal/core/domain"
	"go.trai.ch/zerr"
)

func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

func terminate(p *os.Process) error {
	return signalGroup(p.Pid, syscall.SIGTERM)
}

func kill(p *os.Process) error {
	return signalGroup(p.Pid, syscall.SIGKILL)
}

// signalGroup delivers sig to the process group led by pid.
// A group that no longer exists is not an error.
func signalGroup(pid int, sig syscall.Signal) error {
	err := syscall.Kill(-pid, sig)
	if err == nil || errors.Is(err, syscall.ESRCH) {
		return nil
	}
	return zerr.With(zerr.Wrap(err, domain.ErrProcessSignalFailed.Error()), "pid", pid)
}
