package shell

import (
	"errors"
	"io/fs"
	"os"
	"os/exec"

	sh "mvdan.cc/sh/v3/shell"

	"go.trai.ch/anymon/internal/core/domain"
	"go.trai.ch/zerr"
)

// shellPath is the interpreter used for the fallback plan.
const shellPath = "/bin/sh"

type planKind int

const (
	planDirect planKind = iota
	planShell
)

// plan is the resolved way to start a command line.
type plan struct {
	kind planKind
	// name is argv[0] as the child sees it.
	name string
	// path is the executable that is started.
	path string
	args []string
}

type (
	splitFunc    func(line string) ([]string, error)
	lookPathFunc func(file string) (string, error)
)

// splitFields splits a command line the way a POSIX shell splits words,
// honoring quotes and expanding environment variables. Command substitution
// is rejected.
func splitFields(line string) ([]string, error) {
	return sh.Fields(line, os.Getenv)
}

// selectPlan decides how cmd is started. A line that cannot be split, or whose
// program is not on PATH, runs through /bin/sh -c when shell fallback is enabled.
func selectPlan(cmd domain.Command, split splitFunc, lookPath lookPathFunc) (plan, error) {
	fields, err := split(cmd.Line)
	if err != nil {
		if cmd.ShellFallback {
			return shellPlan(cmd.Line), nil
		}
		return plan{}, zerr.With(zerr.Wrap(err, domain.ErrCommandParseFailed.Error()), "command", cmd.Line)
	}
	if len(fields) == 0 {
		return plan{}, domain.ErrEmptyCommand
	}

	program := fields[0]
	resolved, err := lookPath(program)
	if err != nil {
		if !isNotFound(err) {
			return plan{}, zerr.With(zerr.Wrap(err, domain.ErrProcessSpawnFailed.Error()), "program", program)
		}
		if cmd.ShellFallback {
			return shellPlan(cmd.Line), nil
		}
		return plan{}, zerr.With(domain.ErrProgramNotFound, "program", program)
	}

	return plan{
		kind: planDirect,
		name: program,
		path: resolved,
		args: fields[1:],
	}, nil
}

func shellPlan(line string) plan {
	return plan{
		kind: planShell,
		name: "sh",
		path: shellPath,
		args: []string{"-c", line},
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}
