package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"go.trai.ch/anymon/internal/core/domain"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec.
type Executor struct{}

// NewExecutor creates a new Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Run starts program directly and waits for it, capturing stdout and stderr.
// Output that is not valid UTF-8 is replaced lossily.
func (e *Executor) Run(ctx context.Context, program string, args []string) (domain.CommandOutput, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, program, args...) //nolint:gosec // operator provided command
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := domain.CommandOutput{
		Status: domain.StatusUnavailable,
		Stdout: strings.ToValidUTF8(stdout.String(), "�"),
		Stderr: strings.ToValidUTF8(stderr.String(), "�"),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.Status = exitErr.ExitCode()
			return out, nil
		}
		return domain.CommandOutput{Status: domain.StatusUnavailable},
			zerr.With(zerr.Wrap(err, domain.ErrProcessSpawnFailed.Error()), "program", program)
	}

	out.Status = cmd.ProcessState.ExitCode()
	return out, nil
}
