// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/anymon/internal/core/domain"
)

// Executor defines the interface for running a program once to completion.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run starts program with args, without a shell, and captures its output.
	//
	// A non-zero exit is reported through CommandOutput.Status, not as an error.
	// It returns an error only if the program could not be started.
	Run(ctx context.Context, program string, args []string) (domain.CommandOutput, error)
}
