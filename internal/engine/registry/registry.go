// Package registry turns task configuration into immutable task specs.
package registry

import (
	"errors"
	"fmt"

	"go.trai.ch/anymon/internal/core/domain"
	"go.trai.ch/anymon/internal/core/ports"
)

// Build compiles one TaskSpec per task record against the session roots.
//
// Invalid watch patterns are reported as warnings on the task's logger and
// skipped; the task is still built.
func Build(tasks []domain.TaskConfig, settings domain.Settings, logger ports.Logger) []*domain.TaskSpec {
	roots := settings.Roots
	specs := make([]*domain.TaskSpec, 0, len(tasks))
	for _, t := range tasks {
		log := logger.Named(t.Name)

		include, errs := domain.CompileGlobSet(t.Watch, roots)
		reportPatterns(log, "watch", errs)
		if !include.Empty() && include.Len() == 0 {
			log.Warn("no valid watch patterns, file changes will not trigger this task")
		}

		specs = append(specs, &domain.TaskSpec{
			Name:    t.Name,
			Command: domain.Command{
				Line:          t.Run,
				PTY:           t.PTY,
				ShellFallback: settings.ShellFallback,
			},
			Restart: t.RestartEnabled(),
			Include: include,
			Roots:   roots,
		})
	}
	return specs
}

// BuildIgnore compiles the global ignore list. Invalid patterns are reported and skipped.
func BuildIgnore(patterns, roots []string, logger ports.Logger) *domain.GlobSet {
	set, errs := domain.CompileGlobSet(patterns, roots)
	reportPatterns(logger, "ignore", errs)
	return set
}

func reportPatterns(log ports.Logger, kind string, errs []error) {
	for _, err := range errs {
		var invalid *domain.InvalidPatternError
		if errors.As(err, &invalid) {
			log.Warn(fmt.Sprintf("skipping invalid %s pattern %q", kind, invalid.Pattern))
			continue
		}
		log.Warn(fmt.Sprintf("skipping %s pattern: %v", kind, err))
	}
}
