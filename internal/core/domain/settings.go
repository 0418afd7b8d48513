package domain

import (
	"math"
	"time"
)

const (
	// DefaultDebounce is the quiet window used when neither flags nor config set one.
	DefaultDebounce = 30 * time.Millisecond
	// DefaultKillTimeout bounds the wait for a terminated process to exit.
	DefaultKillTimeout = 2000 * time.Millisecond
	// DefaultConfigFile is looked up in the working directory when --config is absent.
	DefaultConfigFile = "anymon.toml"

	// maxMillis is the largest millisecond count a time.Duration can hold.
	maxMillis = uint64(math.MaxInt64 / int64(time.Millisecond))
)

// Millis converts a millisecond count to a Duration, saturating at the
// largest representable Duration.
func Millis(ms uint64) time.Duration {
	if ms > maxMillis {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ms) * time.Millisecond //nolint:gosec // bounded by maxMillis
}

// Settings are the effective session settings after merging flags, config and defaults.
type Settings struct {
	Roots         []string
	Debounce      time.Duration
	KillTimeout   time.Duration
	Ignore        []string
	ShellFallback bool
}

// Overrides are values explicitly set on the command line. Nil means unset.
type Overrides struct {
	Roots         []string
	Debounce      *time.Duration
	KillTimeout   *time.Duration
	ShellFallback *bool
}

// ResolveSettings merges overrides, config and defaults, in that order of precedence.
// cfg may be nil.
func ResolveSettings(cfg *Config, o Overrides) Settings {
	s := Settings{
		Debounce:      DefaultDebounce,
		KillTimeout:   DefaultKillTimeout,
		ShellFallback: true,
	}

	if cfg != nil {
		g := cfg.Global
		if g.Debounce != nil {
			s.Debounce = *g.Debounce
		}
		if g.KillTimeout != nil {
			s.KillTimeout = *g.KillTimeout
		}
		if g.ShellFallback != nil {
			s.ShellFallback = *g.ShellFallback
		}
		s.Ignore = append(s.Ignore, g.Ignore...)
	}

	if o.Debounce != nil {
		s.Debounce = *o.Debounce
	}
	if o.KillTimeout != nil {
		s.KillTimeout = *o.KillTimeout
	}
	if o.ShellFallback != nil {
		s.ShellFallback = *o.ShellFallback
	}
	s.Roots = append(s.Roots, o.Roots...)

	return s
}
