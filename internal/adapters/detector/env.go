// Package detector provides environment detection for output color selection.
package detector

import (
	"os"

	"go.trai.ch/anymon/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// ColorMode represents how pretty output is colored.
type ColorMode int

const (
	// ModeAuto leaves the decision to DetectEnvironment.
	ModeAuto ColorMode = iota
	// ModeColor writes ANSI colors.
	ModeColor
	// ModePlain writes no escape sequences.
	ModePlain
)

// DetectEnvironment returns the recommended color mode based on the environment.
// Colors are used only when stdout is a terminal, NO_COLOR is unset and TERM is not "dumb".
func DetectEnvironment() ColorMode {
	return detect(term.IsTerminal(int(os.Stdout.Fd())), os.Getenv)
}

func detect(isTTY bool, getenv func(string) string) ColorMode {
	if !isTTY || getenv("NO_COLOR") != "" || getenv("TERM") == "dumb" {
		return ModePlain
	}
	return ModeColor
}

// ResolveMode applies the --color flag to auto-detection.
// userFlag should be one of: "auto", "always", "never", or empty.
func ResolveMode(autoDetected ColorMode, userFlag string) (ColorMode, error) {
	switch userFlag {
	case "always":
		return ModeColor, nil
	case "never":
		return ModePlain, nil
	case "auto", "":
		return autoDetected, nil
	default:
		return autoDetected, zerr.With(domain.ErrInvalidFlagValue, "color", userFlag)
	}
}
