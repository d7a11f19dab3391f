// Package detector picks between the interactive grid and the plain listing.
package detector

import (
	"os"
	"strings"

	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// OutputMode represents the rendering mode for the browse command.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeTUI forces the interactive grid.
	ModeTUI
	// ModeLinear forces the plain listing.
	ModeLinear
)

// String returns the flag spelling of m.
func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	case ModeLinear:
		return "linear"
	default:
		return "auto"
	}
}

// Environment is the part of the process environment detection looks at.
type Environment struct {
	Stdout *os.File
	Getenv func(string) string
}

// Process returns the environment of the running process.
func Process() Environment {
	return Environment{Stdout: os.Stdout, Getenv: os.Getenv}
}

// Detect returns ModeLinear when stdout is not a terminal, when CI is set, or
// when TERM is dumb, and ModeTUI otherwise.
func (e Environment) Detect() OutputMode {
	isTTY := e.Stdout != nil && term.IsTerminal(int(e.Stdout.Fd()))

	getenv := e.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	ci := getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI || getenv("TERM") == "dumb" {
		return ModeLinear
	}
	return ModeTUI
}

// DetectEnvironment inspects the running process.
func DetectEnvironment() OutputMode {
	return Process().Detect()
}

// ParseMode parses a --mode flag value.
// Accepted values are "auto", "tui", "grid", "linear", "list", "ci" and empty.
func ParseMode(flag string) (OutputMode, error) {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "", "auto":
		return ModeAuto, nil
	case "tui", "grid":
		return ModeTUI, nil
	case "linear", "list", "ci":
		return ModeLinear, nil
	default:
		return ModeAuto, zerr.With(domain.ErrInvalidConfig, "mode", flag)
	}
}

// ResolveMode applies the user's choice to the detected mode.
func ResolveMode(autoDetected, requested OutputMode) OutputMode {
	if requested == ModeAuto {
		return autoDetected
	}
	return requested
}
