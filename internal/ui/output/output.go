// Package output builds the termenv outputs shared by the grid browser,
// the plain listing and the log handler.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Mode selects how much color an output may use.
type Mode int

const (
	// Interactive detects the color support of the terminal.
	Interactive Mode = iota
	// Plain restricts colors to the basic ANSI palette.
	Plain
)

// Profile returns the color profile for mode. NO_COLOR always yields Ascii.
func Profile(mode Mode) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if mode == Plain {
		return termenv.ANSI
	}
	return termenv.EnvColorProfile()
}

// New creates an output for w using the profile of mode.
func New(w io.Writer, mode Mode) *termenv.Output {
	return NewWithProfile(w, Profile(mode))
}

// NewWithProfile creates an output for w fixed to profile. A nil w means stderr.
func NewWithProfile(w io.Writer, profile termenv.Profile) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w, termenv.WithProfile(profile), termenv.WithTTY(true))
}
