// Package output builds the termenv outputs masq writes logs and progress to.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// noColor reports whether NO_COLOR asks for uncolored output.
func noColor() bool {
	return os.Getenv("NO_COLOR") != ""
}

// ColorProfile is the profile of the log handler. It follows the terminal.
func ColorProfile() termenv.Profile {
	if noColor() {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// ColorProfileANSI is the profile of the progress report, which is often read
// from CI logs rather than a terminal.
func ColorProfileANSI() termenv.Profile {
	if noColor() {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// New returns an output on w colored per ColorProfile.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	return NewWithProfile(w, ColorProfile, opts...)
}

// NewWithProfile returns an output on w, or stderr when w is nil. Color is
// forced on even when w is not a terminal, so profile alone decides it.
func NewWithProfile(w io.Writer, profile func() termenv.Profile, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w, append(opts, termenv.WithProfile(profile()), termenv.WithTTY(true))...)
}
