// Package detector selects the log format from the environment.
package detector

import (
	"os"

	"go.trai.ch/masq/internal/core/domain"
	"golang.org/x/term"
)

// DetectFormat returns the log format for auto mode: JSON when stderr is not
// a terminal or a CI environment variable is set, pretty otherwise.
func DetectFormat() string {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return domain.LogFormatJSON
	}
	return domain.LogFormatPretty
}

// ResolveFormat applies the user's choice to the detected format.
// Unknown values fall back to the detected format.
func ResolveFormat(detected, userFlag string) string {
	switch userFlag {
	case domain.LogFormatPretty, domain.LogFormatJSON:
		return userFlag
	default:
		return detected
	}
}
