package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	noColorEnvironmentKeyConstant       = "NO_COLOR"
	cliColorEnvironmentKeyConstant      = "CLICOLOR"
	cliColorForceEnvironmentKeyConstant = "CLICOLOR_FORCE"
	disabledEnvironmentValueConstant    = "0"
)

// IsTerminal reports whether standard output is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ShouldUseColor applies NO_COLOR, CLICOLOR, and CLICOLOR_FORCE before falling back to terminal detection.
func ShouldUseColor() bool {
	if len(os.Getenv(noColorEnvironmentKeyConstant)) > 0 {
		return false
	}
	if strings.TrimSpace(os.Getenv(cliColorEnvironmentKeyConstant)) == disabledEnvironmentValueConstant {
		return false
	}
	forceValue := strings.TrimSpace(os.Getenv(cliColorForceEnvironmentKeyConstant))
	if len(forceValue) > 0 && forceValue != disabledEnvironmentValueConstant {
		return true
	}
	return IsTerminal()
}

// ConfigureColorOutput selects the lipgloss color profile for report rendering.
func ConfigureColorOutput() {
	switch {
	case !ShouldUseColor():
		lipgloss.SetColorProfile(termenv.Ascii)
	case !IsTerminal():
		lipgloss.SetColorProfile(termenv.ANSI256)
	}
}
