package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette. Adaptive colors pick the light or dark variant from the
// terminal background.
var (
	ColorAccent = lipgloss.AdaptiveColor{Light: "#0055AA", Dark: "#7AB8FF"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "#777777", Dark: "#888888"}
	ColorFail   = lipgloss.AdaptiveColor{Light: "#C9372C", Dark: "#FF7452"}
)

// ErrorStyle marks the "Error:" prefix of CLI failures.
var ErrorStyle = lipgloss.NewStyle().Foreground(ColorFail).Bold(true)

// ColorProfile returns the termenv profile stdout should be rendered
// with. It is Ascii whenever ShouldUseColor is false.
func ColorProfile() termenv.Profile {
	if !ShouldUseColor() {
		return termenv.Ascii
	}
	p := termenv.NewOutput(os.Stdout).EnvColorProfile()
	if p == termenv.Ascii {
		// color forced on a non-TTY
		return termenv.ANSI
	}
	return p
}

// ApplyColorProfile sets lipgloss's default renderer to ColorProfile.
// Call once at startup.
func ApplyColorProfile() {
	lipgloss.SetColorProfile(ColorProfile())
}
