package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette for terminal output.
const (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)
)

// render applies style to text unless color is disabled by --no-color or
// the NO_COLOR environment variable.
func render(style lipgloss.Style, text string) string {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return text
	}
	return style.Render(text)
}
