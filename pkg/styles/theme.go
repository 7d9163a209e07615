// Package styles provides centralized color and style definitions for
// terminal output, adapting automatically to light/dark terminal
// backgrounds via lipgloss.AdaptiveColor.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	ColorError = lipgloss.AdaptiveColor{Light: "#D73737", Dark: "#FF5555"}
	ColorWarn  = lipgloss.AdaptiveColor{Light: "#E67E22", Dark: "#FFB86C"}
	ColorOK    = lipgloss.AdaptiveColor{Light: "#27AE60", Dark: "#50FA7B"}
	ColorInfo  = lipgloss.AdaptiveColor{Light: "#2980B9", Dark: "#8BE9FD"}
	ColorMuted = lipgloss.AdaptiveColor{Light: "#6C7A89", Dark: "#6272A4"}
	ColorEmph  = lipgloss.AdaptiveColor{Light: "#8E44AD", Dark: "#BD93F9"}
)

// RoundedBorder frames a diagnostic block.
var RoundedBorder = lipgloss.RoundedBorder()

var (
	Error = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(ColorWarn)
	OK    = lipgloss.NewStyle().Bold(true).Foreground(ColorOK)
	Info  = lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)
	Muted = lipgloss.NewStyle().Foreground(ColorMuted)
	RuleID = lipgloss.NewStyle().Bold(true).Foreground(ColorEmph)
)
