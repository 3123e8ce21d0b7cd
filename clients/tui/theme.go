// Package tui is the interactive terminal client for the task tracker.
package tui

import "github.com/charmbracelet/lipgloss"

// Adaptive colors (light/dark terminal detection).
var (
	ColorAccent  = lipgloss.AdaptiveColor{Light: "#0070F3", Dark: "#79C0FF"}
	ColorDone    = lipgloss.AdaptiveColor{Light: "#065F46", Dark: "#7EE2B8"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#FF6B6B"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	ColorBorder  = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"}
	ColorToastBg = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"}
)

// Component styles.
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			MarginBottom(1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	DoneStyle = lipgloss.NewStyle().
			Foreground(ColorDone).
			Strikethrough(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	FormStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ToastSuccessStyle = lipgloss.NewStyle().
				Background(ColorToastBg).
				Foreground(ColorDone).
				Padding(0, 1)

	ToastErrorStyle = lipgloss.NewStyle().
			Background(ColorToastBg).
			Foreground(ColorError).
			Bold(true).
			Padding(0, 1)
)
