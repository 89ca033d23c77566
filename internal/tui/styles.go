package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorPrimary = lipgloss.Color("39")  // blue
	ColorSuccess = lipgloss.Color("42")  // green
	ColorWarning = lipgloss.Color("214") // orange
	ColorDanger  = lipgloss.Color("196") // red
	ColorMuted   = lipgloss.Color("241") // gray

	AppStyle = lipgloss.NewStyle().Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Width(24)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWarning)

	DangerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDanger)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	HelpKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)
)
