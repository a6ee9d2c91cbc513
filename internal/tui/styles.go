package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("27")  // Blue
	validColor   = lipgloss.Color("117") // Light blue
	errorColor   = lipgloss.Color("196") // Red
	mutedColor   = lipgloss.Color("241") // Gray

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	labelStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	alertStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(errorColor).Padding(0, 1)

	fieldStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(validColor).Padding(0, 1)
	invalidFieldStyle = fieldStyle.BorderForeground(errorColor)
)
