package monitor

import "github.com/charmbracelet/lipgloss"

var (
	// Connection status styles
	connectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("40"))

	disconnectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("196"))

	waitingStyle = lipgloss.NewStyle().
			Faint(true)

	// Highlighted terms render black-on-green, matching the tool's
	// long-standing field convention
	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("2"))
)
