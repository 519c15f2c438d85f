// Package render turns derived views into terminal text shared by the CLI
// and the TUI.
package render

import "github.com/charmbracelet/lipgloss"

const (
	barChar   = "█"
	emptyChar = "░"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Width(5)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)
)

func swatch(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
