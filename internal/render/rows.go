package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/hourlog/internal/ordering"
	"github.com/julianstephens/hourlog/internal/utils"
)

// Bar draws a horizontal bar filled to percent of width cells.
func Bar(percent float64, width int, color string) string {
	if width <= 0 {
		return ""
	}
	filled := int(percent/100*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return swatch(color).Render(strings.Repeat(barChar, filled)) +
		mutedStyle.Render(strings.Repeat(emptyChar, width-filled))
}

// Row renders one list row as "#id activity bar duration description".
func Row(r ordering.Row, barWidth int) string {
	activity := swatch(r.Color).Bold(true).Width(14).Render(r.Entry.Activity)
	duration := lipgloss.NewStyle().Width(8).Render(fmt.Sprintf("%dh %dm", r.Hours, r.Minutes))

	line := lipgloss.JoinHorizontal(lipgloss.Top,
		idStyle.Render(fmt.Sprintf("#%d", r.Entry.ID)),
		activity,
		Bar(r.Percent, barWidth, r.Color),
		" ",
		duration,
	)
	if r.ShowDescription {
		line += " " + mutedStyle.Render(r.Entry.Description)
	}
	return line
}

// Today renders today's rows followed by the day total.
func Today(rows []ordering.Row, total float64, barWidth int) string {
	if len(rows) == 0 {
		return mutedStyle.Render("No entries logged today.")
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(Row(r, barWidth))
		b.WriteString("\n")
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("Total: %s of 24h", utils.FormatHours(total))))
	return b.String()
}
