package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/hourlog/internal/models"
	"github.com/julianstephens/hourlog/internal/ordering"
	"github.com/julianstephens/hourlog/internal/utils"
)

// History renders ordered past entries as a table grouped by date.
func History(entries []models.Entry, loc *time.Location, palette *ordering.Palette) string {
	if len(entries) == 0 {
		return mutedStyle.Render("No history yet.")
	}

	rows := make([][]string, 0, len(entries))
	colors := make([]string, 0, len(entries))
	prevDay := ""
	for _, e := range entries {
		day := e.Day(loc)
		label := day
		if day == prevDay {
			label = ""
		}
		prevDay = day

		desc := ""
		if models.ActivityAllowsDescription(e.Activity) {
			desc = e.Description
		}
		rows = append(rows, []string{
			label,
			fmt.Sprintf("%d", e.ID),
			e.Activity,
			utils.FormatHours(e.Hours),
			desc,
		})
		colors = append(colors, palette.Color(e.Activity))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("DATE", "ID", "ACTIVITY", "TIME", "DESCRIPTION").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col == 2 && row >= 0 && row < len(colors) {
				return cellStyle.Foreground(lipgloss.Color(colors[row]))
			}
			return cellStyle
		})
	return strings.TrimRight(t.String(), "\n")
}
