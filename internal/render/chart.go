package render

import (
	"fmt"
	"strings"

	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/ordering"
	"github.com/julianstephens/hourlog/internal/utils"
)

// Chart draws one stacked bar per date, scaled so a full day spans width cells.
func Chart(c ordering.Chart, width int) string {
	if len(c.Labels) == 0 {
		return mutedStyle.Render("Nothing logged yet.")
	}
	if width < 10 {
		width = 10
	}

	var b strings.Builder
	for i, label := range c.Labels {
		b.WriteString(mutedStyle.Render(label))
		b.WriteString(" ")

		used := 0
		for _, s := range c.Series {
			cells := int(s.Values[i]/constants.DayCapacityHours*float64(width) + 0.5)
			if used+cells > width {
				cells = width - used
			}
			if cells <= 0 {
				continue
			}
			b.WriteString(swatch(s.Color).Render(strings.Repeat(barChar, cells)))
			used += cells
		}
		b.WriteString(strings.Repeat(" ", width-used))
		b.WriteString(" ")
		b.WriteString(utils.FormatHours(c.Total(i)))
		b.WriteString("\n")
	}
	b.WriteString(Legend(c))
	return b.String()
}

// Legend lists each series with its color.
func Legend(c ordering.Chart) string {
	parts := make([]string, 0, len(c.Series))
	for _, s := range c.Series {
		parts = append(parts, fmt.Sprintf("%s %s", swatch(s.Color).Render(barChar), s.Activity))
	}
	return strings.Join(parts, "  ")
}
