package ordering

import (
	"github.com/julianstephens/hourlog/internal/models"
)

// Row holds what the list view needs to draw one of today's entries.
type Row struct {
	Entry           models.Entry
	Hours           int
	Minutes         int
	Percent         float64 // bar fill relative to the largest entry of the day
	Color           string
	ShowDescription bool
}

// ListRows derives list rows for today's entries in the given order.
func ListRows(todays []models.Entry, palette *Palette) []Row {
	peak := 0.0
	for _, e := range todays {
		if e.Hours > peak {
			peak = e.Hours
		}
	}
	if peak == 0 {
		peak = 1
	}

	rows := make([]Row, 0, len(todays))
	for _, e := range todays {
		h, m := models.SplitHours(e.Hours)
		rows = append(rows, Row{
			Entry:           e,
			Hours:           h,
			Minutes:         m,
			Percent:         e.Hours / peak * 100,
			Color:           palette.Color(e.Activity),
			ShowDescription: e.Description != "" && models.ActivityAllowsDescription(e.Activity),
		})
	}
	return rows
}
