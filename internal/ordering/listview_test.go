package ordering

import (
	"testing"

	"github.com/julianstephens/hourlog/internal/models"
)

func TestListRows(t *testing.T) {
	todays := []models.Entry{
		{ID: 1, Activity: "Sleep", Hours: 8, Description: "ignored"},
		{ID: 2, Activity: "Work", Hours: 2.5, Description: "reviews"},
		{ID: 3, Activity: "Study", Hours: 1.999},
	}

	rows := ListRows(todays, NewPalette())
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	tests := []struct {
		hours, minutes int
		percent        float64
		showDesc       bool
	}{
		{8, 0, 100, false},
		{2, 30, 31.25, true},
		{2, 0, 1.999 / 8 * 100, false},
	}
	for i, want := range tests {
		r := rows[i]
		if r.Hours != want.hours || r.Minutes != want.minutes {
			t.Errorf("row %d duration = %dh %dm, want %dh %dm", i, r.Hours, r.Minutes, want.hours, want.minutes)
		}
		if r.Percent != want.percent {
			t.Errorf("row %d percent = %v, want %v", i, r.Percent, want.percent)
		}
		if r.ShowDescription != want.showDesc {
			t.Errorf("row %d show description = %v, want %v", i, r.ShowDescription, want.showDesc)
		}
	}
}

func TestListRowsZeroHours(t *testing.T) {
	rows := ListRows([]models.Entry{{ID: 1, Activity: "Work", Hours: 0}}, NewPalette())
	if rows[0].Percent != 0 {
		t.Errorf("percent = %v, want 0", rows[0].Percent)
	}
}
