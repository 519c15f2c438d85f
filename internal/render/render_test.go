package render

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/hourlog/internal/models"
	"github.com/julianstephens/hourlog/internal/ordering"
)

func TestBar(t *testing.T) {
	tests := []struct {
		percent      float64
		width        int
		filled, rest int
	}{
		{50, 10, 5, 5},
		{100, 8, 8, 0},
		{0, 4, 0, 4},
		{250, 4, 4, 0},
	}
	for _, tt := range tests {
		got := Bar(tt.percent, tt.width, "#e53e3e")
		if n := strings.Count(got, barChar); n != tt.filled {
			t.Errorf("Bar(%v, %d) filled = %d, want %d", tt.percent, tt.width, n, tt.filled)
		}
		if n := strings.Count(got, emptyChar); n != tt.rest {
			t.Errorf("Bar(%v, %d) empty = %d, want %d", tt.percent, tt.width, n, tt.rest)
		}
	}
	if Bar(50, 0, "#fff") != "" {
		t.Error("zero width bar should be empty")
	}
}

func TestToday(t *testing.T) {
	if got := Today(nil, 0, 10); !strings.Contains(got, "No entries") {
		t.Errorf("unexpected empty view: %q", got)
	}

	entries := []models.Entry{
		{ID: 3, Activity: "Work", Hours: 2.5, Description: "planning"},
		{ID: 4, Activity: "Sleep", Hours: 8},
	}
	rows := ordering.ListRows(entries, ordering.NewPalette())
	got := Today(rows, 10.5, 10)

	for _, want := range []string{"#3", "Work", "2h 30m", "planning", "#4", "Sleep", "8h 0m", "Total: 10h 30m"} {
		if !strings.Contains(got, want) {
			t.Errorf("today view missing %q:\n%s", want, got)
		}
	}
	if lines := strings.Count(got, "\n"); lines != 2 {
		t.Errorf("expected 2 row lines before the total, got %d", lines)
	}
}

func TestChart(t *testing.T) {
	day := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	entries := []models.Entry{
		{ID: 1, Activity: "Sleep", Hours: 12, Timestamp: day},
		{ID: 2, Activity: "Work", Hours: 12, Timestamp: day},
		{ID: 3, Activity: "Sleep", Hours: 6, Timestamp: day.AddDate(0, 0, 1)},
	}
	chart := ordering.ForChart(entries, time.UTC, ordering.NewPalette())

	got := Chart(chart, 24)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 2 bars and a legend, got %d lines:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], "2025-08-01") || !strings.HasSuffix(lines[0], "24h") {
		t.Errorf("unexpected first bar %q", lines[0])
	}
	if n := strings.Count(lines[0], barChar); n != 24 {
		t.Errorf("full day should fill the width, got %d cells", n)
	}
	if n := strings.Count(lines[1], barChar); n != 6 {
		t.Errorf("6h should fill a quarter of the width, got %d cells", n)
	}
	if !strings.Contains(lines[2], "Sleep") || !strings.Contains(lines[2], "Work") {
		t.Errorf("legend missing series: %q", lines[2])
	}

	if got := Chart(ordering.Chart{}, 24); !strings.Contains(got, "Nothing logged") {
		t.Errorf("unexpected empty chart: %q", got)
	}
}

func TestHistory(t *testing.T) {
	day := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	entries := []models.Entry{
		{ID: 1, Activity: "Sleep", Hours: 7, Timestamp: day, Description: "hidden"},
		{ID: 2, Activity: "Study", Hours: 1.5, Timestamp: day.Add(time.Hour), Description: "linear algebra"},
		{ID: 5, Activity: "Work", Hours: 8, Timestamp: day.AddDate(0, 0, 1)},
	}

	got := History(entries, time.UTC, ordering.NewPalette())
	for _, want := range []string{"ACTIVITY", "2025-08-01", "2025-08-02", "Study", "1h 30m", "linear algebra"} {
		if !strings.Contains(got, want) {
			t.Errorf("history missing %q:\n%s", want, got)
		}
	}
	if strings.Count(got, "2025-08-01") != 1 {
		t.Errorf("date should be printed once per group:\n%s", got)
	}
	if strings.Contains(got, "hidden") {
		t.Error("Sleep descriptions must not be shown")
	}

	if got := History(nil, time.UTC, ordering.NewPalette()); !strings.Contains(got, "No history") {
		t.Errorf("unexpected empty history: %q", got)
	}
}
