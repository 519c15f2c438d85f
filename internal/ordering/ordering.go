// Package ordering derives every presentation sequence of entries: the
// today/history split, their orderings, chart aggregation and list rows.
package ordering

import (
	"sort"
	"time"

	"github.com/julianstephens/hourlog/internal/models"
)

// Partition splits entries into those dated before or after today (history)
// and those dated today, by local calendar date in loc. Input order is kept.
func Partition(entries []models.Entry, today string, loc *time.Location) (history, todays []models.Entry) {
	for _, e := range entries {
		if e.Day(loc) == today {
			todays = append(todays, e)
		} else {
			history = append(history, e)
		}
	}
	return history, todays
}

// OrderHistory returns history entries by ascending timestamp, ties by id.
func OrderHistory(history []models.Entry) []models.Entry {
	out := clone(history)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// OrderToday returns today's entries by ascending order key, ties by id.
func OrderToday(todays []models.Entry) []models.Entry {
	out := clone(todays)
	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := out[i].OrderKey(), out[j].OrderKey()
		if ki == kj {
			return out[i].ID < out[j].ID
		}
		return ki < kj
	})
	return out
}

// Merge returns the presentation sequence: ordered history followed by
// ordered today.
func Merge(entries []models.Entry, today string, loc *time.Location) []models.Entry {
	history, todays := Partition(entries, today, loc)
	return append(OrderHistory(history), OrderToday(todays)...)
}

func clone(entries []models.Entry) []models.Entry {
	out := make([]models.Entry, len(entries))
	copy(out, entries)
	return out
}
