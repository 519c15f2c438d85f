package models

import (
	"math"
	"time"

	"github.com/julianstephens/hourlog/internal/constants"
)

// Entry is one logged activity duration for a calendar day.
type Entry struct {
	ID          int64     `json:"id"`
	Activity    string    `json:"activity"`
	Hours       float64   `json:"hours"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	SortOrder   *int64    `json:"sort_order,omitempty"` // only meaningful for today's entries
}

// Draft is an entry that has not been stored yet.
type Draft struct {
	Activity    string    `json:"activity"`
	Hours       float64   `json:"hours"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	SortOrder   *int64    `json:"sort_order,omitempty"`
}

// WithID turns a draft into an entry carrying the store-assigned id.
func (d Draft) WithID(id int64) Entry {
	return Entry{
		ID:          id,
		Activity:    d.Activity,
		Hours:       d.Hours,
		Timestamp:   d.Timestamp,
		Description: d.Description,
		SortOrder:   d.SortOrder,
	}
}

// Day returns the local calendar date of the entry in loc.
func (e Entry) Day(loc *time.Location) string {
	return DayOf(e.Timestamp, loc)
}

// OrderKey is the position of the entry among today's entries.
// Entries created before sort orders existed fall back to their id.
func (e Entry) OrderKey() int64 {
	if e.SortOrder != nil {
		return *e.SortOrder
	}
	return e.ID
}

// DayOf formats t as a YYYY-MM-DD date in loc. A nil loc means time.Local.
func DayOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(constants.DateFormat)
}

// SplitHours breaks fractional hours into whole hours and rounded minutes.
func SplitHours(hours float64) (int, int) {
	whole := int(math.Floor(hours))
	minutes := int(math.Round((hours - float64(whole)) * 60))
	if minutes == 60 {
		whole++
		minutes = 0
	}
	return whole, minutes
}

// ToHours converts an hours and minutes pair into fractional hours.
func ToHours(hours, minutes float64) float64 {
	return hours + minutes/60
}

// ActivityAllowsDescription reports whether a description is kept for the activity.
// Work, Study and any custom label take one; Sleep and Exercise do not.
func ActivityAllowsDescription(activity string) bool {
	switch activity {
	case constants.ActivitySleep, constants.ActivityExercise:
		return false
	default:
		return true
	}
}

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 {
	return &v
}
