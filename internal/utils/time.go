package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/models"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// ResolveLocation picks the timezone override when set, otherwise the stored setting.
func ResolveLocation(override string, settings models.Settings) (*time.Location, error) {
	if override != "" {
		return LoadLocation(override)
	}
	return LoadLocation(settings.Timezone)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// Today returns the YYYY-MM-DD date of now in loc.
func Today(now time.Time, loc *time.Location) string {
	return models.DayOf(now, loc)
}

// ParseDay parses a YYYY-MM-DD date at midnight in loc.
func ParseDay(day string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// FormatHours renders fractional hours as "7h 45m", dropping zero parts.
func FormatHours(hours float64) string {
	h, m := models.SplitHours(hours)
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}
