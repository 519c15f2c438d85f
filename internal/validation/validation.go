package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/julianstephens/hourlog/internal/constants"
	apperrors "github.com/julianstephens/hourlog/internal/errors"
	"github.com/julianstephens/hourlog/internal/models"
)

// Rule names the check a candidate failed.
type Rule string

const (
	RuleInvalidInput      Rule = "invalid_input"
	RuleDuplicateActivity Rule = "duplicate_activity"
	RuleCapacityExceeded  Rule = "capacity_exceeded"
)

// ValidationError reports a rejected add or edit. It matches the error kind of
// its rule through errors.Is.
type ValidationError struct {
	Rule    Rule
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Rule, e.Message)
}

func (e *ValidationError) Unwrap() error {
	switch e.Rule {
	case RuleDuplicateActivity:
		return apperrors.ErrDuplicateActivity
	case RuleCapacityExceeded:
		return apperrors.ErrCapacityExceeded
	default:
		return apperrors.ErrInvalidInput
	}
}

// UserMessage is the text shown to the user for the failed rule.
func (e *ValidationError) UserMessage() string {
	return e.Message
}

func fail(rule Rule, format string, args ...any) error {
	return &ValidationError{Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// ValidateNewEntry checks a candidate against the entries already logged on
// its day. Checks run in order: input, duplicate activity, capacity.
func ValidateNewEntry(candidate models.Draft, sameDay []models.Entry) error {
	if strings.TrimSpace(candidate.Activity) == "" || !isFinite(candidate.Hours) || candidate.Hours <= 0 {
		return fail(RuleInvalidInput, "Invalid activity or time. Time must be greater than 0.")
	}

	for _, e := range sameDay {
		if e.Activity == candidate.Activity {
			return fail(RuleDuplicateActivity, "%s is already logged for this day. Use edit to update it.", candidate.Activity)
		}
	}

	total := DayTotal(sameDay)
	if exceedsCapacity(total, candidate.Hours) {
		return fail(RuleCapacityExceeded, "Daily limit (24h) exceeded: %.2fh already logged, %.2fh requested.", total, candidate.Hours)
	}
	return nil
}

// ValidateAmounts rejects negative or non-finite hours and minutes before
// they are combined, so a negative part cannot offset a positive one.
func ValidateAmounts(hours, minutes float64) error {
	if !isFinite(hours) || !isFinite(minutes) || hours < 0 || minutes < 0 {
		return fail(RuleInvalidInput, "Invalid time. Hours and minutes cannot be negative.")
	}
	return nil
}

// ValidateEdit checks new hours for an existing entry against the other
// entries of its day. Renaming is not possible, so duplicates are not checked.
func ValidateEdit(hours float64, sameDayExcludingSelf []models.Entry) error {
	if !isFinite(hours) || hours < 0 {
		return fail(RuleInvalidInput, "Invalid time. Time cannot be negative.")
	}

	total := DayTotal(sameDayExcludingSelf)
	if exceedsCapacity(total, hours) {
		return fail(RuleCapacityExceeded, "Daily time limit exceeded: other entries already use %.2fh of 24h.", total)
	}
	return nil
}

// DayTotal sums the hours of entries.
func DayTotal(entries []models.Entry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Hours
	}
	return total
}

// Remaining returns how many hours are still free on a day with the given total.
func Remaining(total float64) float64 {
	return math.Max(0, constants.DayCapacityHours-total)
}

func exceedsCapacity(existing, added float64) bool {
	return existing+added > constants.DayCapacityHours+constants.HoursEpsilon
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
