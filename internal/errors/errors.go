package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/hourlog/internal/logger"
)

// Error kinds. Every failure surfaced by the store, the validator or the
// reorder coordinator matches exactly one of these through errors.Is.
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrWriteFailed        = errors.New("write failed")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateActivity  = errors.New("duplicate activity")
	ErrCapacityExceeded   = errors.New("daily capacity exceeded")
	ErrNotFound           = errors.New("entry not found")
	ErrCrossDayReorder    = errors.New("cross-day reorder rejected")
)

var kinds = []error{
	ErrStorageUnavailable,
	ErrWriteFailed,
	ErrInvalidInput,
	ErrDuplicateActivity,
	ErrCapacityExceeded,
	ErrNotFound,
	ErrCrossDayReorder,
}

// OpError ties an underlying cause to an operation and an error kind.
type OpError struct {
	Op   string
	Kind error
	Err  error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Wrap annotates err with op and kind. A nil err yields nil.
func Wrap(kind error, op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Kind: kind, Err: err}
}

// New returns an OpError of the given kind without an underlying cause.
func New(kind error, op string) error {
	return &OpError{Op: op, Kind: kind}
}

// Kind returns the error kind err matches, or nil when it matches none.
func Kind(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// UserMessage returns the rule-specific message shown to the user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var um interface{ UserMessage() string }
	if errors.As(err, &um) {
		return um.UserMessage()
	}
	switch Kind(err) {
	case ErrStorageUnavailable:
		return "Database error: failed to open the log."
	case ErrWriteFailed:
		return "Database write failed: the change was not saved."
	case ErrInvalidInput:
		return "Invalid activity or time. Time must be greater than 0."
	case ErrDuplicateActivity:
		return "Activity already logged for this day. Use edit to update it."
	case ErrCapacityExceeded:
		return "Daily limit (24h) exceeded."
	case ErrNotFound:
		return "Entry no longer exists. The view has been refreshed."
	case ErrCrossDayReorder:
		return "Only today's entries can be reordered."
	default:
		return err.Error()
	}
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1. The user sees
// the rule-specific message; the log keeps the full chain.
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Formatf("%s", UserMessage(err)))
		os.Exit(1)
	}
}
