package validation

import (
	"errors"
	"math"
	"testing"
	"time"

	apperrors "github.com/julianstephens/hourlog/internal/errors"
	"github.com/julianstephens/hourlog/internal/models"
)

var day = time.Date(2025, 4, 2, 12, 0, 0, 0, time.UTC)

func entries(pairs ...any) []models.Entry {
	var out []models.Entry
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, models.Entry{
			ID:        int64(i/2 + 1),
			Activity:  pairs[i].(string),
			Hours:     pairs[i+1].(float64),
			Timestamp: day,
		})
	}
	return out
}

func TestValidateNewEntry(t *testing.T) {
	tests := []struct {
		name      string
		candidate models.Draft
		sameDay   []models.Entry
		wantKind  error
		wantRule  Rule
	}{
		{
			name:      "valid first entry",
			candidate: models.Draft{Activity: "Sleep", Hours: 8, Timestamp: day},
		},
		{
			name:      "empty activity",
			candidate: models.Draft{Activity: "", Hours: 1},
			wantKind:  apperrors.ErrInvalidInput,
			wantRule:  RuleInvalidInput,
		},
		{
			name:      "whitespace activity",
			candidate: models.Draft{Activity: "   ", Hours: 1},
			wantKind:  apperrors.ErrInvalidInput,
			wantRule:  RuleInvalidInput,
		},
		{
			name:      "zero hours",
			candidate: models.Draft{Activity: "Work", Hours: 0},
			wantKind:  apperrors.ErrInvalidInput,
			wantRule:  RuleInvalidInput,
		},
		{
			name:      "negative hours",
			candidate: models.Draft{Activity: "Work", Hours: -1},
			wantKind:  apperrors.ErrInvalidInput,
			wantRule:  RuleInvalidInput,
		},
		{
			name:      "NaN hours",
			candidate: models.Draft{Activity: "Work", Hours: math.NaN()},
			wantKind:  apperrors.ErrInvalidInput,
			wantRule:  RuleInvalidInput,
		},
		{
			name:      "duplicate activity",
			candidate: models.Draft{Activity: "Work", Hours: 1},
			sameDay:   entries("Sleep", 8.0, "Work", 4.0),
			wantKind:  apperrors.ErrDuplicateActivity,
			wantRule:  RuleDuplicateActivity,
		},
		{
			name:      "duplicate check is case sensitive",
			candidate: models.Draft{Activity: "work", Hours: 1},
			sameDay:   entries("Work", 4.0),
		},
		{
			name:      "duplicate wins over capacity",
			candidate: models.Draft{Activity: "Sleep", Hours: 20},
			sameDay:   entries("Sleep", 8.0),
			wantKind:  apperrors.ErrDuplicateActivity,
			wantRule:  RuleDuplicateActivity,
		},
		{
			name:      "capacity exceeded",
			candidate: models.Draft{Activity: "Study", Hours: 7},
			sameDay:   entries("Sleep", 8.0, "Exercise", 1.0, "Work", 9.0),
			wantKind:  apperrors.ErrCapacityExceeded,
			wantRule:  RuleCapacityExceeded,
		},
		{
			name:      "exactly 24 hours allowed",
			candidate: models.Draft{Activity: "Study", Hours: 6},
			sameDay:   entries("Sleep", 8.0, "Exercise", 1.0, "Work", 9.0),
		},
		{
			name:      "within epsilon allowed",
			candidate: models.Draft{Activity: "Study", Hours: 6.005},
			sameDay:   entries("Sleep", 8.0, "Exercise", 1.0, "Work", 9.0),
		},
		{
			name:      "beyond epsilon rejected",
			candidate: models.Draft{Activity: "Study", Hours: 6.02},
			sameDay:   entries("Sleep", 8.0, "Exercise", 1.0, "Work", 9.0),
			wantKind:  apperrors.ErrCapacityExceeded,
			wantRule:  RuleCapacityExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNewEntry(tt.candidate, tt.sameDay)
			if tt.wantKind == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("expected %v, got %v", tt.wantKind, err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Rule != tt.wantRule {
				t.Errorf("rule = %s, want %s", verr.Rule, tt.wantRule)
			}
			if apperrors.UserMessage(err) != verr.Message {
				t.Errorf("UserMessage should surface the rule message, got %q", apperrors.UserMessage(err))
			}
		})
	}
}

func TestValidateEdit(t *testing.T) {
	others := entries("Sleep", 8.0, "Exercise", 1.0)

	tests := []struct {
		name     string
		hours    float64
		others   []models.Entry
		wantKind error
	}{
		{name: "reduce hours", hours: 3, others: others},
		{name: "zero hours allowed on edit", hours: 0, others: others},
		{name: "fill the day", hours: 15, others: others},
		{name: "negative hours", hours: -0.5, others: others, wantKind: apperrors.ErrInvalidInput},
		{name: "infinite hours", hours: math.Inf(1), others: others, wantKind: apperrors.ErrInvalidInput},
		{name: "over capacity", hours: 15.5, others: others, wantKind: apperrors.ErrCapacityExceeded},
		{name: "no other entries", hours: 24, others: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEdit(tt.hours, tt.others)
			if tt.wantKind == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("expected %v, got %v", tt.wantKind, err)
			}
		})
	}
}

// Whatever sequence of candidates is accepted, the day total never passes
// 24h plus the tolerance.
func TestCapacityBoundHoldsAcrossAdds(t *testing.T) {
	var accepted []models.Entry
	hours := []float64{5, 7.5, 3.25, 6, 4, 2, 0.75, 1.5, 0.01, 9}

	for i, h := range hours {
		candidate := models.Draft{Activity: string(rune('A' + i)), Hours: h, Timestamp: day}
		if err := ValidateNewEntry(candidate, accepted); err != nil {
			if !errors.Is(err, apperrors.ErrCapacityExceeded) {
				t.Fatalf("unexpected rejection for %v: %v", h, err)
			}
			continue
		}
		accepted = append(accepted, candidate.WithID(int64(i+1)))
		if total := DayTotal(accepted); total > 24.01 {
			t.Fatalf("day total %.3f exceeds capacity", total)
		}
	}
	if len(accepted) == len(hours) {
		t.Fatal("expected at least one candidate to be rejected")
	}
}

func TestRemaining(t *testing.T) {
	if got := Remaining(18); got != 6 {
		t.Errorf("Remaining(18) = %v, want 6", got)
	}
	if got := Remaining(24.005); got != 0 {
		t.Errorf("Remaining(24.005) = %v, want 0", got)
	}
}

func TestValidateAmounts(t *testing.T) {
	tests := []struct {
		name    string
		hours   float64
		minutes float64
		wantErr bool
	}{
		{"whole hours", 2, 0, false},
		{"minutes only", 0, 45, false},
		{"both zero", 0, 0, false},
		{"negative minutes", 2, -30, true},
		{"negative hours", -1, 90, true},
		{"nan hours", math.NaN(), 0, true},
		{"infinite minutes", 0, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmounts(tt.hours, tt.minutes)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
