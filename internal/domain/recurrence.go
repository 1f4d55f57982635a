package domain

import (
	"fmt"
	"time"
)

// RecurrenceType selects the repeat pattern of an assigned task.
type RecurrenceType string

const (
	RecurrenceNone    RecurrenceType = "none"
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
)

// Recurrence is a tagged variant: only the fields for the selected type are
// meaningful. Weekdays applies to weekly, MonthlyDay to monthly, and
// EndDate is required for every type except none.
type Recurrence struct {
	Type       RecurrenceType
	Weekdays   []time.Weekday
	MonthlyDay int
	EndDate    string
}

// Validate checks the variant's own consistency rules. Failures wrap
// ErrValidation and must be rejected before any request is sent.
func (r Recurrence) Validate() error {
	switch r.Type {
	case RecurrenceNone:
		return nil
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		// fall through to shared checks below
	default:
		return fmt.Errorf("%w: unknown recurrence type %q", ErrValidation, r.Type)
	}

	if r.EndDate == "" {
		return fmt.Errorf("%w: recurrence end date is required", ErrValidation)
	}

	if r.Type == RecurrenceWeekly && len(r.Weekdays) == 0 {
		return fmt.Errorf("%w: weekly recurrence needs at least one weekday", ErrValidation)
	}

	if r.Type == RecurrenceMonthly && (r.MonthlyDay < 1 || r.MonthlyDay > 31) {
		return fmt.Errorf("%w: monthly day must be between 1 and 31, got %d", ErrValidation, r.MonthlyDay)
	}

	return nil
}

// DefaultMonthlyDay derives a monthly recurrence day from a due date in
// YYYY-MM-DD form. Returns 0 when the date is empty or unparsable.
func DefaultMonthlyDay(dueDate string) int {
	if dueDate == "" {
		return 0
	}
	d, err := time.Parse("2006-01-02", dueDate)
	if err != nil {
		return 0
	}
	return d.Day()
}
