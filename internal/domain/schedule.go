package domain

import (
	"time"

	"github.com/intellectif-llc/intellectif-website-sub002/pkg/types"
)

// AvailabilityTemplate is a recurring weekly open window for a consultant.
// Overlapping templates on the same day are permitted; each resulting window
// keeps the max_bookings of its originating template.
type AvailabilityTemplate struct {
	ID           int64
	ConsultantID int64
	DayOfWeek    int // 0 = Sunday .. 6 = Saturday, matching time.Weekday
	StartTime    types.TimeString
	EndTime      types.TimeString
	MaxBookings  int
	Timezone     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MatchesDate reports whether the template applies to the given calendar date.
func (t *AvailabilityTemplate) MatchesDate(date time.Time) bool {
	return t.IsActive && int(date.Weekday()) == t.DayOfWeek
}

// Break is a sub-interval removed from template windows. It recurs weekly
// (DayOfWeek set) or applies to one date (Date set) — exactly one of the two.
// A break outside every template window is a no-op.
type Break struct {
	ID           int64
	ConsultantID int64
	DayOfWeek    *int
	Date         *time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
}

// AppliesTo reports whether the break removes time on the given date.
func (b *Break) AppliesTo(date time.Time) bool {
	if b.Date != nil {
		return sameDate(*b.Date, date)
	}
	if b.DayOfWeek != nil {
		return int(date.Weekday()) == *b.DayOfWeek
	}
	return false
}

// TimeOff removes availability on every date in [StartDate, EndDate]
// (inclusive). When StartTime/EndTime are nil the whole day is closed;
// otherwise only the given sub-interval is removed.
type TimeOff struct {
	ID           int64
	ConsultantID int64
	StartDate    time.Time
	EndDate      time.Time
	StartTime    *types.TimeString
	EndTime      *types.TimeString
	Reason       *string
}

// Covers reports whether the time off applies to the given date.
func (t *TimeOff) Covers(date time.Time) bool {
	d := truncateToDate(date)
	return !d.Before(truncateToDate(t.StartDate)) && !d.After(truncateToDate(t.EndDate))
}

// IsFullDay reports whether the time off closes the whole day.
func (t *TimeOff) IsFullDay() bool {
	return t.StartTime == nil || t.EndTime == nil
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
