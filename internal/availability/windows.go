// Package availability is the pure core of the booking engine: computing a
// consultant's open windows for a date and deciding whether a buffered
// candidate booking fits. No I/O happens here; callers fetch the schedule
// rules and bookings and pass them in.
package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/domain"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/interval"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/types"
)

// ComputeDailyWindows derives the open, capacity-tagged windows for one
// consultant on one calendar date:
//
//  1. keep active templates matching the date's weekday,
//  2. a full-day time off closes the date entirely,
//  3. breaks matching the weekday or exact date, plus partial-day time off,
//     are subtracted from every template window,
//  4. each surviving sub-interval keeps its template's max_bookings and
//     timezone.
//
// A date with no matching templates yields an empty set - the consultant
// simply does not work that day. The function is deterministic: identical
// inputs produce identical output.
func ComputeDailyWindows(
	consultantID int64,
	date time.Time,
	templates []domain.AvailabilityTemplate,
	breaks []domain.Break,
	timeOff []domain.TimeOff,
) ([]domain.DailyWindow, error) {
	dayTemplates := make([]domain.AvailabilityTemplate, 0, len(templates))
	for _, t := range templates {
		if t.MatchesDate(date) {
			dayTemplates = append(dayTemplates, t)
		}
	}
	if len(dayTemplates) == 0 {
		return []domain.DailyWindow{}, nil
	}

	removals := make([]interval.Interval, 0, len(breaks)+len(timeOff))

	for _, brk := range breaks {
		if !brk.AppliesTo(date) {
			continue
		}
		iv, err := ruleInterval(brk.StartTime, brk.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: break id=%d: %v", ErrInvalidRule, brk.ID, err)
		}
		removals = append(removals, iv)
	}

	for _, off := range timeOff {
		if !off.Covers(date) {
			continue
		}
		if off.IsFullDay() {
			return []domain.DailyWindow{}, nil
		}
		iv, err := ruleInterval(*off.StartTime, *off.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: time off id=%d: %v", ErrInvalidRule, off.ID, err)
		}
		removals = append(removals, iv)
	}

	windows := make([]domain.DailyWindow, 0, len(dayTemplates))
	for _, t := range dayTemplates {
		iv, err := ruleInterval(t.StartTime, t.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: template id=%d: %v", ErrInvalidRule, t.ID, err)
		}
		if iv.IsEmpty() {
			return nil, fmt.Errorf("%w: template id=%d: start_time must be before end_time", ErrInvalidRule, t.ID)
		}
		if t.MaxBookings < domain.MinTemplateMaxBookings {
			return nil, fmt.Errorf("%w: template id=%d: max_bookings=%d", ErrInvalidRule, t.ID, t.MaxBookings)
		}

		for _, open := range interval.Subtract(iv, removals) {
			windows = append(windows, domain.DailyWindow{
				ConsultantID: consultantID,
				Date:         date,
				Window:       open,
				MaxBookings:  t.MaxBookings,
				Timezone:     t.Timezone,
			})
		}
	}

	sort.Slice(windows, func(i, j int) bool {
		if windows[i].Window.Start != windows[j].Window.Start {
			return windows[i].Window.Start < windows[j].Window.Start
		}
		return windows[i].Window.End < windows[j].Window.End
	})

	return windows, nil
}

// ruleInterval converts a stored HH:MM pair into a minutes-of-day interval.
func ruleInterval(start, end types.TimeString) (interval.Interval, error) {
	s, err := start.Minutes()
	if err != nil {
		return interval.Interval{}, err
	}
	e, err := end.Minutes()
	if err != nil {
		return interval.Interval{}, err
	}
	return interval.New(s, e), nil
}
