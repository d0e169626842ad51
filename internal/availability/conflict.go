package availability

import (
	"fmt"
	"sort"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/domain"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/interval"
)

// OccupiedSpan returns the buffer-padded interval a booking occupies:
// [start - buffer_before, start + duration + buffer_after). Buffers are idle
// padding, consumed for conflict purposes but not bookable themselves.
// The span is clamped to the day; bookings never cross midnight here.
func OccupiedSpan(startMinutes, durationMinutes, bufferBefore, bufferAfter int) interval.Interval {
	start := startMinutes - bufferBefore
	if start < 0 {
		start = 0
	}
	end := startMinutes + durationMinutes + bufferAfter
	if end > interval.MinutesPerDay {
		end = interval.MinutesPerDay
	}
	return interval.New(start, end)
}

// BookingSpan returns the occupied span of an existing booking using the
// duration and buffers denormalized onto it at commit time.
func BookingSpan(b *domain.Booking) (interval.Interval, error) {
	start, err := b.StartTime.Minutes()
	if err != nil {
		return interval.Interval{}, fmt.Errorf("%w: booking id=%d: %v", ErrInconsistentBooking, b.ID, err)
	}
	if b.DurationMinutes <= 0 {
		return interval.Interval{}, fmt.Errorf("%w: booking id=%d: duration=%d", ErrInconsistentBooking, b.ID, b.DurationMinutes)
	}
	if b.BufferBeforeMinutes < 0 || b.BufferAfterMinutes < 0 {
		return interval.Interval{}, fmt.Errorf("%w: booking id=%d: negative buffer", ErrInconsistentBooking, b.ID)
	}
	return OccupiedSpan(start, b.DurationMinutes, b.BufferBeforeMinutes, b.BufferAfterMinutes), nil
}

// HasConflict reports whether the candidate occupied span overlaps the
// occupied span of any capacity-holding booking. Strictly half-open: a span
// ending exactly where another starts is adjacency, not conflict, so
// back-to-back bookings with zero buffers are legal.
func HasConflict(candidate interval.Interval, existing []*domain.Booking) (bool, error) {
	for _, b := range existing {
		if !b.CountsTowardCapacity() {
			continue
		}
		span, err := BookingSpan(b)
		if err != nil {
			return false, err
		}
		if candidate.Overlaps(span) {
			return true, nil
		}
	}
	return false, nil
}

// CapacityRemaining returns window.MaxBookings minus the peak number of
// occupied spans covering any single instant inside the probed span. A
// candidate fits when the result is >= 1: placing it must not drive
// remaining capacity negative at any instant of its own occupied span.
// The result can be zero or negative for an already saturated interval.
func CapacityRemaining(window domain.DailyWindow, span interval.Interval, existing []*domain.Booking) (int, error) {
	type event struct {
		at    int
		delta int
	}

	events := make([]event, 0, len(existing)*2)
	for _, b := range existing {
		if !b.CountsTowardCapacity() {
			continue
		}
		bSpan, err := BookingSpan(b)
		if err != nil {
			return 0, err
		}
		clipped := bSpan.Intersect(span)
		if clipped.IsEmpty() {
			continue
		}
		events = append(events, event{at: clipped.Start, delta: +1})
		events = append(events, event{at: clipped.End, delta: -1})
	}

	if len(events) == 0 {
		return window.MaxBookings, nil
	}

	// Half-open spans: at equal instants the -1 is processed before the +1,
	// so a span ending at t and one starting at t never co-occupy t.
	sort.Slice(events, func(i, j int) bool {
		if events[i].at != events[j].at {
			return events[i].at < events[j].at
		}
		return events[i].delta < events[j].delta
	})

	peak, current := 0, 0
	for _, ev := range events {
		current += ev.delta
		if current > peak {
			peak = current
		}
	}

	return window.MaxBookings - peak, nil
}

// SlotStarts returns candidate start times (minutes of day) inside the open
// window: steps of granularity from the window start, keeping starts whose
// service interval [start, start+duration) still fits the window.
func SlotStarts(window interval.Interval, durationMinutes, granularityMinutes int) []int {
	if durationMinutes <= 0 || granularityMinutes <= 0 || window.IsEmpty() {
		return nil
	}

	var starts []int
	for s := window.Start; s+durationMinutes <= window.End; s += granularityMinutes {
		starts = append(starts, s)
	}
	return starts
}
