package get_available_times

import (
	"sort"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/availability"
	"github.com/intellectif-llc/intellectif-website-sub002/internal/domain"
	"github.com/intellectif-llc/intellectif-website-sub002/internal/integrations/catalogservice"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/types"
)

// collectSlots walks every daily window and returns the bookable slots,
// keyed by start minute. A start offered by overlapping windows is listed
// once with the best capacity among them: the windows are alternative homes
// for the same booking, not additive capacity.
func collectSlots(
	windows []domain.DailyWindow,
	service *catalogservice.Service,
	bookings []*domain.Booking,
	granularityMinutes int,
) (map[int]domain.TimeSlot, error) {
	byStart := make(map[int]domain.TimeSlot)

	for _, window := range windows {
		for _, start := range availability.SlotStarts(window.Window, service.DurationMinutes, granularityMinutes) {
			span := availability.OccupiedSpan(start, service.DurationMinutes, service.BufferBeforeMinutes, service.BufferAfterMinutes)

			remaining, err := availability.CapacityRemaining(window, span, bookings)
			if err != nil {
				return nil, err
			}
			if remaining < 1 {
				continue
			}

			existing, ok := byStart[start]
			if ok && existing.AvailableSpots >= remaining {
				continue
			}

			startTime, err := types.NewTimeStringFromMinutes(start)
			if err != nil {
				return nil, err
			}

			byStart[start] = domain.TimeSlot{
				StartTime:       startTime,
				DurationMinutes: service.DurationMinutes,
				AvailableSpots:  remaining,
				TotalSpots:      window.MaxBookings,
			}
		}
	}

	return byStart, nil
}

// sortedSlots flattens the start-keyed map into a slice ordered by start time.
func sortedSlots(byStart map[int]domain.TimeSlot) []domain.TimeSlot {
	starts := make([]int, 0, len(byStart))
	for start := range byStart {
		starts = append(starts, start)
	}
	sort.Ints(starts)

	slots := make([]domain.TimeSlot, 0, len(starts))
	for _, start := range starts {
		slots = append(slots, byStart[start])
	}
	return slots
}
