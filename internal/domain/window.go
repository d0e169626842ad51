package domain

import (
	"time"

	"github.com/intellectif-llc/intellectif-website-sub002/pkg/interval"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/types"
)

// DailyWindow is a derived open interval for one consultant on one date,
// tagged with the capacity of its originating template. It is recomputed on
// every query and never cached across requests, because bookings mutate
// concurrently.
type DailyWindow struct {
	ConsultantID int64
	Date         time.Time
	Window       interval.Interval
	MaxBookings  int
	Timezone     string
}

// TimeSlot is one offered start time within a daily window.
type TimeSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	AvailableSpots  int
	TotalSpots      int
}

// IsFull returns true if the slot has no available spots
func (s *TimeSlot) IsFull() bool {
	return s.AvailableSpots <= 0
}

// IsPartiallyAvailable returns true if the slot has some but not all spots available
func (s *TimeSlot) IsPartiallyAvailable() bool {
	return s.AvailableSpots > 0 && s.AvailableSpots < s.TotalSpots
}

// DateAvailability is one entry of the available-dates view: a calendar date
// with the number of bookable slot starts summed across the consultant pool.
type DateAvailability struct {
	Date           time.Time
	AvailableSlots int
}
