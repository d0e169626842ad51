package get_available_times

import (
	"time"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/domain"
)

// Options are the engine tunables, fixed at construction time.
type Options struct {
	SlotGranularityMinutes  int
	MinBookingNoticeMinutes int
	MaxSearchDaysAhead      int
	// Timezone resolves "today" when the consultant profile carries no zone.
	Timezone string
}

// Request asks for the bookable start times of one consultant on one date.
type Request struct {
	ConsultantID int64
	ServiceID    int64
	Date         time.Time // date only, no time component
}

// Response lists the offered slots for the date. Slots is empty (never nil)
// when nothing is bookable.
type Response struct {
	ConsultantID int64
	ServiceID    int64
	Date         time.Time
	Slots        []domain.TimeSlot
}
