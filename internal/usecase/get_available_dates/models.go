package get_available_dates

import (
	"github.com/intellectif-llc/intellectif-website-sub002/internal/domain"
)

// Options are the engine tunables, fixed at construction time.
type Options struct {
	SlotGranularityMinutes int
	// SearchDaysAhead is the horizon used when the request carries none.
	SearchDaysAhead int
	// MaxSearchDaysAhead caps a caller-provided horizon.
	MaxSearchDaysAhead int
	// MaxDateResults stops the scan once this many dates are found.
	MaxDateResults int
	// Timezone resolves "today" for the pool scan.
	Timezone string
}

// Request asks for the upcoming dates on which any consultant of the pool
// can host the service.
type Request struct {
	ConsultantIDs []int64
	ServiceID     int64
	// DaysAhead overrides the default search horizon when positive.
	DaysAhead int
}

// Response lists dates with at least one bookable slot, in ascending order.
// AvailableSlots sums bookable starts over the whole pool, so it is a volume
// indicator rather than a guarantee on any particular consultant.
type Response struct {
	ServiceID int64
	Dates     []domain.DateAvailability
}

// consultantSchedule caches the per-consultant data that is stable across
// the scanned dates.
type consultantSchedule struct {
	consultantID int64
	templates    []domain.AvailabilityTemplate
}
