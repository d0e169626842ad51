package create_booking

import (
	"time"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/domain"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/types"
)

// Options are the engine tunables, fixed at construction time.
type Options struct {
	SlotGranularityMinutes  int
	MinBookingNoticeMinutes int
	MaxSearchDaysAhead      int
	// Timezone resolves "now" when the consultant profile carries no zone.
	Timezone string
}

// Request carries a booking attempt for one consultant, service, date and
// start time.
type Request struct {
	CustomerID   int64
	ConsultantID int64
	ServiceID    int64
	Date         time.Time // date only, no time component
	StartTime    types.TimeString
	Notes        *string
}

// Response is the committed booking.
type Response struct {
	Booking *domain.Booking
}
