package domain

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MinTemplateMaxBookings    = 1
	MaxTemplateMaxBookings    = 100
	MaxNotesLength            = 500
	MaxCancellationReasonLen  = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CapacityStatuses are the statuses that hold a spot in a window.
// Used when fetching existing bookings for conflict detection.
var CapacityStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses are the statuses excluded from default booking listings.
var InactiveStatuses = []BookingStatus{
	StatusCancelledByCustomer,
	StatusCancelledByConsultant,
	StatusNoShow,
}
