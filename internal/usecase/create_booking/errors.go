package create_booking

import "errors"

var (
	// ErrConsultantNotFound is returned when the consultant does not exist.
	ErrConsultantNotFound = errors.New("create_booking: consultant not found")

	// ErrConsultantInactive is returned when the consultant is not taking bookings.
	ErrConsultantInactive = errors.New("create_booking: consultant is not active")

	// ErrServiceNotFound is returned when the service does not exist.
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceInactive is returned when the service is not bookable.
	ErrServiceInactive = errors.New("create_booking: service is not active")

	// ErrInvalidDate is returned for a date in the past.
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture is returned when the date exceeds the search horizon.
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrOutsideAvailability is returned when the requested service interval
	// does not fit inside any open window of the day.
	ErrOutsideAvailability = errors.New("create_booking: requested time is outside availability")

	// ErrInvalidTimeSlot is returned when the start time is not on the slot grid.
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook is returned when the start violates the minimum notice.
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotNotAvailable is returned when the slot has no remaining capacity.
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput is returned on malformed input.
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidScheduleRule is returned when stored schedule rules are
	// inconsistent and no availability decision is safe.
	ErrInvalidScheduleRule = errors.New("create_booking: invalid schedule rule")

	// ErrInternal is returned on internal use case errors.
	ErrInternal = errors.New("create_booking: internal error")
)
