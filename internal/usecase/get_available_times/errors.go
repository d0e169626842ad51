package get_available_times

import "errors"

var (
	// ErrConsultantNotFound is returned when the consultant does not exist.
	ErrConsultantNotFound = errors.New("get_available_times: consultant not found")

	// ErrConsultantInactive is returned when the consultant is not taking bookings.
	ErrConsultantInactive = errors.New("get_available_times: consultant is not active")

	// ErrServiceNotFound is returned when the service does not exist.
	ErrServiceNotFound = errors.New("get_available_times: service not found")

	// ErrServiceInactive is returned when the service is not bookable.
	ErrServiceInactive = errors.New("get_available_times: service is not active")

	// ErrInvalidDate is returned for a date in the past.
	ErrInvalidDate = errors.New("get_available_times: invalid date")

	// ErrDateTooFarInFuture is returned when the date exceeds the search horizon.
	ErrDateTooFarInFuture = errors.New("get_available_times: date is too far in the future")

	// ErrInvalidInput is returned on malformed input.
	ErrInvalidInput = errors.New("get_available_times: invalid input data")

	// ErrInvalidScheduleRule is returned when stored schedule rules are
	// inconsistent and no availability decision is safe.
	ErrInvalidScheduleRule = errors.New("get_available_times: invalid schedule rule")

	// ErrInternal is returned on internal use case errors.
	ErrInternal = errors.New("get_available_times: internal error")
)
