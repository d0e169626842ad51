package get_available_dates

import "errors"

var (
	// ErrServiceNotFound is returned when the service does not exist.
	ErrServiceNotFound = errors.New("get_available_dates: service not found")

	// ErrServiceInactive is returned when the service is not bookable.
	ErrServiceInactive = errors.New("get_available_dates: service is not active")

	// ErrInvalidInput is returned on malformed input.
	ErrInvalidInput = errors.New("get_available_dates: invalid input data")

	// ErrInternal is returned on internal use case errors.
	ErrInternal = errors.New("get_available_dates: internal error")
)
