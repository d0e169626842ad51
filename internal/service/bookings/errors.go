package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied is returned when the user may not touch the booking.
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel is returned when the booking is past cancellation.
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrInvalidStatus is returned for an unknown or disallowed status.
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput is returned on malformed input.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service errors.
	ErrInternal = errors.New("service: internal error")
)
