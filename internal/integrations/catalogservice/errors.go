package catalogservice

import "errors"

var (
	// ErrConsultantNotFound is returned when the catalog has no such consultant.
	ErrConsultantNotFound = errors.New("consultant not found")

	// ErrServiceNotFound is returned when the catalog has no such service.
	ErrServiceNotFound = errors.New("service not found")

	// ErrInternal is returned on internal client errors.
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse is returned on a malformed catalog response.
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")

	// ErrServiceUnavailable is returned when the catalog cannot be reached.
	// Booking flows must fail closed on it: without service duration and
	// buffers no availability decision is safe.
	ErrServiceUnavailable = errors.New("catalogservice unavailable")
)
