package availability

import "errors"

var (
	// ErrInvalidRule is returned when a stored schedule rule violates its
	// invariants (unparseable times, start >= end, max_bookings < 1).
	// Never coerced silently: the request fails and the row gets logged.
	ErrInvalidRule = errors.New("availability: invalid schedule rule")

	// ErrInconsistentBooking is returned when a stored booking carries data
	// the conflict detector cannot interpret (bad time, negative duration).
	ErrInconsistentBooking = errors.New("availability: inconsistent booking data")
)
