package booking

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrBuildQuery is returned when the SQL query cannot be built.
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute.
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned.
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
