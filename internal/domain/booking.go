package domain

import (
	"time"

	"github.com/intellectif-llc/intellectif-website-sub002/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending               BookingStatus = "pending"
	StatusConfirmed             BookingStatus = "confirmed"
	StatusCompleted             BookingStatus = "completed"
	StatusCancelledByCustomer   BookingStatus = "cancelled_by_customer"
	StatusCancelledByConsultant BookingStatus = "cancelled_by_consultant"
	StatusNoShow                BookingStatus = "no_show"
)

// Booking represents a confirmed or pending consultation booking.
// Service duration and buffers are denormalized onto the row at commit time,
// so conflict checks against existing bookings never need a catalog lookup
// and keep working if the service definition changes later.
type Booking struct {
	ID               int64
	BookingReference string // public UUID, safe to expose outside
	CustomerID       int64
	ConsultantID     int64
	ServiceID        int64
	ScheduledDate    time.Time
	StartTime        types.TimeString
	DurationMinutes  int
	// Buffers captured from the service at booking time. They pad the
	// occupied span for conflict detection but are not bookable themselves.
	BufferBeforeMinutes int
	BufferAfterMinutes  int
	Status              BookingStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CountsTowardCapacity reports whether the booking consumes slot capacity.
// Only pending and confirmed bookings hold a spot; cancelled, completed and
// no-show bookings free it.
func (b *Booking) CountsTowardCapacity() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByCustomer || b.Status == StatusCancelledByConsultant
}

// ConsultantBookingsFilter filters booking reads for one consultant.
type ConsultantBookingsFilter struct {
	ConsultantID    int64          // required
	StartDate       *time.Time     // period start (nil = unbounded)
	EndDate         *time.Time     // period end (nil = unbounded)
	Status          *BookingStatus // exact status (optional)
	CapacityOnly    bool           // only statuses that consume capacity
	IncludeInactive bool           // include cancelled/no-show when no Status is set
}
