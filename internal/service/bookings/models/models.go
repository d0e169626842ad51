package models

import (
	"errors"
	"time"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/domain"
)

var (
	// ErrInvalidStatus is returned for an unknown booking status string.
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request models

// CancelBookingRequest asks to cancel a booking on behalf of a user.
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest asks to move a booking to a new status.
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetUserBookingsRequest asks for a customer's booking history.
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetConsultantBookingsRequest asks for a consultant's agenda with optional
// period and status filters.
type GetConsultantBookingsRequest struct {
	UserID          int64      `json:"userId"`
	ConsultantID    int64      `json:"consultantId"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// ToDomainFilter converts the request to the storage filter.
func (r *GetConsultantBookingsRequest) ToDomainFilter() (domain.ConsultantBookingsFilter, error) {
	filter := domain.ConsultantBookingsFilter{
		ConsultantID:    r.ConsultantID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response models

// BookingResponse is the outward view of a booking.
type BookingResponse struct {
	ID               int64  `json:"id"`
	BookingReference string `json:"bookingReference"`
	CustomerID       int64  `json:"customerId"`
	ConsultantID     int64  `json:"consultantId"`
	ServiceID        int64  `json:"serviceId"`
	ScheduledDate    string `json:"scheduledDate"` // "2025-10-15"
	StartTime        string `json:"startTime"`     // "10:00"
	DurationMinutes  int    `json:"durationMinutes"`
	Status           string `json:"status"`

	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	Notes        *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse wraps a list of bookings.
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking converts the domain model to the DTO.
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		BookingReference:   b.BookingReference,
		CustomerID:         b.CustomerID,
		ConsultantID:       b.ConsultantID,
		ServiceID:          b.ServiceID,
		ScheduledDate:      b.ScheduledDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		ServiceName:        b.ServiceName,
		ServicePrice:       b.ServicePrice,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList converts a list of domain models to the DTO.
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{Bookings: []BookingResponse{}}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus converts and validates a status string.
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelledByCustomer,
		domain.StatusCancelledByConsultant,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
