package create_booking

import (
	"time"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/domain"
	createBooking "github.com/intellectif-llc/intellectif-website-sub002/internal/usecase/create_booking"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ConsultantID  int64   `json:"consultantId"`
	ServiceID     int64   `json:"serviceId"`
	ScheduledDate string  `json:"scheduledDate"` // "2025-10-15"
	StartTime     string  `json:"startTime"`     // "10:00"
	Notes         *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64   `json:"id"`
	BookingReference string  `json:"bookingReference"`
	CustomerID       int64   `json:"customerId"`
	ConsultantID     int64   `json:"consultantId"`
	ServiceID        int64   `json:"serviceId"`
	ScheduledDate    string  `json:"scheduledDate"`
	StartTime        string  `json:"startTime"`
	DurationMinutes  int     `json:"durationMinutes"`
	Status           string  `json:"status"`
	ServiceName      string  `json:"serviceName"`
	ServicePrice     float64 `json:"servicePrice"`
	Notes            *string `json:"notes,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// ToUseCaseRequest converts the HTTP request to the use case model. The
// authenticated customer ID comes from the request context, not the body.
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	scheduledDate, err := time.Parse(domain.DateFormat, r.ScheduledDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID:   customerID,
		ConsultantID: r.ConsultantID,
		ServiceID:    r.ServiceID,
		Date:         scheduledDate,
		StartTime:    startTime,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse converts the use case result to the HTTP response.
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	b := resp.Booking
	return &BookingResponse{
		ID:               b.ID,
		BookingReference: b.BookingReference,
		CustomerID:       b.CustomerID,
		ConsultantID:     b.ConsultantID,
		ServiceID:        b.ServiceID,
		ScheduledDate:    b.ScheduledDate.Format(domain.DateFormat),
		StartTime:        b.StartTime.String(),
		DurationMinutes:  b.DurationMinutes,
		Status:           string(b.Status),
		ServiceName:      b.ServiceName,
		ServicePrice:     b.ServicePrice,
		Notes:            b.Notes,
		CreatedAt:        b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        b.UpdatedAt.Format(time.RFC3339),
	}
}
