package get_available_dates

import (
	"github.com/intellectif-llc/intellectif-website-sub002/internal/domain"
	getAvailableDates "github.com/intellectif-llc/intellectif-website-sub002/internal/usecase/get_available_dates"
)

// DateResponse HTTP model of one available date
type DateResponse struct {
	Date           string `json:"date"` // "2025-10-15"
	AvailableSlots int    `json:"availableSlots"`
}

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	ServiceID int64          `json:"serviceId"`
	Dates     []DateResponse `json:"dates"`
}

// FromUseCaseResponse converts the use case result to the HTTP response.
func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailableDatesResponse {
	dates := make([]DateResponse, len(resp.Dates))
	for i, d := range resp.Dates {
		dates[i] = DateResponse{
			Date:           d.Date.Format(domain.DateFormat),
			AvailableSlots: d.AvailableSlots,
		}
	}

	return &AvailableDatesResponse{
		ServiceID: resp.ServiceID,
		Dates:     dates,
	}
}
