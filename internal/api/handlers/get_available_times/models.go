package get_available_times

import (
	"github.com/intellectif-llc/intellectif-website-sub002/internal/domain"
	getAvailableTimes "github.com/intellectif-llc/intellectif-website-sub002/internal/usecase/get_available_times"
)

// SlotResponse HTTP model of one offered slot
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	AvailableSpots  int    `json:"availableSpots"`
	TotalSpots      int    `json:"totalSpots"`
}

// AvailableTimesResponse HTTP response model
type AvailableTimesResponse struct {
	ConsultantID int64          `json:"consultantId"`
	ServiceID    int64          `json:"serviceId"`
	Date         string         `json:"date"` // "2025-10-15"
	Slots        []SlotResponse `json:"slots"`
}

// FromUseCaseResponse converts the use case result to the HTTP response.
func FromUseCaseResponse(resp *getAvailableTimes.Response) *AvailableTimesResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:       s.StartTime.String(),
			DurationMinutes: s.DurationMinutes,
			AvailableSpots:  s.AvailableSpots,
			TotalSpots:      s.TotalSpots,
		}
	}

	return &AvailableTimesResponse{
		ConsultantID: resp.ConsultantID,
		ServiceID:    resp.ServiceID,
		Date:         resp.Date.Format(domain.DateFormat),
		Slots:        slots,
	}
}
