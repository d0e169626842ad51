package get_available_times

import (
	"context"
	"time"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/domain"
	"github.com/intellectif-llc/intellectif-website-sub002/internal/integrations/catalogservice"
)

// BookingRepository reads existing bookings for conflict detection.
type BookingRepository interface {
	GetByConsultantWithFilter(ctx context.Context, filter domain.ConsultantBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository reads consultant schedule rules.
type ScheduleRepository interface {
	GetTemplates(ctx context.Context, consultantID int64) ([]domain.AvailabilityTemplate, error)
	GetBreaks(ctx context.Context, consultantID int64, date time.Time) ([]domain.Break, error)
	GetTimeOff(ctx context.Context, consultantID int64, date time.Time) ([]domain.TimeOff, error)
}

// CatalogClient reads consultant and service definitions.
type CatalogClient interface {
	GetConsultant(ctx context.Context, consultantID int64) (*catalogservice.Consultant, error)
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

// TimeProvider abstracts the clock for testing.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface of the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
