package get_consultant_bookings

import (
	"context"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/service/bookings/models"
)

type BookingService interface {
	GetConsultantBookings(ctx context.Context, req *models.GetConsultantBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
