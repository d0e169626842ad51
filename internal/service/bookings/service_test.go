package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/domain"
	bookingRepo "github.com/intellectif-llc/intellectif-website-sub002/internal/infra/storage/booking"
	"github.com/intellectif-llc/intellectif-website-sub002/internal/service/bookings/models"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/ptr"
)

const (
	testCustomerID   = int64(100)
	testConsultantID = int64(7)
	strangerID       = int64(999)
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	cancelledID     int64
	cancelledStatus domain.BookingStatus
	cancelledReason string

	updatedID     int64
	updatedStatus domain.BookingStatus
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	for _, b := range f.bookings {
		if b.BookingReference == reference {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.CustomerID != customerID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByConsultantWithFilter(ctx context.Context, filter domain.ConsultantBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.ConsultantID != filter.ConsultantID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.updatedID = id
	f.updatedStatus = status
	f.bookings[id].Status = status
	return nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.cancelledID = id
	f.cancelledStatus = status
	f.cancelledReason = reason
	f.bookings[id].Status = status
	return nil
}

func testBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:               id,
		BookingReference: "11111111-2222-3333-4444-555555555555",
		CustomerID:       testCustomerID,
		ConsultantID:     testConsultantID,
		ServiceID:        3,
		ScheduledDate:    time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC),
		StartTime:        "10:00",
		DurationMinutes:  30,
		Status:           status,
		ServiceName:      "Strategy Session",
		ServicePrice:     150,
	}
}

func TestService_GetByID_AccessControl(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
	svc := NewService(repo, noopLogger{})

	t.Run("customer can view", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, testCustomerID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "2025-06-23", resp.ScheduledDate)
		assert.Equal(t, "10:00", resp.StartTime)
	})

	t.Run("consultant can view", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, testConsultantID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, strangerID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing booking", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 42, testCustomerID)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_GetByReference(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
	svc := NewService(repo, noopLogger{})

	resp, err := svc.GetByReference(context.Background(), "11111111-2222-3333-4444-555555555555", testCustomerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	_, err = svc.GetByReference(context.Background(), "", testCustomerID)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetByReference(context.Background(), "unknown-ref", testCustomerID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetUserBookings_StatusFilter(t *testing.T) {
	repo := newFakeBookingRepo(
		testBooking(1, domain.StatusConfirmed),
		testBooking(2, domain.StatusCompleted),
	)
	svc := NewService(repo, noopLogger{})

	list, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: testCustomerID,
		Status: ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	require.Len(t, list.Bookings, 1)
	assert.Equal(t, int64(1), list.Bookings[0].ID)

	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: testCustomerID,
		Status: ptr.Ptr("definitely-not-a-status"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetConsultantBookings_OwnAgendaOnly(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
	svc := NewService(repo, noopLogger{})

	list, err := svc.GetConsultantBookings(context.Background(), &models.GetConsultantBookingsRequest{
		UserID:       testConsultantID,
		ConsultantID: testConsultantID,
	})
	require.NoError(t, err)
	assert.Len(t, list.Bookings, 1)

	_, err = svc.GetConsultantBookings(context.Background(), &models.GetConsultantBookingsRequest{
		UserID:       strangerID,
		ConsultantID: testConsultantID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_Cancel(t *testing.T) {
	t.Run("customer cancel sets cancelled_by_customer", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
		svc := NewService(repo, noopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			UserID:             testCustomerID,
			CancellationReason: "schedule conflict",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelledByCustomer, repo.cancelledStatus)
		assert.Equal(t, "schedule conflict", repo.cancelledReason)
	})

	t.Run("consultant cancel sets cancelled_by_consultant", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusPending))
		svc := NewService(repo, noopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			UserID: testConsultantID,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelledByConsultant, repo.cancelledStatus)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
		svc := NewService(repo, noopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: strangerID})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusCompleted))
		svc := NewService(repo, noopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: testCustomerID})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("oversized reason is rejected", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
		svc := NewService(repo, noopLogger{})

		longReason := make([]byte, domain.MaxCancellationReasonLen+1)
		for i := range longReason {
			longReason[i] = 'x'
		}

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			UserID:             testCustomerID,
			CancellationReason: string(longReason),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	t.Run("consultant confirms pending booking", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusPending))
		svc := NewService(repo, noopLogger{})

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: testConsultantID,
			Status: "confirmed",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, repo.updatedStatus)
	})

	t.Run("customer may not update status", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusPending))
		svc := NewService(repo, noopLogger{})

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: testCustomerID,
			Status: "confirmed",
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("disallowed transition", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusPending))
		svc := NewService(repo, noopLogger{})

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: testConsultantID,
			Status: "completed",
		})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("unknown status", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
		svc := NewService(repo, noopLogger{})

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: testConsultantID,
			Status: "on-hold",
		})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestTransitionAllowed(t *testing.T) {
	assert.True(t, transitionAllowed(domain.StatusPending, domain.StatusConfirmed))
	assert.True(t, transitionAllowed(domain.StatusConfirmed, domain.StatusCompleted))
	assert.True(t, transitionAllowed(domain.StatusConfirmed, domain.StatusNoShow))

	assert.False(t, transitionAllowed(domain.StatusPending, domain.StatusCompleted))
	assert.False(t, transitionAllowed(domain.StatusCompleted, domain.StatusConfirmed))
	assert.False(t, transitionAllowed(domain.StatusCancelledByCustomer, domain.StatusConfirmed))
}
