package get_available_times

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/domain"
	"github.com/intellectif-llc/intellectif-website-sub002/internal/integrations/catalogservice"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/types"
)

const (
	testConsultantID = int64(7)
	testServiceID    = int64(3)
)

var (
	queryDate = time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC) // Monday
	frozenNow = time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC)
)

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (r *fakeBookingRepo) GetByConsultantWithFilter(_ context.Context, filter domain.ConsultantBookingsFilter) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.ConsultantID != filter.ConsultantID {
			continue
		}
		if filter.CapacityOnly && !b.CountsTowardCapacity() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type fakeScheduleRepo struct {
	templates []domain.AvailabilityTemplate
	breaks    []domain.Break
	timeOff   []domain.TimeOff
}

func (r *fakeScheduleRepo) GetTemplates(context.Context, int64) ([]domain.AvailabilityTemplate, error) {
	return r.templates, nil
}

func (r *fakeScheduleRepo) GetBreaks(context.Context, int64, time.Time) ([]domain.Break, error) {
	return r.breaks, nil
}

func (r *fakeScheduleRepo) GetTimeOff(context.Context, int64, time.Time) ([]domain.TimeOff, error) {
	return r.timeOff, nil
}

type fakeCatalog struct {
	consultant *catalogservice.Consultant
	service    *catalogservice.Service
}

func (c *fakeCatalog) GetConsultant(context.Context, int64) (*catalogservice.Consultant, error) {
	if c.consultant == nil {
		return nil, catalogservice.ErrConsultantNotFound
	}
	return c.consultant, nil
}

func (c *fakeCatalog) GetService(context.Context, int64) (*catalogservice.Service, error) {
	if c.service == nil {
		return nil, catalogservice.ErrServiceNotFound
	}
	return c.service, nil
}

// morningTemplate opens 09:00-11:00 so slot lists in assertions stay short.
func morningTemplate(maxBookings int) domain.AvailabilityTemplate {
	return domain.AvailabilityTemplate{
		ID:           1,
		ConsultantID: testConsultantID,
		DayOfWeek:    int(time.Monday),
		StartTime:    "09:00",
		EndTime:      "11:00",
		MaxBookings:  maxBookings,
		Timezone:     "UTC",
		IsActive:     true,
	}
}

func newTestUseCase(templates []domain.AvailabilityTemplate, bookings []*domain.Booking) *UseCase {
	uc := NewUseCase(
		&fakeBookingRepo{bookings: bookings},
		&fakeScheduleRepo{templates: templates},
		&fakeCatalog{
			consultant: &catalogservice.Consultant{ID: testConsultantID, Timezone: "UTC", IsActive: true},
			service: &catalogservice.Service{
				ID:                 testServiceID,
				Name:               "Strategy Session",
				DurationMinutes:    30,
				BufferAfterMinutes: 15,
				IsActive:           true,
			},
		},
		Options{
			SlotGranularityMinutes:  30,
			MinBookingNoticeMinutes: 60,
			MaxSearchDaysAhead:      90,
			Timezone:                "UTC",
		},
		noopLogger{},
	)
	uc.timeProvider = &fixedTime{now: frozenNow}
	return uc
}

func request() *Request {
	return &Request{ConsultantID: testConsultantID, ServiceID: testServiceID, Date: queryDate}
}

func slotTimes(slots []domain.TimeSlot) []types.TimeString {
	out := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.StartTime)
	}
	return out
}

func TestExecute_OpenDay(t *testing.T) {
	uc := newTestUseCase([]domain.AvailabilityTemplate{morningTemplate(2)}, nil)

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	// 09:00-11:00, 30 min service, 30 min grid: starts up to 10:30.
	assert.Equal(t,
		[]types.TimeString{"09:00", "09:30", "10:00", "10:30"},
		slotTimes(resp.Slots))
	for _, s := range resp.Slots {
		assert.Equal(t, 2, s.AvailableSpots)
		assert.Equal(t, 2, s.TotalSpots)
		assert.Equal(t, 30, s.DurationMinutes)
	}
}

func TestExecute_ExistingBookingConsumesCapacity(t *testing.T) {
	existing := []*domain.Booking{{
		ID:                 1,
		ConsultantID:       testConsultantID,
		StartTime:          "09:00",
		DurationMinutes:    30,
		BufferAfterMinutes: 15,
		Status:             domain.StatusConfirmed,
	}}

	uc := newTestUseCase([]domain.AvailabilityTemplate{morningTemplate(1)}, existing)

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	// [09:00, 09:45) is occupied: 09:00 gone, and 09:30's own span
	// [09:30, 10:15) overlaps the buffer tail, so it is gone too.
	assert.Equal(t, []types.TimeString{"10:00", "10:30"}, slotTimes(resp.Slots))
}

func TestExecute_PendingHoldsCapacity(t *testing.T) {
	existing := []*domain.Booking{{
		ID:              1,
		ConsultantID:    testConsultantID,
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusPending,
	}}

	uc := newTestUseCase([]domain.AvailabilityTemplate{morningTemplate(1)}, existing)

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.NotContains(t, slotTimes(resp.Slots), types.TimeString("10:00"),
		"a pending booking must hold its slot")
}

func TestExecute_ClosedDayReturnsEmptySlice(t *testing.T) {
	uc := newTestUseCase([]domain.AvailabilityTemplate{morningTemplate(1)}, nil)

	req := request()
	req.Date = queryDate.AddDate(0, 0, 1) // Tuesday, no template

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestExecute_SameDayNoticeFilter(t *testing.T) {
	uc := newTestUseCase([]domain.AvailabilityTemplate{morningTemplate(1)}, nil)
	// 08:45 on the query date itself: 60 min notice pushes the earliest
	// bookable start to 09:45, so only the 10:00 and 10:30 slots survive.
	uc.timeProvider = &fixedTime{now: time.Date(2025, 6, 23, 8, 45, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"10:00", "10:30"}, slotTimes(resp.Slots))
}

func TestExecute_OverlappingWindowsKeepBestCapacity(t *testing.T) {
	second := morningTemplate(3)
	second.ID = 2
	second.StartTime = "10:00"
	second.EndTime = "12:00"

	uc := newTestUseCase([]domain.AvailabilityTemplate{morningTemplate(1), second}, nil)

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	byStart := make(map[types.TimeString]domain.TimeSlot)
	for _, s := range resp.Slots {
		byStart[s.StartTime] = s
	}

	// 09:00 exists only in the first window.
	assert.Equal(t, 1, byStart["09:00"].AvailableSpots)
	// 10:00 is offered by both; the roomier window wins.
	assert.Equal(t, 3, byStart["10:00"].AvailableSpots)
	// 11:30 exists only in the second window.
	assert.Equal(t, 3, byStart["11:30"].AvailableSpots)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase([]domain.AvailabilityTemplate{morningTemplate(1)}, nil)

	req := request()
	req.Date = frozenNow.AddDate(0, 0, -1)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ConsultantNotFound(t *testing.T) {
	uc := newTestUseCase([]domain.AvailabilityTemplate{morningTemplate(1)}, nil)
	uc.catalogClient.(*fakeCatalog).consultant = nil

	_, err := uc.Execute(context.Background(), request())
	assert.ErrorIs(t, err, ErrConsultantNotFound)
}

func TestExecute_InactiveConsultant(t *testing.T) {
	uc := newTestUseCase([]domain.AvailabilityTemplate{morningTemplate(1)}, nil)
	uc.catalogClient.(*fakeCatalog).consultant.IsActive = false

	_, err := uc.Execute(context.Background(), request())
	assert.ErrorIs(t, err, ErrConsultantInactive)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase([]domain.AvailabilityTemplate{morningTemplate(1)}, nil)

	_, err := uc.Execute(context.Background(), &Request{ConsultantID: 0, ServiceID: testServiceID, Date: queryDate})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
