package get_available_times

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/availability"
	"github.com/intellectif-llc/intellectif-website-sub002/internal/domain"
	catalogClient "github.com/intellectif-llc/intellectif-website-sub002/internal/integrations/catalogservice"
)

// UseCase computes the bookable start times of one consultant on one date.
type UseCase struct {
	bookingRepo   BookingRepository
	scheduleRepo  ScheduleRepository
	catalogClient CatalogClient
	timeProvider  TimeProvider
	opts          Options
	logger        Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogClient CatalogClient,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		scheduleRepo:  scheduleRepo,
		catalogClient: catalogClient,
		timeProvider:  &RealTimeProvider{},
		opts:          opts,
		logger:        logger,
	}
}

// Execute computes the offered slots. The result is a best-effort snapshot:
// only the booking commit guard gives a hard guarantee, so a slot listed here
// can still be lost to a concurrent booking.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableTimes: consultant=%d, service=%d, date=%s",
		req.ConsultantID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Validate input.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableTimes: validation failed: %v", err)
		return nil, err
	}

	// 2. Resolve the consultant and the service.
	consultant, err := uc.catalogClient.GetConsultant(ctx, req.ConsultantID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrConsultantNotFound) {
			uc.logger.Warn("GetAvailableTimes: consultant id=%d not found", req.ConsultantID)
			return nil, ErrConsultantNotFound
		}
		uc.logger.Error("GetAvailableTimes: failed to get consultant id=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: failed to get consultant: %v", ErrInternal, err)
	}
	if !consultant.IsActive {
		return nil, ErrConsultantInactive
	}

	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableTimes: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableTimes: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		return nil, ErrServiceInactive
	}

	// 3. Resolve "now" in the consultant's zone and validate the date.
	now, today, err := uc.localNow(consultant.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if err := validateDate(req.Date, today, uc.opts.MaxSearchDaysAhead); err != nil {
		uc.logger.Warn("GetAvailableTimes: date validation failed: %v", err)
		return nil, err
	}

	// 4. Fetch the schedule rules and derive the daily windows.
	windows, err := uc.computeWindows(ctx, req.ConsultantID, req.Date)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		uc.logger.Info("GetAvailableTimes: consultant id=%d has no open windows on %s",
			req.ConsultantID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req), nil
	}

	// 5. Fetch the capacity-holding bookings of the date.
	bookings, err := uc.bookingRepo.GetByConsultantWithFilter(ctx, domain.ConsultantBookingsFilter{
		ConsultantID: req.ConsultantID,
		StartDate:    &req.Date,
		EndDate:      &req.Date,
		CapacityOnly: true,
	})
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Evaluate every candidate start against the booking ledger.
	byStart, err := collectSlots(windows, service, bookings, uc.opts.SlotGranularityMinutes)
	if err != nil {
		if errors.Is(err, availability.ErrInconsistentBooking) {
			uc.logger.Error("GetAvailableTimes: inconsistent booking data: %v", err)
		}
		return nil, fmt.Errorf("%w: failed to evaluate slots: %v", ErrInternal, err)
	}

	// 7. On the current date, drop starts inside the minimum notice period.
	uc.applyNoticeFilter(byStart, req.Date, now, today)

	slots := sortedSlots(byStart)
	uc.logger.Info("GetAvailableTimes: %d slots for consultant=%d, service=%d, date=%s",
		len(slots), req.ConsultantID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		ConsultantID: req.ConsultantID,
		ServiceID:    req.ServiceID,
		Date:         req.Date,
		Slots:        slots,
	}, nil
}

func (uc *UseCase) computeWindows(ctx context.Context, consultantID int64, date time.Time) ([]domain.DailyWindow, error) {
	templates, err := uc.scheduleRepo.GetTemplates(ctx, consultantID)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get templates: %v", err)
		return nil, fmt.Errorf("%w: failed to get templates: %v", ErrInternal, err)
	}

	breaks, err := uc.scheduleRepo.GetBreaks(ctx, consultantID, date)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get breaks: %v", err)
		return nil, fmt.Errorf("%w: failed to get breaks: %v", ErrInternal, err)
	}

	timeOff, err := uc.scheduleRepo.GetTimeOff(ctx, consultantID, date)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get time off: %v", err)
		return nil, fmt.Errorf("%w: failed to get time off: %v", ErrInternal, err)
	}

	windows, err := availability.ComputeDailyWindows(consultantID, date, templates, breaks, timeOff)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to compute windows: %v", err)
		if errors.Is(err, availability.ErrInvalidRule) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidScheduleRule, err)
		}
		return nil, fmt.Errorf("%w: failed to compute windows: %v", ErrInternal, err)
	}

	return windows, nil
}

// localNow returns the current instant plus midnight of the current date in
// the consultant's zone, falling back to the engine default zone.
func (uc *UseCase) localNow(consultantZone string) (time.Time, time.Time, error) {
	zone := consultantZone
	if zone == "" {
		zone = uc.opts.Timezone
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("load timezone %q: %v", zone, err)
	}

	now := uc.timeProvider.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	return now, today, nil
}

func (uc *UseCase) applyNoticeFilter(byStart map[int]domain.TimeSlot, date, now, today time.Time) {
	requestDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, today.Location())
	if !requestDay.Equal(today) {
		return
	}

	earliest := now.Add(time.Duration(uc.opts.MinBookingNoticeMinutes) * time.Minute)
	for start := range byStart {
		slotTime := today.Add(time.Duration(start) * time.Minute)
		if slotTime.Before(earliest) {
			delete(byStart, start)
		}
	}
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		ConsultantID: req.ConsultantID,
		ServiceID:    req.ServiceID,
		Date:         req.Date,
		Slots:        []domain.TimeSlot{},
	}
}
