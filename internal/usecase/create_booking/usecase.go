package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/availability"
	"github.com/intellectif-llc/intellectif-website-sub002/internal/domain"
	catalogClient "github.com/intellectif-llc/intellectif-website-sub002/internal/integrations/catalogservice"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/interval"
)

// UseCase is the booking commit guard: it re-derives availability and writes
// the booking inside one serializable transaction, so no interleaving of
// concurrent requests can double-book a slot.
type UseCase struct {
	bookingRepo   BookingRepository
	scheduleRepo  ScheduleRepository
	catalogClient CatalogClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	opts          Options
	logger        Logger
}

func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogClient CatalogClient,
	txManager TransactionManager,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		scheduleRepo:  scheduleRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		opts:          opts,
		logger:        logger,
	}
}

// Execute validates, then commits the booking under a serializable
// transaction. The availability result a client saw earlier is advisory;
// only the check inside the transaction decides.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, consultant=%d, service=%d, date=%s, time=%s",
		req.CustomerID, req.ConsultantID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Validate input.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Resolve the consultant and the service outside the transaction;
	// catalog round-trips have no place inside a serializable section.
	consultant, err := uc.catalogClient.GetConsultant(ctx, req.ConsultantID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrConsultantNotFound) {
			uc.logger.Warn("CreateBooking: consultant id=%d not found", req.ConsultantID)
			return nil, ErrConsultantNotFound
		}
		uc.logger.Error("CreateBooking: failed to get consultant id=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: failed to get consultant: %v", ErrInternal, err)
	}
	if !consultant.IsActive {
		return nil, ErrConsultantInactive
	}

	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		return nil, ErrServiceInactive
	}

	// 3. Resolve "now" in the consultant's zone and validate date and notice.
	now, today, err := uc.localNow(consultant.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if err := validateDate(req.Date, today, uc.opts.MaxSearchDaysAhead); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	startMinutes, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	if err := validateNotice(req.Date, startMinutes, now, uc.opts.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("CreateBooking: notice validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 4. The guarded section: windows, conflict check and insert share one
	// serializable transaction, with the day's booking rows locked FOR UPDATE.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Re-derive the open windows from the current schedule rules.
		windows, err := uc.computeWindows(txCtx, req.ConsultantID, req.Date)
		if err != nil {
			return err
		}

		// 4.2. The service interval must fit inside an open window; buffers
		// may hang over the edges.
		serviceInterval := interval.New(startMinutes, startMinutes+service.DurationMinutes)
		candidates := containingWindows(windows, serviceInterval)
		if len(candidates) == 0 {
			uc.logger.Warn("CreateBooking: %s+%dmin outside availability for consultant=%d on %s",
				req.StartTime, service.DurationMinutes, req.ConsultantID, req.Date.Format(domain.DateFormat))
			return ErrOutsideAvailability
		}

		// 4.3. The start must sit on the slot grid of a containing window.
		if !onSlotGrid(candidates, startMinutes, service.DurationMinutes, uc.opts.SlotGranularityMinutes) {
			uc.logger.Warn("CreateBooking: %s is not on the slot grid", req.StartTime)
			return ErrInvalidTimeSlot
		}

		// 4.4. Lock and load the day's capacity-holding bookings.
		bookings, err := uc.bookingRepo.GetByConsultantWithFilter(txCtx, domain.ConsultantBookingsFilter{
			ConsultantID: req.ConsultantID,
			StartDate:    &req.Date,
			EndDate:      &req.Date,
			CapacityOnly: true,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 4.5. The candidate fits if any containing window still has capacity
		// over its whole occupied span.
		span := availability.OccupiedSpan(startMinutes, service.DurationMinutes,
			service.BufferBeforeMinutes, service.BufferAfterMinutes)

		fits := false
		for _, window := range candidates {
			remaining, err := availability.CapacityRemaining(window, span, bookings)
			if err != nil {
				uc.logger.Error("CreateBooking: capacity check failed: %v", err)
				return fmt.Errorf("%w: capacity check failed: %v", ErrInternal, err)
			}
			if remaining >= 1 {
				fits = true
				break
			}
		}
		if !fits {
			uc.logger.Warn("CreateBooking: no capacity for consultant=%d on %s at %s",
				req.ConsultantID, req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotNotAvailable
		}

		// 4.6. Commit, denormalizing the service data onto the row.
		booking := &domain.Booking{
			CustomerID:          req.CustomerID,
			ConsultantID:        req.ConsultantID,
			ServiceID:           req.ServiceID,
			ScheduledDate:       req.Date,
			StartTime:           req.StartTime,
			DurationMinutes:     service.DurationMinutes,
			BufferBeforeMinutes: service.BufferBeforeMinutes,
			BufferAfterMinutes:  service.BufferAfterMinutes,
			Status:              domain.StatusConfirmed,
			ServiceName:         service.Name,
			ServicePrice:        service.Price,
			Notes:               req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d ref=%s for customer=%d",
		result.ID, result.BookingReference, req.CustomerID)

	return &Response{Booking: result}, nil
}

func (uc *UseCase) computeWindows(ctx context.Context, consultantID int64, date time.Time) ([]domain.DailyWindow, error) {
	templates, err := uc.scheduleRepo.GetTemplates(ctx, consultantID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get templates: %v", err)
		return nil, fmt.Errorf("%w: failed to get templates: %v", ErrInternal, err)
	}

	breaks, err := uc.scheduleRepo.GetBreaks(ctx, consultantID, date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get breaks: %v", err)
		return nil, fmt.Errorf("%w: failed to get breaks: %v", ErrInternal, err)
	}

	timeOff, err := uc.scheduleRepo.GetTimeOff(ctx, consultantID, date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get time off: %v", err)
		return nil, fmt.Errorf("%w: failed to get time off: %v", ErrInternal, err)
	}

	windows, err := availability.ComputeDailyWindows(consultantID, date, templates, breaks, timeOff)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to compute windows: %v", err)
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

// containingWindows returns the windows whose open interval contains the
// whole service interval.
func containingWindows(windows []domain.DailyWindow, serviceInterval interval.Interval) []domain.DailyWindow {
	var out []domain.DailyWindow
	for _, w := range windows {
		if w.Window.Contains(serviceInterval) {
			out = append(out, w)
		}
	}
	return out
}

// onSlotGrid reports whether the start is one of the offered slot starts of
// at least one containing window.
func onSlotGrid(windows []domain.DailyWindow, startMinutes, durationMinutes, granularityMinutes int) bool {
	for _, w := range windows {
		for _, s := range availability.SlotStarts(w.Window, durationMinutes, granularityMinutes) {
			if s == startMinutes {
				return true
			}
		}
	}
	return false
}
