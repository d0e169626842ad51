package get_available_dates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/availability"
	"github.com/intellectif-llc/intellectif-website-sub002/internal/domain"
	catalogClient "github.com/intellectif-llc/intellectif-website-sub002/internal/integrations/catalogservice"
)

// UseCase enumerates the upcoming dates with at least one bookable slot for
// a pool of consultants offering the same service.
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

// Execute scans forward from tomorrow, date by date, and stops as soon as
// MaxDateResults dates are collected or the horizon is exhausted. Consultants
// that cannot be evaluated (gone from the catalog, inactive, broken schedule
// rules) are skipped so one bad pool member does not blank the whole answer.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDates: consultants=%v, service=%d, daysAhead=%d",
		req.ConsultantIDs, req.ServiceID, req.DaysAhead)

	// 1. Validate input.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}

	// 2. Resolve the service.
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableDates: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		return nil, ErrServiceInactive
	}

	// 3. Resolve "today" in the engine zone. Pool scans use one zone for the
	// whole answer; per-consultant zones only matter for same-day notice
	// filtering, which a strictly-future scan never hits.
	loc, err := time.LoadLocation(uc.opts.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: load timezone %q: %v", ErrInternal, uc.opts.Timezone, err)
	}
	now := uc.timeProvider.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	// 4. Load the stable per-consultant data once, dropping pool members
	// that cannot serve.
	pool := uc.loadPool(ctx, req.ConsultantIDs)
	if len(pool) == 0 {
		uc.logger.Warn("GetAvailableDates: no usable consultants in pool %v", req.ConsultantIDs)
		return &Response{ServiceID: req.ServiceID, Dates: []domain.DateAvailability{}}, nil
	}

	// 5. Scan forward, earliest date first, with early termination.
	horizon := horizonDays(req.DaysAhead, uc.opts)
	dates := make([]domain.DateAvailability, 0, uc.opts.MaxDateResults)

	for offset := 1; offset <= horizon && len(dates) < uc.opts.MaxDateResults; offset++ {
		date := today.AddDate(0, 0, offset)

		total := 0
		for _, member := range pool {
			count, err := uc.countBookableSlots(ctx, member, service, date)
			if err != nil {
				uc.logger.Warn("GetAvailableDates: skipping consultant id=%d on %s: %v",
					member.consultantID, date.Format(domain.DateFormat), err)
				continue
			}
			total += count
		}

		if total > 0 {
			dates = append(dates, domain.DateAvailability{Date: date, AvailableSlots: total})
		}
	}

	uc.logger.Info("GetAvailableDates: %d dates for service=%d over %d days",
		len(dates), req.ServiceID, horizon)

	return &Response{ServiceID: req.ServiceID, Dates: dates}, nil
}

// loadPool fetches the consultant profiles and templates once per request.
func (uc *UseCase) loadPool(ctx context.Context, consultantIDs []int64) []consultantSchedule {
	pool := make([]consultantSchedule, 0, len(consultantIDs))
	seen := make(map[int64]bool, len(consultantIDs))

	for _, id := range consultantIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		consultant, err := uc.catalogClient.GetConsultant(ctx, id)
		if err != nil {
			uc.logger.Warn("GetAvailableDates: dropping consultant id=%d: %v", id, err)
			continue
		}
		if !consultant.IsActive {
			uc.logger.Info("GetAvailableDates: dropping inactive consultant id=%d", id)
			continue
		}

		templates, err := uc.scheduleRepo.GetTemplates(ctx, id)
		if err != nil {
			uc.logger.Warn("GetAvailableDates: dropping consultant id=%d: %v", id, err)
			continue
		}
		if len(templates) == 0 {
			continue
		}

		pool = append(pool, consultantSchedule{consultantID: id, templates: templates})
	}

	return pool
}

// countBookableSlots counts the distinct bookable start times of one
// consultant on one date. A start reachable through several overlapping
// windows counts once.
func (uc *UseCase) countBookableSlots(
	ctx context.Context,
	member consultantSchedule,
	service *catalogClient.Service,
	date time.Time,
) (int, error) {
	breaks, err := uc.scheduleRepo.GetBreaks(ctx, member.consultantID, date)
	if err != nil {
		return 0, err
	}

	timeOff, err := uc.scheduleRepo.GetTimeOff(ctx, member.consultantID, date)
	if err != nil {
		return 0, err
	}

	windows, err := availability.ComputeDailyWindows(member.consultantID, date, member.templates, breaks, timeOff)
	if err != nil {
		return 0, err
	}
	if len(windows) == 0 {
		return 0, nil
	}

	bookings, err := uc.bookingRepo.GetByConsultantWithFilter(ctx, domain.ConsultantBookingsFilter{
		ConsultantID: member.consultantID,
		StartDate:    &date,
		EndDate:      &date,
		CapacityOnly: true,
	})
	if err != nil {
		return 0, err
	}

	bookable := make(map[int]bool)
	for _, window := range windows {
		for _, start := range availability.SlotStarts(window.Window, service.DurationMinutes, uc.opts.SlotGranularityMinutes) {
			if bookable[start] {
				continue
			}

			span := availability.OccupiedSpan(start, service.DurationMinutes, service.BufferBeforeMinutes, service.BufferAfterMinutes)
			remaining, err := availability.CapacityRemaining(window, span, bookings)
			if err != nil {
				return 0, err
			}
			if remaining >= 1 {
				bookable[start] = true
			}
		}
	}

	return len(bookable), nil
}
