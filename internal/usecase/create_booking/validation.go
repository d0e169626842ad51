package create_booking

import (
	"fmt"
	"time"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/domain"
)

func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.ConsultantID <= 0 {
		return fmt.Errorf("%w: consultantID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate rejects dates in the past and dates beyond the booking horizon.
func validateDate(requestDate, today time.Time, maxDaysAhead int) error {
	requestDay := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, today.Location())

	if requestDay.Before(today) {
		return ErrInvalidDate
	}

	if maxDaysAhead > 0 && requestDay.After(today.AddDate(0, 0, maxDaysAhead)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxDaysAhead)
	}

	return nil
}

// validateNotice rejects starts closer than the minimum notice period.
func validateNotice(requestDate time.Time, startMinutes int, now time.Time, noticeMinutes int) error {
	day := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, now.Location())
	slotTime := day.Add(time.Duration(startMinutes) * time.Minute)

	if slotTime.Before(now.Add(time.Duration(noticeMinutes) * time.Minute)) {
		return fmt.Errorf("%w: requires %d minutes notice", ErrTooLateToBook, noticeMinutes)
	}

	return nil
}
