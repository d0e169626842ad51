package get_available_times

import (
	"fmt"
	"time"
)

func validateRequest(req *Request) error {
	if req.ConsultantID <= 0 {
		return fmt.Errorf("%w: consultantID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate rejects dates in the past and dates beyond the search horizon.
// today is already truncated to midnight in the consultant's zone.
func validateDate(requestDate, today time.Time, maxDaysAhead int) error {
	requestDay := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, today.Location())

	if requestDay.Before(today) {
		return ErrInvalidDate
	}

	if maxDaysAhead > 0 && requestDay.After(today.AddDate(0, 0, maxDaysAhead)) {
		return fmt.Errorf("%w: can only look %d days ahead", ErrDateTooFarInFuture, maxDaysAhead)
	}

	return nil
}
