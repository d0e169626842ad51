package get_available_dates

import "fmt"

func validateRequest(req *Request) error {
	if len(req.ConsultantIDs) == 0 {
		return fmt.Errorf("%w: at least one consultantID is required", ErrInvalidInput)
	}

	for _, id := range req.ConsultantIDs {
		if id <= 0 {
			return fmt.Errorf("%w: consultantID must be positive", ErrInvalidInput)
		}
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.DaysAhead < 0 {
		return fmt.Errorf("%w: daysAhead must not be negative", ErrInvalidInput)
	}

	return nil
}

// horizonDays resolves the effective scan horizon: the caller's value when
// given, capped at the engine maximum.
func horizonDays(requested int, opts Options) int {
	days := requested
	if days == 0 {
		days = opts.SearchDaysAhead
	}
	if opts.MaxSearchDaysAhead > 0 && days > opts.MaxSearchDaysAhead {
		days = opts.MaxSearchDaysAhead
	}
	return days
}
