package get_available_dates

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/api/handlers"
	getAvailableDates "github.com/intellectif-llc/intellectif-website-sub002/internal/usecase/get_available_dates"
)

const (
	msgInvalidConsultantIDs = "invalid consultantIds parameter"
	msgInvalidServiceID     = "invalid service ID"
	msgInvalidDaysAhead     = "invalid daysAhead parameter"
	msgServiceNotFound      = "service not found"
	msgServiceInactive      = "service is not bookable"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-dates?consultantIds=1,2&serviceId=3&daysAhead=30
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	consultantIDs, err := parseIDList(query.Get("consultantIds"))
	if err != nil {
		h.logger.Warn("GET /available-dates - Invalid consultant IDs: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultantIDs)
		return
	}

	serviceID, err := strconv.ParseInt(query.Get("serviceId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /available-dates - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	daysAhead := 0
	if raw := query.Get("daysAhead"); raw != "" {
		daysAhead, err = strconv.Atoi(raw)
		if err != nil || daysAhead < 0 {
			h.logger.Warn("GET /available-dates - Invalid daysAhead: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidDaysAhead)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableDates.Request{
		ConsultantIDs: consultantIDs,
		ServiceID:     serviceID,
		DaysAhead:     daysAhead,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableDates.ErrServiceInactive):
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidConsultantIDs)

		default:
			h.logger.Error("GET /available-dates - Failed: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-dates - %d dates: service_id=%d, consultants=%v",
		len(result.Dates), serviceID, consultantIDs)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func parseIDList(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
