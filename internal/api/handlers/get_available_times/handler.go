package get_available_times

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/api/handlers"
	"github.com/intellectif-llc/intellectif-website-sub002/internal/domain"
	getAvailableTimes "github.com/intellectif-llc/intellectif-website-sub002/internal/usecase/get_available_times"
)

const (
	msgInvalidConsultantID = "invalid consultant ID"
	msgInvalidServiceID    = "invalid service ID"
	msgInvalidDate         = "invalid date, expected YYYY-MM-DD"
	msgConsultantNotFound  = "consultant not found"
	msgConsultantInactive  = "consultant is not taking bookings"
	msgServiceNotFound     = "service not found"
	msgServiceInactive     = "service is not bookable"
	msgInvalidBookingDate  = "invalid date"
	msgDateTooFar          = "date is too far in the future"
	msgInvalidScheduleRule = "the consultant's schedule is temporarily unavailable"
)

type Handler struct {
	useCase GetAvailableTimesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableTimesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/consultants/{consultantId}/available-times?serviceId=&date=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	consultantID, err := strconv.ParseInt(vars["consultantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /consultants/{id}/available-times - Invalid consultant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	serviceID, err := strconv.ParseInt(r.URL.Query().Get("serviceId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /consultants/{id}/available-times - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /consultants/{id}/available-times - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableTimes.Request{
		ConsultantID: consultantID,
		ServiceID:    serviceID,
		Date:         date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableTimes.ErrConsultantNotFound):
			handlers.RespondNotFound(w, msgConsultantNotFound)

		case errors.Is(err, getAvailableTimes.ErrConsultantInactive):
			handlers.RespondBadRequest(w, msgConsultantInactive)

		case errors.Is(err, getAvailableTimes.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableTimes.ErrServiceInactive):
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, getAvailableTimes.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, getAvailableTimes.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableTimes.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidConsultantID)

		case errors.Is(err, getAvailableTimes.ErrInvalidScheduleRule):
			h.logger.Error("GET /consultants/{id}/available-times - Invalid schedule rule: consultant_id=%d, error=%v",
				consultantID, err)
			handlers.RespondServiceUnavailable(w, msgInvalidScheduleRule)

		default:
			h.logger.Error("GET /consultants/{id}/available-times - Failed: consultant_id=%d, error=%v",
				consultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /consultants/{id}/available-times - %d slots: consultant_id=%d, service_id=%d, date=%s",
		len(result.Slots), consultantID, serviceID, date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
