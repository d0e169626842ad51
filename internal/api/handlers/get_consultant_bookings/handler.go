package get_consultant_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/api/handlers"
	"github.com/intellectif-llc/intellectif-website-sub002/internal/api/middleware"
	"github.com/intellectif-llc/intellectif-website-sub002/internal/service/bookings"
	"github.com/intellectif-llc/intellectif-website-sub002/internal/service/bookings/models"
)

const (
	msgInvalidConsultantID = "invalid consultant ID"
	msgMissingUserID       = "missing user ID"
	msgForbidden           = "access denied"
	msgInvalidStatus       = "invalid status filter"
	msgInvalidDateFilter   = "invalid date filter, expected YYYY-MM-DD"

	dateFormat = "2006-01-02"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/consultants/{consultantId}/bookings?startDate=&endDate=&status=&includeInactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	consultantID, err := strconv.ParseInt(vars["consultantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /consultants/{id}/bookings - Invalid consultant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /consultants/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req, err := parseRequest(r, consultantID, userID)
	if err != nil {
		h.logger.Warn("GET /consultants/{id}/bookings - Invalid query: consultant_id=%d, error=%v",
			consultantID, err)
		handlers.RespondBadRequest(w, msgInvalidDateFilter)
		return
	}

	list, err := h.service.GetConsultantBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /consultants/{id}/bookings - Access denied: consultant_id=%d, user_id=%d",
				consultantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("GET /consultants/{id}/bookings - Invalid status filter: consultant_id=%d", consultantID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /consultants/{id}/bookings - Failed to list bookings: consultant_id=%d, error=%v",
				consultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

func parseRequest(r *http.Request, consultantID, userID int64) (*models.GetConsultantBookingsRequest, error) {
	query := r.URL.Query()

	req := &models.GetConsultantBookingsRequest{
		UserID:          userID,
		ConsultantID:    consultantID,
		IncludeInactive: query.Get("includeInactive") == "true",
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(dateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(dateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	return req, nil
}
