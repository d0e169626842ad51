package create_booking

import (
	"errors"
	"net/http"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/api/handlers"
	"github.com/intellectif-llc/intellectif-website-sub002/internal/api/middleware"
	createBooking "github.com/intellectif-llc/intellectif-website-sub002/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgInvalidDate         = "invalid scheduled date, expected YYYY-MM-DD"
	msgInvalidTime         = "invalid start time, expected HH:MM"
	msgMissingUserID       = "missing user ID"
	msgSlotNotAvailable    = "the requested time slot is not available"
	msgConsultantNotFound  = "consultant not found"
	msgConsultantInactive  = "consultant is not taking bookings"
	msgServiceNotFound     = "service not found"
	msgServiceInactive     = "service is not bookable"
	msgOutsideAvailability = "the requested time is outside the consultant's availability"
	msgInvalidBookingDate  = "invalid booking date"
	msgDateTooFar          = "booking date is too far in the future"
	msgInvalidTimeSlot     = "start time is not on the slot grid"
	msgTooLateToBook       = "too late to book this slot"
	msgInvalidScheduleRule = "the consultant's schedule is temporarily unavailable"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate+" / "+msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: customer_id=%d, consultant_id=%d",
				customerID, req.ConsultantID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrOutsideAvailability):
			h.logger.Warn("POST /bookings - Outside availability: customer_id=%d, consultant_id=%d",
				customerID, req.ConsultantID)
			handlers.RespondConflict(w, msgOutsideAvailability)

		case errors.Is(err, createBooking.ErrConsultantNotFound):
			handlers.RespondNotFound(w, msgConsultantNotFound)

		case errors.Is(err, createBooking.ErrConsultantInactive):
			handlers.RespondBadRequest(w, msgConsultantInactive)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceInactive):
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createBooking.ErrInvalidScheduleRule):
			h.logger.Error("POST /bookings - Invalid schedule rule: consultant_id=%d, error=%v",
				req.ConsultantID, err)
			handlers.RespondServiceUnavailable(w, msgInvalidScheduleRule)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: customer_id=%d, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: id=%d, ref=%s, customer_id=%d",
		result.Booking.ID, result.Booking.BookingReference, customerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
