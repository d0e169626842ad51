package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/domain"
	bookingRepo "github.com/intellectif-llc/intellectif-website-sub002/internal/infra/storage/booking"
	"github.com/intellectif-llc/intellectif-website-sub002/internal/service/bookings/models"
)

// Service handles the booking lifecycle after commit: reads, cancellations
// and status transitions. Creation goes through the commit guard use case,
// never through here.
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID returns a booking visible to the requesting user. A user sees a
// booking when they are its customer or its consultant.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !canView(booking, userID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetByReference returns a booking by its public reference, with the same
// visibility rule as GetByID.
func (s *Service) GetByReference(ctx context.Context, reference string, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByReference: fetching booking ref=%s for user=%d", reference, userID)

	if reference == "" {
		return nil, fmt.Errorf("%w: reference is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByReference: booking ref=%s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error for ref=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	if !canView(booking, userID) {
		s.logger.Warn("GetByReference: access denied for user=%d to booking ref=%s", userID, reference)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings returns a customer's booking history, optionally filtered
// by status.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// GetConsultantBookings returns a consultant's agenda. Only the consultant
// themselves may read it.
func (s *Service) GetConsultantBookings(ctx context.Context, req *models.GetConsultantBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetConsultantBookings: fetching bookings for consultant=%d, user=%d", req.ConsultantID, req.UserID)

	if req.UserID != req.ConsultantID {
		s.logger.Warn("GetConsultantBookings: access denied for user=%d to consultant=%d agenda",
			req.UserID, req.ConsultantID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetConsultantBookings: invalid filter for consultant=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByConsultantWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetConsultantBookings: repository error for consultant=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: GetConsultantBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Cancel cancels a booking. The customer cancels their own booking
// (cancelled_by_customer); the consultant cancels an appointment on their
// agenda (cancelled_by_consultant). Either way the slot's capacity is
// released immediately.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLen {
		return fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLen)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	var cancelStatus domain.BookingStatus
	switch req.UserID {
	case booking.CustomerID:
		cancelStatus = domain.StatusCancelledByCustomer
	case booking.ConsultantID:
		cancelStatus = domain.StatusCancelledByConsultant
	default:
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: cancelled booking id=%d with status=%s", bookingID, cancelStatus)
	return nil
}

// UpdateStatus moves a booking to a new lifecycle status. Only the
// consultant may do this, and only along allowed transitions: confirming a
// pending booking, completing or no-showing a confirmed one.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if req.UserID != booking.ConsultantID {
		s.logger.Warn("UpdateStatus: access denied for user=%d on booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		return ErrInvalidStatus
	}

	if !transitionAllowed(booking.Status, newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%d",
			booking.Status, newStatus, bookingID)
		return ErrInvalidStatus
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: booking id=%d moved to status=%s", bookingID, newStatus)
	return nil
}

func canView(booking *domain.Booking, userID int64) bool {
	return booking.CustomerID == userID || booking.ConsultantID == userID
}

// transitionAllowed encodes the consultant-driven lifecycle. Cancellations
// go through Cancel, not here.
func transitionAllowed(from, to domain.BookingStatus) bool {
	switch from {
	case domain.StatusPending:
		return to == domain.StatusConfirmed
	case domain.StatusConfirmed:
		return to == domain.StatusCompleted || to == domain.StatusNoShow
	default:
		return false
	}
}
