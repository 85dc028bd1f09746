package services

import (
	"context"
	"time"

	"script9/access"
	"script9/builders"
	"script9/dto"
	apperrors "script9/errors"
	"script9/models"
	"script9/services/logger"
	"script9/services/notification"
	"script9/types"
	"script9/utils"
	"script9/validator"
)

const (
	defaultUpcomingLimit = 10
	autoCompleteBatch    = 100
)

type BookingServiceOptions struct {
	Bookings   BookingRepository
	Properties PropertyRepository
	Notifier   notification.Service
	Logger     logger.Logger
	Now        func() time.Time
}

type BookingService struct {
	bookings   BookingRepository
	properties PropertyRepository
	notifier   notification.Service
	logger     logger.Logger
	now        func() time.Time
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	s := &BookingService{
		bookings:   opts.Bookings,
		properties: opts.Properties,
		notifier:   opts.Notifier,
		logger:     opts.Logger,
		now:        opts.Now,
	}
	if s.notifier == nil {
		s.notifier = notification.Noop{}
	}
	if s.logger == nil {
		s.logger = logger.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// scope limits non admin actors to bookings they take part in.
func (s *BookingService) scope(actor access.Actor, f types.BookingFilter) types.BookingFilter {
	if !access.Can(actor, access.BookingListAll, access.Resource{}) {
		f.ParticipantID = actor.UserID
	}
	return f
}

func bookingResource(b *models.Booking) access.Resource {
	return access.Resource{GuestID: b.GuestID, HostID: b.HostID}
}

func (s *BookingService) SearchBookings(ctx context.Context, actor access.Actor, f types.BookingFilter, page types.Page) ([]models.Booking, int64, error) {
	return s.bookings.Search(ctx, s.scope(actor, f), page.Normalize())
}

func (s *BookingService) GetBooking(ctx context.Context, actor access.Actor, id string) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Require(actor, access.BookingRead, bookingResource(booking)); err != nil {
		return nil, err
	}
	return booking, nil
}

// CreateBooking books a slot for the authenticated guest. The guest in req is ignored.
func (s *BookingService) CreateBooking(ctx context.Context, actor access.Actor, req dto.CreateBookingRequest) (*models.Booking, error) {
	if req.PropertyID == "" {
		return nil, apperrors.BadRequest(apperrors.ErrCodeRequiredField, "propertyId is required")
	}
	if err := validator.ValidateTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	if req.StartTime.Before(s.now()) {
		return nil, apperrors.BadRequest(apperrors.ErrCodeInvalidRange, "startTime must be in the future")
	}

	property, err := s.properties.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if !property.IsActive {
		return nil, apperrors.BadRequest(apperrors.ErrCodeInvalidOperation, "property is not available for booking")
	}
	if property.HostID == actor.UserID {
		return nil, apperrors.BadRequest(apperrors.ErrCodeInvalidOperation, "cannot book your own property")
	}

	taken, err := s.bookings.HasOverlap(ctx, property.ID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.BadRequest(apperrors.ErrCodeSlotUnavailable, "time slot is not available")
	}

	total, _, err := priceFor(property, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	booking := builders.NewBookingBuilder().
		ForProperty(property).
		WithGuest(actor.UserID).
		WithSlot(req.StartTime, req.EndTime).
		WithTotalPrice(total).
		WithNotes(req.Notes).
		WithPaymentSession(req.PaymentSessionID).
		Build()

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.WithFields(logger.Fields{
		"bookingId":  booking.ID,
		"propertyId": booking.PropertyID,
		"guestId":    booking.GuestID,
	}).Info("booking created")
	return booking, nil
}

// CheckAvailability is true iff no pending or confirmed booking overlaps the slot.
func (s *BookingService) CheckAvailability(ctx context.Context, req dto.SlotRequest) (bool, error) {
	if err := validator.ValidateTimeRange(req.StartTime, req.EndTime); err != nil {
		return false, err
	}
	if _, err := s.properties.FindByID(ctx, req.PropertyID); err != nil {
		return false, err
	}
	taken, err := s.bookings.HasOverlap(ctx, req.PropertyID, req.StartTime, req.EndTime)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

func (s *BookingService) CalculateBookingPrice(ctx context.Context, req dto.SlotRequest) (*dto.PriceResponse, error) {
	if err := validator.ValidateTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	property, err := s.properties.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	total, units, err := priceFor(property, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	return &dto.PriceResponse{
		TotalPrice: total,
		Currency:   property.Currency,
		Units:      units,
		PriceUnit:  string(property.PriceUnit),
	}, nil
}

// priceFor charges every started billing unit: price × ceil(duration / unit).
func priceFor(property *models.Property, start, end time.Time) (float64, int64, error) {
	unit, err := property.PriceUnit.Duration()
	if err != nil {
		return 0, 0, apperrors.BadRequest(apperrors.ErrCodeInvalidOperation, "property has an invalid price unit")
	}
	d := end.Sub(start)
	units := int64((d + unit - 1) / unit)
	return utils.RoundCents(property.Price * float64(units)), units, nil
}

func actionFor(target models.BookingStatus) (access.Action, bool) {
	switch target {
	case models.BookingStatusConfirmed:
		return access.BookingConfirm, true
	case models.BookingStatusCompleted:
		return access.BookingComplete, true
	case models.BookingStatusCancelled:
		return access.BookingCancel, true
	}
	return "", false
}

// UpdateBookingStatus applies one step of the transition table.
// Role checks run before the transition itself is validated.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, actor access.Actor, id string, status string) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res := bookingResource(booking)
	if err := access.Require(actor, access.BookingRead, res); err != nil {
		return nil, err
	}

	target := models.BookingStatus(status)
	action, ok := actionFor(target)
	if !ok {
		return nil, apperrors.BadRequest(apperrors.ErrCodeInvalidTransition, "invalid booking status: "+status)
	}
	if err := access.Require(actor, action, res); err != nil {
		return nil, err
	}

	from := booking.Status
	if err := booking.Transition(target); err != nil {
		return nil, apperrors.NewAppError(apperrors.KindBadRequest, apperrors.ErrCodeInvalidTransition, err.Error(), nil)
	}
	if err := s.bookings.UpdateStatus(ctx, booking.ID, from, target); err != nil {
		return nil, err
	}
	booking.UpdatedAt = s.now()

	s.logger.WithFields(logger.Fields{
		"bookingId": booking.ID,
		"from":      from,
		"to":        target,
		"actorId":   actor.UserID,
	}).Info("booking status changed")
	s.notifyParties(booking, from, actor.UserID)
	return booking, nil
}

func (s *BookingService) ConfirmBooking(ctx context.Context, actor access.Actor, id string) (*models.Booking, error) {
	return s.UpdateBookingStatus(ctx, actor, id, string(models.BookingStatusConfirmed))
}

func (s *BookingService) CancelBooking(ctx context.Context, actor access.Actor, id string) (*models.Booking, error) {
	return s.UpdateBookingStatus(ctx, actor, id, string(models.BookingStatusCancelled))
}

func (s *BookingService) GetUpcomingBookings(ctx context.Context, actor access.Actor, limit int) ([]models.Booking, error) {
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}
	if limit > types.MaxPageLimit {
		limit = types.MaxPageLimit
	}
	return s.bookings.Upcoming(ctx, s.scope(actor, types.BookingFilter{}), s.now(), limit)
}

func (s *BookingService) GetBookingStats(ctx context.Context, actor access.Actor, f types.BookingFilter) (types.BookingStats, error) {
	return s.bookings.Stats(ctx, s.scope(actor, f))
}

// CompleteEndedBookings marks confirmed bookings whose slot is over as completed.
// It returns how many bookings were moved.
func (s *BookingService) CompleteEndedBookings(ctx context.Context) (int, error) {
	ended, err := s.bookings.FindEndedConfirmed(ctx, s.now(), autoCompleteBatch)
	if err != nil {
		return 0, err
	}

	completed := 0
	for i := range ended {
		booking := &ended[i]
		from := booking.Status
		if err := booking.Transition(models.BookingStatusCompleted); err != nil {
			s.logger.Warn("skip booking %s: %v", booking.ID, err)
			continue
		}
		if err := s.bookings.UpdateStatus(ctx, booking.ID, from, models.BookingStatusCompleted); err != nil {
			s.logger.Error("complete booking %s: %v", booking.ID, err)
			continue
		}
		completed++
		s.notifyParties(booking, from, "")
	}
	return completed, nil
}

func (s *BookingService) notifyParties(booking *models.Booking, from models.BookingStatus, actorID string) {
	event := notification.BookingStatusChanged(booking, from)
	for _, userID := range []string{booking.GuestID, booking.HostID} {
		if userID == actorID {
			continue
		}
		if err := s.notifier.NotifyUser(userID, event); err != nil {
			s.logger.Warn("notify %s about booking %s: %v", userID, booking.ID, err)
		}
	}
}
