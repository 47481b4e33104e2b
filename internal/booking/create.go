package booking

import (
    "context"
    "time"

    "github.com/pkg/errors"
    "go.opentelemetry.io/otel/attribute"

    "github.com/iliyamo/hotel-room-booking/internal/availability"
    "github.com/iliyamo/hotel-room-booking/internal/discount"
    "github.com/iliyamo/hotel-room-booking/internal/model"
    "github.com/iliyamo/hotel-room-booking/internal/pricing"
    "github.com/iliyamo/hotel-room-booking/internal/queue"
    "github.com/iliyamo/hotel-room-booking/internal/repository"
)

// CreateRequest describes a stay to book.  CheckIn and CheckOut are
// calendar dates; any time of day is discarded.
type CreateRequest struct {
    RoomID       uint64
    CheckIn      time.Time
    CheckOut     time.Time
    Guests       uint32
    DiscountCode string
}

// stayRange truncates both ends to UTC calendar dates and validates them.
func stayRange(checkIn, checkOut time.Time) (time.Time, time.Time, error) {
    ci, co := model.TruncateDay(checkIn), model.TruncateDay(checkOut)
    if err := availability.ValidateRange(ci, co); err != nil {
        return ci, co, err
    }
    return ci, co, nil
}

// CreateBooking reserves a room for the actor.  Exactly one of any set of
// concurrent requests for overlapping stays of the same room succeeds;
// the others fail with RoomUnavailableError, or RoomBusyError when the
// room's exclusivity could not be obtained in time.
func (s *Service) CreateBooking(ctx context.Context, actor Actor, req CreateRequest) (res *model.Reservation, err error) {
    ctx, span := s.tracer.Start(ctx, "booking.CreateBooking")
    span.SetAttributes(attribute.Int64("room.id", int64(req.RoomID)), attribute.Int64("user.id", int64(actor.UserID)))
    defer func() { endSpan(span, err) }()
    defer func() {
        if err != nil {
            s.metrics.BookingRejected(rejectReason(err))
            s.log.Info().Err(err).Uint64("room_id", req.RoomID).Uint64("user_id", actor.UserID).Msg("booking rejected")
        }
    }()

    ci, co, err := stayRange(req.CheckIn, req.CheckOut)
    if err != nil {
        return nil, err
    }
    if req.Guests < 1 {
        return nil, &InvalidGuestsError{Guests: req.Guests}
    }
    room, err := s.loadRoom(ctx, req.RoomID)
    if err != nil {
        return nil, err
    }
    if !room.IsActive {
        return nil, &RoomInactiveError{RoomID: room.ID}
    }
    if room.Capacity > 0 && req.Guests > room.Capacity {
        return nil, &CapacityExceededError{RoomID: room.ID, Guests: req.Guests, Capacity: room.Capacity}
    }

    now := s.now()
    quote, err := s.pricer.Quote(ctx, room, ci, co, req.DiscountCode, now)
    if err != nil {
        return nil, err
    }
    if quote.DiscountRejected != "" {
        s.log.Warn().Str("code", discount.Normalize(req.DiscountCode)).Str("reason", quote.DiscountRejected).
            Uint64("room_id", room.ID).Msg("discount code not applied")
    }

    release, err := s.lockRoom(ctx, room.ID)
    if err != nil {
        return nil, err
    }
    defer release()

    ok, err := s.checker.IsAvailable(ctx, room.ID, ci, co)
    if err != nil {
        return nil, errors.Wrap(err, "check availability")
    }
    if !ok {
        return nil, &RoomUnavailableError{RoomID: room.ID, CheckIn: ci, CheckOut: co}
    }

    res = &model.Reservation{
        Code:            newCode(),
        UserID:          actor.UserID,
        RoomID:          room.ID,
        CheckIn:         ci,
        CheckOut:        co,
        Guests:          req.Guests,
        Nights:          quote.Nights,
        Subtotal:        quote.Subtotal,
        DiscountPercent: quote.DiscountPercent,
        DiscountAmount:  quote.DiscountAmount,
        TotalPrice:      quote.Total,
        Status:          model.StatusPending,
        CreatedAt:       now.UTC(),
        UpdatedAt:       now.UTC(),
    }
    if quote.DiscountApplied() {
        code := quote.DiscountCode
        res.DiscountCode = &code
    }

    wctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
    defer cancel()
    err = s.store.CreateReservation(wctx, res)
    if errors.Is(err, repository.ErrConflict) {
        // Codes are random, so a clash is retried once with a fresh one.
        s.log.Debug().Str("code", res.Code).Msg("reservation code taken, regenerating")
        res.Code = newCode()
        err = s.store.CreateReservation(wctx, res)
    }
    if err != nil {
        return nil, storeError(err, res, "create reservation")
    }

    s.metrics.BookingCreated()
    s.log.Info().Uint64("reservation_id", res.ID).Str("code", res.Code).Uint64("room_id", res.RoomID).
        Uint64("user_id", res.UserID).Str("total", res.TotalPrice.String()).Msg("booking created")
    s.publish(ctx, queue.EventBookingCreated, res, "", actor)
    return res, nil
}

// GetAvailability reports whether room roomID is free for the whole of
// [checkIn, checkOut).  It takes no lock; the answer may be stale by the
// time a booking is attempted.
func (s *Service) GetAvailability(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) (bool, error) {
    ci, co, err := stayRange(checkIn, checkOut)
    if err != nil {
        return false, err
    }
    if _, err := s.loadRoom(ctx, roomID); err != nil {
        return false, err
    }
    ok, err := s.checker.IsAvailable(ctx, roomID, ci, co)
    if err != nil {
        return false, errors.Wrap(err, "check availability")
    }
    return ok, nil
}

// QuoteBooking prices a stay without reserving anything.
func (s *Service) QuoteBooking(ctx context.Context, roomID uint64, checkIn, checkOut time.Time, code string) (pricing.Quote, error) {
    ci, co, err := stayRange(checkIn, checkOut)
    if err != nil {
        return pricing.Quote{}, err
    }
    room, err := s.loadRoom(ctx, roomID)
    if err != nil {
        return pricing.Quote{}, err
    }
    return s.pricer.Quote(ctx, room, ci, co, code, s.now())
}

func rejectReason(err error) string {
    switch {
    case errors.Is(err, ErrInvalidRange):
        return "invalid_range"
    case errors.Is(err, ErrInvalidGuests), errors.Is(err, ErrCapacityExceeded):
        return "guests"
    case errors.Is(err, ErrRoomNotFound), errors.Is(err, ErrRoomInactive):
        return "room"
    case errors.Is(err, ErrRoomUnavailable):
        return "unavailable"
    case errors.Is(err, ErrRoomBusy):
        return "busy"
    case errors.Is(err, ErrInvalidPrice):
        return "price"
    }
    return "error"
}
