package booking

import (
    "context"
    "strings"

    "github.com/pkg/errors"
    "github.com/shopspring/decimal"
    "go.opentelemetry.io/otel/attribute"

    "github.com/iliyamo/hotel-room-booking/internal/model"
    "github.com/iliyamo/hotel-room-booking/internal/pricing"
    "github.com/iliyamo/hotel-room-booking/internal/queue"
    "github.com/iliyamo/hotel-room-booking/internal/repository"
)

// PaymentConfirmation is the provider's notice that a reservation was
// paid.
type PaymentConfirmation struct {
    ReservationID  uint64
    Amount         decimal.Decimal
    Method         string
    TransactionRef string
}

// ConfirmPayment records a successful payment and moves the reservation
// to paid.  Repeated confirmations for a reservation that already has a
// payment succeed without recording a second one or changing its status.
// Payments for cancelled reservations are refused.  A reservation that
// reached checked_in or checked_out without a payment gets the payment
// recorded and keeps its status.
func (s *Service) ConfirmPayment(ctx context.Context, actor Actor, in PaymentConfirmation) (res *model.Reservation, err error) {
    ctx, span := s.tracer.Start(ctx, "booking.ConfirmPayment")
    span.SetAttributes(attribute.Int64("reservation.id", int64(in.ReservationID)))
    defer func() { endSpan(span, err) }()

    if !actor.CanConfirmPayments() {
        return nil, errors.Wrap(ErrForbidden, "confirm payment")
    }
    if in.Amount.IsNegative() {
        return nil, &pricing.InvalidPriceError{Input: in.Amount.String(), Reason: "negative amount"}
    }
    method := strings.TrimSpace(in.Method)
    if method == "" {
        method = "unknown"
    }
    scale := s.pricer.Scale()
    p := &model.Payment{
        ReservationID:  in.ReservationID,
        Amount:         in.Amount.Round(scale),
        Method:         method,
        TransactionRef: strings.TrimSpace(in.TransactionRef),
        Status:         model.PaymentStatusPaid,
        CreatedAt:      s.now().UTC(),
    }

    check := func(r *model.Reservation, alreadyPaid bool) error {
        if r.Status == model.StatusCancelled {
            return &ReservationCancelledError{ReservationID: r.ID}
        }
        if alreadyPaid {
            return nil
        }
        if !p.Amount.Equal(r.TotalPrice.Round(scale)) {
            return &AmountMismatchError{ReservationID: r.ID, Expected: r.TotalPrice, Got: in.Amount}
        }
        return nil
    }

    wctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
    defer cancel()
    res, created, err := s.store.ConfirmPayment(wctx, in.ReservationID, p, check)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return nil, &ReservationNotFoundError{ReservationID: in.ReservationID}
        }
        if errors.Is(err, repository.ErrLockTimeout) {
            return nil, &RoomBusyError{Cause: err}
        }
        if isDomainError(err) {
            return nil, err
        }
        return nil, errors.Wrapf(err, "confirm payment for reservation %d", in.ReservationID)
    }

    s.metrics.PaymentConfirmed(!created)
    if !created {
        s.log.Debug().Uint64("reservation_id", res.ID).Str("status", string(res.Status)).Msg("payment confirmation replayed")
        return res, nil
    }
    s.log.Info().Uint64("reservation_id", res.ID).Str("amount", p.Amount.String()).Str("method", p.Method).
        Str("status", string(res.Status)).Msg("payment recorded")
    s.publish(ctx, queue.EventBookingPaid, res, "", actor)
    return res, nil
}

// isDomainError reports whether err belongs to the booking taxonomy and
// can be returned unchanged.
func isDomainError(err error) bool {
    for _, target := range []error{
        ErrReservationCancelled, ErrAmountMismatch, ErrInvalidTransition, ErrForbidden,
        ErrReservationNotFound, ErrRoomUnavailable, ErrRoomBusy,
    } {
        if errors.Is(err, target) {
            return true
        }
    }
    return false
}
