package booking

import (
    "context"

    "github.com/pkg/errors"
    "go.opentelemetry.io/otel/attribute"

    "github.com/iliyamo/hotel-room-booking/internal/lock"
    "github.com/iliyamo/hotel-room-booking/internal/model"
    "github.com/iliyamo/hotel-room-booking/internal/queue"
    "github.com/iliyamo/hotel-room-booking/internal/repository"
)

// SetBookingStatus is the administrative override: any known status may
// be set from any other.  Moving a reservation back into an occupying
// status re-checks the overlap rule and fails with RoomUnavailableError
// when the nights were taken in the meantime.
func (s *Service) SetBookingStatus(ctx context.Context, actor Actor, id uint64, status string) (res *model.Reservation, err error) {
    ctx, span := s.tracer.Start(ctx, "booking.SetBookingStatus")
    span.SetAttributes(attribute.Int64("reservation.id", int64(id)), attribute.String("status", status))
    defer func() { endSpan(span, err) }()

    if !actor.IsAdmin() {
        return nil, errors.Wrap(ErrForbidden, "set booking status")
    }
    to, ok := model.ParseStatus(status)
    if !ok {
        return nil, &InvalidStatusError{Value: status}
    }

    res, from, err := s.changeStatus(ctx, id, to, nil)
    if err != nil {
        return nil, err
    }
    if from == to {
        return res, nil
    }
    s.metrics.StatusChanged(string(to))
    s.log.Warn().Uint64("reservation_id", res.ID).Uint64("actor_id", actor.UserID).
        Str("from", string(from)).Str("to", string(to)).Msg("admin status override")
    s.publish(ctx, queue.EventBookingStatusChanged, res, from, actor)
    return res, nil
}

// CancelBooking cancels a reservation on behalf of its owner.  Only
// reservations that have not started (pending, confirmed or paid) can be
// cancelled this way.
func (s *Service) CancelBooking(ctx context.Context, actor Actor, id uint64) (res *model.Reservation, err error) {
    ctx, span := s.tracer.Start(ctx, "booking.CancelBooking")
    span.SetAttributes(attribute.Int64("reservation.id", int64(id)))
    defer func() { endSpan(span, err) }()

    check := func(r *model.Reservation) error {
        if !actor.owns(r.UserID) {
            return &ReservationNotFoundError{ReservationID: r.ID}
        }
        switch r.Status {
        case model.StatusPending, model.StatusConfirmed, model.StatusPaid:
            return nil
        }
        return &InvalidTransitionError{ReservationID: r.ID, From: r.Status, To: model.StatusCancelled}
    }
    res, from, err := s.changeStatus(ctx, id, model.StatusCancelled, check)
    if err != nil {
        return nil, err
    }
    s.metrics.StatusChanged(string(model.StatusCancelled))
    s.log.Info().Uint64("reservation_id", res.ID).Uint64("actor_id", actor.UserID).
        Str("from", string(from)).Msg("booking cancelled")
    s.publish(ctx, queue.EventBookingStatusChanged, res, from, actor)
    return res, nil
}

// changeStatus applies a status change through the store.  When the
// target status occupies the room the room lock is held for the write.
func (s *Service) changeStatus(ctx context.Context, id uint64, to model.Status, check func(*model.Reservation) error) (*model.Reservation, model.Status, error) {
    if check == nil {
        check = func(*model.Reservation) error { return nil }
    }
    current, err := s.store.GetReservation(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return nil, "", &ReservationNotFoundError{ReservationID: id}
        }
        return nil, "", errors.Wrapf(err, "load reservation %d", id)
    }

    if to.Occupying() && !current.Status.Occupying() {
        var release lock.Release
        release, err = s.lockRoom(ctx, current.RoomID)
        if err != nil {
            return nil, "", err
        }
        defer release()
    }

    wctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
    defer cancel()
    res, from, err := s.store.UpdateStatus(wctx, id, to, check)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return nil, "", &ReservationNotFoundError{ReservationID: id}
        }
        if isDomainError(err) {
            return nil, "", err
        }
        return nil, "", storeError(err, current, "update reservation status")
    }
    return res, from, nil
}
