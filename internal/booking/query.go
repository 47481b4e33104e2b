package booking

import (
    "context"

    "github.com/pkg/errors"

    "github.com/iliyamo/hotel-room-booking/internal/model"
    "github.com/iliyamo/hotel-room-booking/internal/repository"
)

// GetBooking returns a reservation visible to the actor.  Reservations of
// other users are reported as not found.
func (s *Service) GetBooking(ctx context.Context, actor Actor, id uint64) (*model.Reservation, error) {
    res, err := s.store.GetReservation(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return nil, &ReservationNotFoundError{ReservationID: id}
        }
        return nil, errors.Wrapf(err, "load reservation %d", id)
    }
    if !actor.owns(res.UserID) {
        return nil, &ReservationNotFoundError{ReservationID: id}
    }
    return res, nil
}

// ListMyBookings returns the actor's reservations, newest first.
func (s *Service) ListMyBookings(ctx context.Context, actor Actor) ([]model.Reservation, error) {
    list, err := s.store.ListReservationsByUser(ctx, actor.UserID)
    if err != nil {
        return nil, errors.Wrap(err, "list reservations")
    }
    return list, nil
}

// GetRoom returns an active or inactive room by id.
func (s *Service) GetRoom(ctx context.Context, id uint64) (*model.Room, error) {
    return s.loadRoom(ctx, id)
}

// ListRooms returns one page of the catalog and the total match count.
func (s *Service) ListRooms(ctx context.Context, f model.RoomFilter) ([]model.Room, int, error) {
    rooms, total, err := s.rooms.ListRooms(ctx, f)
    if err != nil {
        return nil, 0, errors.Wrap(err, "list rooms")
    }
    return rooms, total, nil
}

// ListBookings returns one page of all reservations, newest first, with
// the total match count.  Only administrators may list reservations they
// do not own.
func (s *Service) ListBookings(ctx context.Context, actor Actor, f model.ReservationFilter) ([]model.Reservation, int, error) {
    if !actor.IsAdmin() {
        return nil, 0, errors.Wrap(ErrForbidden, "list bookings")
    }
    list, total, err := s.store.ListReservations(ctx, f)
    if err != nil {
        return nil, 0, errors.Wrap(err, "list all reservations")
    }
    return list, total, nil
}
