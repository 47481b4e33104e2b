package booking

import (
    "context"
    "time"

    "github.com/iliyamo/hotel-room-booking/internal/model"
    "github.com/iliyamo/hotel-room-booking/internal/queue"
)

// RoomCatalog reads rooms.  Implementations return repository.ErrNotFound
// for unknown ids.
type RoomCatalog interface {
    GetRoom(ctx context.Context, id uint64) (*model.Room, error)
    ListRooms(ctx context.Context, f model.RoomFilter) ([]model.Room, int, error)
}

// Store persists reservations and payments.
//
// CreateReservation must be atomic with respect to the overlap rule: it
// inserts res only if no occupying reservation of the same room overlaps
// it, and reports repository.ErrOverlap otherwise.  Lock waits that run
// out of time surface as repository.ErrLockTimeout.
//
// ConfirmPayment and UpdateStatus lock the reservation row, hand the
// current state to check, and apply the change only when check returns
// nil.  ConfirmPayment reports via created whether a new payment row was
// written; a reservation that already has a payment is left untouched.
type Store interface {
    ListOccupying(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) ([]model.Reservation, error)
    CreateReservation(ctx context.Context, res *model.Reservation) error
    GetReservation(ctx context.Context, id uint64) (*model.Reservation, error)
    ListReservationsByUser(ctx context.Context, userID uint64) ([]model.Reservation, error)
    ListReservations(ctx context.Context, f model.ReservationFilter) ([]model.Reservation, int, error)
    ConfirmPayment(ctx context.Context, id uint64, p *model.Payment,
        check func(res *model.Reservation, alreadyPaid bool) error) (res *model.Reservation, created bool, err error)
    UpdateStatus(ctx context.Context, id uint64, to model.Status,
        check func(res *model.Reservation) error) (res *model.Reservation, from model.Status, err error)
}

// EventPublisher delivers lifecycle events.  Delivery is best effort:
// failures are logged and never undo the change that produced them.
type EventPublisher interface {
    PublishBookingEvent(ctx context.Context, ev queue.BookingEvent) error
}

// Metrics receives the engine's counters.  A nil Metrics disables them.
type Metrics interface {
    BookingCreated()
    BookingRejected(reason string)
    PaymentConfirmed(replay bool)
    StatusChanged(to string)
    LockWait(d time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) BookingCreated()        {}
func (noopMetrics) BookingRejected(string) {}
func (noopMetrics) PaymentConfirmed(bool)  {}
func (noopMetrics) StatusChanged(string)   {}
func (noopMetrics) LockWait(time.Duration) {}
