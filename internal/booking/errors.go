package booking

import (
    "errors"
    "fmt"
    "time"

    "github.com/shopspring/decimal"

    "github.com/iliyamo/hotel-room-booking/internal/availability"
    "github.com/iliyamo/hotel-room-booking/internal/model"
    "github.com/iliyamo/hotel-room-booking/internal/pricing"
)

// Sentinels matched with errors.Is.  Every typed error below matches
// exactly one of them and carries the details a caller needs to build
// an actionable message.
var (
    ErrInvalidRange         = availability.ErrInvalidRange
    ErrInvalidPrice         = pricing.ErrInvalidPrice
    ErrRoomNotFound         = errors.New("room not found")
    ErrRoomInactive         = errors.New("room inactive")
    ErrRoomUnavailable      = errors.New("room unavailable")
    ErrRoomBusy             = errors.New("room busy")
    ErrInvalidGuests        = errors.New("invalid guest count")
    ErrCapacityExceeded     = errors.New("room capacity exceeded")
    ErrReservationNotFound  = errors.New("reservation not found")
    ErrReservationCancelled = errors.New("reservation cancelled")
    ErrAmountMismatch       = errors.New("payment amount mismatch")
    ErrInvalidStatus        = errors.New("invalid status")
    ErrInvalidTransition    = errors.New("invalid transition")
    ErrForbidden            = errors.New("forbidden")
)

type (
    InvalidRangeError = availability.InvalidRangeError
    InvalidPriceError = pricing.InvalidPriceError
)

type RoomNotFoundError struct{ RoomID uint64 }

func (e *RoomNotFoundError) Error() string        { return fmt.Sprintf("room %d not found", e.RoomID) }
func (e *RoomNotFoundError) Is(target error) bool { return target == ErrRoomNotFound }

type RoomInactiveError struct{ RoomID uint64 }

func (e *RoomInactiveError) Error() string        { return fmt.Sprintf("room %d is not active", e.RoomID) }
func (e *RoomInactiveError) Is(target error) bool { return target == ErrRoomInactive }

// RoomUnavailableError means another occupying reservation holds at
// least one night of the requested stay.  Retrying the same interval
// will not help.
type RoomUnavailableError struct {
    RoomID   uint64
    CheckIn  time.Time
    CheckOut time.Time
}

func (e *RoomUnavailableError) Error() string {
    return fmt.Sprintf("room %d is already booked between %s and %s", e.RoomID,
        e.CheckIn.Format(time.DateOnly), e.CheckOut.Format(time.DateOnly))
}
func (e *RoomUnavailableError) Is(target error) bool { return target == ErrRoomUnavailable }

// RoomBusyError is transient: the room's exclusivity could not be
// obtained in time.  Callers may retry with backoff.
type RoomBusyError struct {
    RoomID uint64
    Cause  error
}

func (e *RoomBusyError) Error() string {
    if e.RoomID == 0 {
        return fmt.Sprintf("reservation is locked by another operation, retry later: %v", e.Cause)
    }
    return fmt.Sprintf("room %d is busy, retry later: %v", e.RoomID, e.Cause)
}
func (e *RoomBusyError) Is(target error) bool { return target == ErrRoomBusy }
func (e *RoomBusyError) Unwrap() error        { return e.Cause }

type InvalidGuestsError struct{ Guests uint32 }

func (e *InvalidGuestsError) Error() string {
    return fmt.Sprintf("guest count %d must be at least 1", e.Guests)
}
func (e *InvalidGuestsError) Is(target error) bool { return target == ErrInvalidGuests }

type CapacityExceededError struct {
    RoomID   uint64
    Guests   uint32
    Capacity uint32
}

func (e *CapacityExceededError) Error() string {
    return fmt.Sprintf("room %d holds %d guests, %d requested", e.RoomID, e.Capacity, e.Guests)
}
func (e *CapacityExceededError) Is(target error) bool { return target == ErrCapacityExceeded }

type ReservationNotFoundError struct{ ReservationID uint64 }

func (e *ReservationNotFoundError) Error() string {
    return fmt.Sprintf("reservation %d not found", e.ReservationID)
}
func (e *ReservationNotFoundError) Is(target error) bool { return target == ErrReservationNotFound }

type ReservationCancelledError struct{ ReservationID uint64 }

func (e *ReservationCancelledError) Error() string {
    return fmt.Sprintf("reservation %d is cancelled and cannot be paid", e.ReservationID)
}
func (e *ReservationCancelledError) Is(target error) bool { return target == ErrReservationCancelled }

type AmountMismatchError struct {
    ReservationID uint64
    Expected      decimal.Decimal
    Got           decimal.Decimal
}

func (e *AmountMismatchError) Error() string {
    return fmt.Sprintf("reservation %d costs %s, payment of %s received", e.ReservationID, e.Expected, e.Got)
}
func (e *AmountMismatchError) Is(target error) bool { return target == ErrAmountMismatch }

type InvalidStatusError struct{ Value string }

func (e *InvalidStatusError) Error() string        { return fmt.Sprintf("unknown status %q", e.Value) }
func (e *InvalidStatusError) Is(target error) bool { return target == ErrInvalidStatus }

type InvalidTransitionError struct {
    ReservationID uint64
    From          model.Status
    To            model.Status
}

func (e *InvalidTransitionError) Error() string {
    return fmt.Sprintf("reservation %d cannot move from %s to %s", e.ReservationID, e.From, e.To)
}
func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// IsTransient reports whether err is safe to retry unchanged.
func IsTransient(err error) bool {
    return errors.Is(err, ErrRoomBusy)
}
