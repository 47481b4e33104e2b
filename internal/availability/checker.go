// Package availability decides whether a room is free for a stay.
package availability

import (
    "context"
    "errors"
    "fmt"
    "time"

    "github.com/iliyamo/hotel-room-booking/internal/model"
)

// ErrInvalidRange is matched by every *InvalidRangeError.
var ErrInvalidRange = errors.New("invalid date range")

// InvalidRangeError reports a stay whose check-out is not after its
// check-in.
type InvalidRangeError struct {
    CheckIn  time.Time
    CheckOut time.Time
}

func (e *InvalidRangeError) Error() string {
    return fmt.Sprintf("check-out %s must be after check-in %s",
        e.CheckOut.Format(time.DateOnly), e.CheckIn.Format(time.DateOnly))
}

func (e *InvalidRangeError) Is(target error) bool { return target == ErrInvalidRange }

// ValidateRange returns an *InvalidRangeError unless checkOut > checkIn.
func ValidateRange(checkIn, checkOut time.Time) error {
    if checkIn.IsZero() || checkOut.IsZero() || !checkOut.After(checkIn) {
        return &InvalidRangeError{CheckIn: checkIn, CheckOut: checkOut}
    }
    return nil
}

// Conflicts reports whether existing blocks the stay [checkIn, checkOut).
// Intervals are half-open, so a stay may start on the day another ends.
func Conflicts(existing *model.Reservation, checkIn, checkOut time.Time) bool {
    return existing.Status.Occupying() && existing.Overlaps(checkIn, checkOut)
}

// Store returns the reservations of a room that may intersect a window.
// Implementations may over-return; Checker filters with Conflicts.
type Store interface {
    ListOccupying(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) ([]model.Reservation, error)
}

// Checker answers availability questions against a Store.  On its own
// it is a read: callers that insert afterwards must hold the room lock.
type Checker struct {
    store Store
}

// NewChecker returns a Checker.
func NewChecker(store Store) *Checker { return &Checker{store: store} }

// IsAvailable reports whether roomID is free for [checkIn, checkOut).
func (c *Checker) IsAvailable(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) (bool, error) {
    if err := ValidateRange(checkIn, checkOut); err != nil {
        return false, err
    }
    existing, err := c.store.ListOccupying(ctx, roomID, checkIn, checkOut)
    if err != nil {
        return false, err
    }
    for i := range existing {
        if Conflicts(&existing[i], checkIn, checkOut) {
            return false, nil
        }
    }
    return true, nil
}
