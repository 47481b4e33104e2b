// Package lock provides room-scoped mutual exclusion with a bounded
// acquisition time.  The booking engine holds a room's lock across the
// availability check and the reservation insert.
package lock

import (
    "context"
    "errors"
)

// ErrTimeout is returned when a lock could not be acquired in time.
var ErrTimeout = errors.New("room lock acquisition timed out")

// Release gives the lock back.  It is safe to call more than once.
type Release func()

// RoomLocker serializes work on a single room.  Different rooms never
// contend with each other.
type RoomLocker interface {
    Acquire(ctx context.Context, roomID uint64) (Release, error)
}
