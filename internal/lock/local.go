package lock

import (
    "context"
    "sync"
    "time"
)

// Local is an in-process RoomLocker.  It is only correct when a single
// server instance writes reservations; use Redis otherwise.
type Local struct {
    timeout time.Duration
    mu      sync.Mutex
    slots   map[uint64]*slot
}

// slot is the per-room semaphore.  refs counts holders and waiters; the
// entry is dropped when it reaches zero.
type slot struct {
    ch   chan struct{}
    refs int
}

// NewLocal returns a Local locker that waits at most timeout.
func NewLocal(timeout time.Duration) *Local {
    return &Local{timeout: timeout, slots: make(map[uint64]*slot)}
}

func (l *Local) enter(roomID uint64) *slot {
    l.mu.Lock()
    defer l.mu.Unlock()
    s, ok := l.slots[roomID]
    if !ok {
        s = &slot{ch: make(chan struct{}, 1)}
        l.slots[roomID] = s
    }
    s.refs++
    return s
}

func (l *Local) leave(roomID uint64, s *slot) {
    l.mu.Lock()
    defer l.mu.Unlock()
    s.refs--
    if s.refs == 0 {
        delete(l.slots, roomID)
    }
}

// Acquire blocks until the room is free, ctx is done or the timeout
// elapses.
func (l *Local) Acquire(ctx context.Context, roomID uint64) (Release, error) {
    s := l.enter(roomID)
    timer := time.NewTimer(l.timeout)
    defer timer.Stop()
    select {
    case s.ch <- struct{}{}:
    case <-timer.C:
        l.leave(roomID, s)
        return nil, ErrTimeout
    case <-ctx.Done():
        l.leave(roomID, s)
        return nil, ErrTimeout
    }
    var once sync.Once
    return func() {
        once.Do(func() {
            <-s.ch
            l.leave(roomID, s)
        })
    }, nil
}

// rooms reports how many rooms currently have a holder or a waiter.
func (l *Local) rooms() int {
    l.mu.Lock()
    defer l.mu.Unlock()
    return len(l.slots)
}
