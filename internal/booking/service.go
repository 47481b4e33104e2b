// Package booking implements the reservation lifecycle: creating stays
// without double booking, confirming payments idempotently and moving
// reservations through their statuses.
package booking

import (
    "context"
    "crypto/rand"
    "encoding/hex"
    "strings"
    "time"

    "github.com/google/uuid"
    "github.com/pkg/errors"
    "github.com/rs/zerolog"
    "go.opentelemetry.io/otel"
    "go.opentelemetry.io/otel/codes"
    "go.opentelemetry.io/otel/trace"

    "github.com/iliyamo/hotel-room-booking/internal/availability"
    "github.com/iliyamo/hotel-room-booking/internal/lock"
    "github.com/iliyamo/hotel-room-booking/internal/model"
    "github.com/iliyamo/hotel-room-booking/internal/pricing"
    "github.com/iliyamo/hotel-room-booking/internal/queue"
    "github.com/iliyamo/hotel-room-booking/internal/repository"
)

// DefaultStoreTimeout bounds how long a single write may wait on
// database row locks before the room is reported busy.
const DefaultStoreTimeout = 5 * time.Second

// Deps groups the collaborators of a Service.  Rooms, Store, Pricer and
// Locker are required; the rest are optional.
type Deps struct {
    Rooms        RoomCatalog
    Store        Store
    Pricer       *pricing.Engine
    Locker       lock.RoomLocker
    Events       EventPublisher
    Metrics      Metrics
    Log          zerolog.Logger
    Now          func() time.Time
    StoreTimeout time.Duration
}

// Service runs booking lifecycle operations.  It is safe for concurrent
// use.
type Service struct {
    rooms        RoomCatalog
    store        Store
    checker      *availability.Checker
    pricer       *pricing.Engine
    locker       lock.RoomLocker
    events       EventPublisher
    metrics      Metrics
    tracer       trace.Tracer
    log          zerolog.Logger
    now          func() time.Time
    storeTimeout time.Duration
}

// NewService wires a Service.  It panics when a required dependency is
// missing so misconfiguration is caught at startup.
func NewService(d Deps) *Service {
    if d.Rooms == nil || d.Store == nil || d.Pricer == nil || d.Locker == nil {
        panic("booking: NewService requires Rooms, Store, Pricer and Locker")
    }
    s := &Service{
        rooms:        d.Rooms,
        store:        d.Store,
        checker:      availability.NewChecker(d.Store),
        pricer:       d.Pricer,
        locker:       d.Locker,
        events:       d.Events,
        metrics:      d.Metrics,
        tracer:       otel.Tracer("hotel-room-booking/booking"),
        log:          d.Log.With().Str("component", "booking").Logger(),
        now:          d.Now,
        storeTimeout: d.StoreTimeout,
    }
    if s.metrics == nil {
        s.metrics = noopMetrics{}
    }
    if s.now == nil {
        s.now = time.Now
    }
    if s.storeTimeout <= 0 {
        s.storeTimeout = DefaultStoreTimeout
    }
    return s
}

// lockRoom obtains the room's exclusivity, translating a timeout into a
// RoomBusyError.
func (s *Service) lockRoom(ctx context.Context, roomID uint64) (lock.Release, error) {
    start := time.Now()
    release, err := s.locker.Acquire(ctx, roomID)
    s.metrics.LockWait(time.Since(start))
    if err != nil {
        if errors.Is(err, lock.ErrTimeout) {
            return nil, &RoomBusyError{RoomID: roomID, Cause: err}
        }
        return nil, errors.Wrapf(err, "acquire lock for room %d", roomID)
    }
    return release, nil
}

// loadRoom fetches a room, mapping a missing row to RoomNotFoundError.
func (s *Service) loadRoom(ctx context.Context, roomID uint64) (*model.Room, error) {
    room, err := s.rooms.GetRoom(ctx, roomID)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return nil, &RoomNotFoundError{RoomID: roomID}
        }
        return nil, errors.Wrapf(err, "load room %d", roomID)
    }
    return room, nil
}

// storeError maps repository failures of a write on reservation res to
// the booking error taxonomy.
func storeError(err error, res *model.Reservation, op string) error {
    switch {
    case errors.Is(err, repository.ErrOverlap):
        return &RoomUnavailableError{RoomID: res.RoomID, CheckIn: res.CheckIn, CheckOut: res.CheckOut}
    case errors.Is(err, repository.ErrLockTimeout):
        return &RoomBusyError{RoomID: res.RoomID, Cause: err}
    }
    return errors.Wrap(err, op)
}

func (s *Service) publish(ctx context.Context, typ string, res *model.Reservation, prev model.Status, actor Actor) {
    if s.events == nil {
        return
    }
    ev := queue.BookingEvent{
        EventID:       uuid.NewString(),
        Type:          typ,
        ReservationID: res.ID,
        Code:          res.Code,
        UserID:        res.UserID,
        RoomID:        res.RoomID,
        CheckIn:       res.CheckIn.Format(time.DateOnly),
        CheckOut:      res.CheckOut.Format(time.DateOnly),
        Status:        string(res.Status),
        TotalPrice:    res.TotalPrice.StringFixed(s.pricer.Scale()),
        ActorID:       actor.UserID,
        OccurredAt:    s.now().UTC().Format(time.RFC3339),
    }
    if prev != "" {
        ev.PreviousStatus = string(prev)
    }
    pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
    defer cancel()
    if err := s.events.PublishBookingEvent(pubCtx, ev); err != nil {
        s.log.Warn().Err(err).Str("type", typ).Uint64("reservation_id", res.ID).Msg("event publish failed")
    }
}

// endSpan records err on span before ending it.
func endSpan(span trace.Span, err error) {
    if err != nil {
        span.RecordError(err)
        span.SetStatus(codes.Error, err.Error())
    }
    span.End()
}

// newCode returns a reservation code such as BK3F9A0C1D.
func newCode() string {
    id, err := uuid.NewRandom()
    if err != nil {
        var b [4]byte
        _, _ = rand.Read(b[:])
        return "BK" + strings.ToUpper(hex.EncodeToString(b[:]))
    }
    return "BK" + strings.ToUpper(hex.EncodeToString(id[:4]))
}
