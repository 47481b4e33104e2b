package booking

import (
    "context"
    "sort"
    "strings"
    "sync"
    "time"

    "github.com/iliyamo/hotel-room-booking/internal/model"
    "github.com/iliyamo/hotel-room-booking/internal/queue"
    "github.com/iliyamo/hotel-room-booking/internal/repository"
)

// memStore is an in-memory Store and RoomCatalog enforcing the same
// overlap rule the MySQL store does.
type memStore struct {
    mu        sync.Mutex
    rooms     map[uint64]model.Room
    res       map[uint64]*model.Reservation
    payments  map[uint64]model.Payment
    discounts map[string]model.Discount
    nextID    uint64
    // delay widens the window between the overlap check and the insert.
    delay time.Duration
    // codeConflicts makes the next inserts fail as if the code were taken.
    codeConflicts int
    codesTried    []string
}

func newMemStore() *memStore {
    return &memStore{
        rooms:     map[uint64]model.Room{},
        res:       map[uint64]*model.Reservation{},
        payments:  map[uint64]model.Payment{},
        discounts: map[string]model.Discount{},
    }
}

func (m *memStore) GetRoom(_ context.Context, id uint64) (*model.Room, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    r, ok := m.rooms[id]
    if !ok {
        return nil, repository.ErrNotFound
    }
    return &r, nil
}

func (m *memStore) ListRooms(_ context.Context, _ model.RoomFilter) ([]model.Room, int, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    out := make([]model.Room, 0, len(m.rooms))
    for _, r := range m.rooms {
        out = append(out, r)
    }
    sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
    return out, len(out), nil
}

func (m *memStore) FindByCode(_ context.Context, code string) (*model.Discount, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    d, ok := m.discounts[strings.ToUpper(code)]
    if !ok {
        return nil, repository.ErrNotFound
    }
    return &d, nil
}

func (m *memStore) occupyingLocked(roomID uint64, ci, co time.Time, skip uint64) []model.Reservation {
    var out []model.Reservation
    for _, r := range m.res {
        if r.ID == skip || r.RoomID != roomID || !r.Status.Occupying() {
            continue
        }
        if r.Overlaps(ci, co) {
            out = append(out, *r)
        }
    }
    return out
}

func (m *memStore) ListOccupying(_ context.Context, roomID uint64, ci, co time.Time) ([]model.Reservation, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    return m.occupyingLocked(roomID, ci, co, 0), nil
}

func (m *memStore) CreateReservation(ctx context.Context, res *model.Reservation) error {
    if m.delay > 0 {
        select {
        case <-time.After(m.delay):
        case <-ctx.Done():
            return repository.ErrLockTimeout
        }
    }
    m.mu.Lock()
    defer m.mu.Unlock()
    if _, ok := m.rooms[res.RoomID]; !ok {
        return repository.ErrNotFound
    }
    m.codesTried = append(m.codesTried, res.Code)
    if m.codeConflicts > 0 {
        m.codeConflicts--
        return repository.ErrConflict
    }
    if len(m.occupyingLocked(res.RoomID, res.CheckIn, res.CheckOut, 0)) > 0 {
        return repository.ErrOverlap
    }
    m.nextID++
    res.ID = m.nextID
    cp := *res
    m.res[res.ID] = &cp
    return nil
}

func (m *memStore) GetReservation(_ context.Context, id uint64) (*model.Reservation, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    r, ok := m.res[id]
    if !ok {
        return nil, repository.ErrNotFound
    }
    cp := *r
    return &cp, nil
}

func (m *memStore) ListReservationsByUser(_ context.Context, userID uint64) ([]model.Reservation, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    var out []model.Reservation
    for _, r := range m.res {
        if r.UserID == userID {
            out = append(out, *r)
        }
    }
    sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
    return out, nil
}

func (m *memStore) ListReservations(_ context.Context, f model.ReservationFilter) ([]model.Reservation, int, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    var all []model.Reservation
    for _, r := range m.res {
        if (f.RoomID == 0 || r.RoomID == f.RoomID) && (f.Status == "" || r.Status == f.Status) {
            all = append(all, *r)
        }
    }
    sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
    page := f.Page
    if page < 1 {
        page = 1
    }
    lo := (page - 1) * repository.ReservationPageSize
    if lo > len(all) {
        lo = len(all)
    }
    hi := lo + repository.ReservationPageSize
    if hi > len(all) {
        hi = len(all)
    }
    return all[lo:hi], len(all), nil
}

func (m *memStore) ConfirmPayment(_ context.Context, id uint64, p *model.Payment,
    check func(*model.Reservation, bool) error) (*model.Reservation, bool, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    r, ok := m.res[id]
    if !ok {
        return nil, false, repository.ErrNotFound
    }
    _, paid := m.payments[id]
    cp := *r
    if err := check(&cp, paid); err != nil {
        return nil, false, err
    }
    if paid {
        return &cp, false, nil
    }
    p.ID = uint64(len(m.payments) + 1)
    m.payments[id] = *p
    if r.Status == model.StatusPending || r.Status == model.StatusConfirmed {
        r.Status = model.StatusPaid
    }
    cp = *r
    return &cp, true, nil
}

func (m *memStore) UpdateStatus(_ context.Context, id uint64, to model.Status,
    check func(*model.Reservation) error) (*model.Reservation, model.Status, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    r, ok := m.res[id]
    if !ok {
        return nil, "", repository.ErrNotFound
    }
    cp := *r
    if err := check(&cp); err != nil {
        return nil, "", err
    }
    from := r.Status
    if to.Occupying() && !from.Occupying() && len(m.occupyingLocked(r.RoomID, r.CheckIn, r.CheckOut, r.ID)) > 0 {
        return nil, "", repository.ErrOverlap
    }
    r.Status = to
    cp = *r
    return &cp, from, nil
}

func (m *memStore) paymentCount() int {
    m.mu.Lock()
    defer m.mu.Unlock()
    return len(m.payments)
}

type recordedEvents struct {
    mu     sync.Mutex
    events []queue.BookingEvent
}

func (r *recordedEvents) PublishBookingEvent(_ context.Context, ev queue.BookingEvent) error {
    r.mu.Lock()
    defer r.mu.Unlock()
    r.events = append(r.events, ev)
    return nil
}

func (r *recordedEvents) types() []string {
    r.mu.Lock()
    defer r.mu.Unlock()
    out := make([]string, len(r.events))
    for i, ev := range r.events {
        out[i] = ev.Type
    }
    return out
}

// countingMetrics records status transitions reported to Metrics.
type countingMetrics struct {
    noopMetrics
    mu      sync.Mutex
    changes map[string]int
}

func (c *countingMetrics) StatusChanged(to string) {
    c.mu.Lock()
    defer c.mu.Unlock()
    if c.changes == nil {
        c.changes = map[string]int{}
    }
    c.changes[to]++
}

func (c *countingMetrics) count(to model.Status) int {
    c.mu.Lock()
    defer c.mu.Unlock()
    return c.changes[string(to)]
}
