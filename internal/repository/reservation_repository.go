package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "github.com/pkg/errors"

    "github.com/iliyamo/hotel-room-booking/internal/model"
)

// ReservationRepo persists reservations, their nights and payments.  All
// dates are calendar dates stored as DATE columns; timestamps are UTC.
//
// Every reservation in an occupying status owns one reservation_nights
// row per night of its stay.  The (room_id, night) primary key of that
// table is the storage level guarantee that occupying reservations of a
// room never overlap.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle for callers that need to open their
// own transactions.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = `id, code, user_id, room_id, check_in, check_out, guests, nights,
    subtotal, discount_code, discount_percent, discount_amount, total_price, status, created_at, updated_at`

func scanReservation(s interface{ Scan(...any) error }, res *model.Reservation) error {
    var (
        code   sql.NullString
        status string
    )
    if err := s.Scan(&res.ID, &res.Code, &res.UserID, &res.RoomID, &res.CheckIn, &res.CheckOut,
        &res.Guests, &res.Nights, &res.Subtotal, &code, &res.DiscountPercent, &res.DiscountAmount,
        &res.TotalPrice, &status, &res.CreatedAt, &res.UpdatedAt); err != nil {
        return err
    }
    res.DiscountCode = nil
    if code.Valid {
        c := code.String
        res.DiscountCode = &c
    }
    res.Status = model.Status(status)
    return nil
}

// occupyingPlaceholders renders "?, ?, ..." for the occupying statuses and
// returns the matching arguments.
func occupyingPlaceholders() (string, []any) {
    st := model.OccupyingStatuses()
    args := make([]any, len(st))
    for i, s := range st {
        args[i] = string(s)
    }
    return strings.TrimSuffix(strings.Repeat("?, ", len(st)), ", "), args
}

// ListOccupying returns the occupying reservations of roomID whose stay
// intersects [checkIn, checkOut).
func (r *ReservationRepo) ListOccupying(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) ([]model.Reservation, error) {
    ph, stArgs := occupyingPlaceholders()
    q := `SELECT ` + reservationColumns + ` FROM reservations
          WHERE room_id = ? AND status IN (` + ph + `) AND check_in < ? AND check_out > ?
          ORDER BY check_in`
    args := append([]any{roomID}, stArgs...)
    args = append(args, checkOut, checkIn)
    return r.list(ctx, q, args...)
}

// ListReservationsByUser returns the reservations of userID, newest first.
func (r *ReservationRepo) ListReservationsByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
    q := `SELECT ` + reservationColumns + ` FROM reservations WHERE user_id = ? ORDER BY id DESC`
    return r.list(ctx, q, userID)
}

// ReservationPageSize is the page size of the administrative listing.
const ReservationPageSize = 20

// ListReservations returns one page of reservations matching f, newest
// first, together with the total number of matches.
func (r *ReservationRepo) ListReservations(ctx context.Context, f model.ReservationFilter) ([]model.Reservation, int, error) {
    where := []string{"1 = 1"}
    var args []any
    if f.RoomID != 0 {
        where = append(where, "room_id = ?")
        args = append(args, f.RoomID)
    }
    if f.Status != "" {
        where = append(where, "status = ?")
        args = append(args, string(f.Status))
    }
    cond := strings.Join(where, " AND ")

    var total int
    if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations WHERE `+cond, args...).Scan(&total); err != nil {
        return nil, 0, classify(err, "count reservations", nil)
    }

    page := f.Page
    if page < 1 {
        page = 1
    }
    q := `SELECT ` + reservationColumns + ` FROM reservations WHERE ` + cond + ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
    list, err := r.list(ctx, q, append(args, ReservationPageSize, (page-1)*ReservationPageSize)...)
    if err != nil {
        return nil, 0, err
    }
    return list, total, nil
}

func (r *ReservationRepo) list(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, classify(err, "select reservations", nil)
    }
    defer rows.Close()
    out := []model.Reservation{}
    for rows.Next() {
        var res model.Reservation
        if err := scanReservation(rows, &res); err != nil {
            return nil, errors.Wrap(err, "scan reservation")
        }
        out = append(out, res)
    }
    if err := rows.Err(); err != nil {
        return nil, errors.Wrap(err, "iterate reservations")
    }
    return out, nil
}

// GetReservation loads a reservation by id.  It returns ErrNotFound when
// no row matches.
func (r *ReservationRepo) GetReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
    q := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
    var res model.Reservation
    if err := scanReservation(r.db.QueryRowContext(ctx, q, id), &res); err != nil {
        return nil, classify(err, "select reservation", nil)
    }
    return &res, nil
}

// CreateReservation inserts res and its nights in one transaction.  The
// room row is locked first so concurrent creates for the same room queue
// up; the half-open overlap query then rejects conflicting stays with
// ErrOverlap, and the reservation_nights key rejects any that slip past
// it.  The generated id is stored on res.
func (r *ReservationRepo) CreateReservation(ctx context.Context, res *model.Reservation) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return classify(err, "begin tx", nil)
    }
    committed := false
    defer rollback(tx, &committed)

    if err := lockRoomTx(ctx, tx, res.RoomID); err != nil {
        return err
    }
    n, err := countOverlapTx(ctx, tx, res.RoomID, res.CheckIn, res.CheckOut, 0)
    if err != nil {
        return err
    }
    if n > 0 {
        return ErrOverlap
    }
    if err := insertReservationTx(ctx, tx, res); err != nil {
        return err
    }
    if err := insertNightsTx(ctx, tx, res); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return classify(err, "commit reservation", nil)
    }
    committed = true
    return nil
}

// lockRoomTx takes the room row lock for the rest of tx.
func lockRoomTx(ctx context.Context, tx *sql.Tx, roomID uint64) error {
    var id uint64
    err := tx.QueryRowContext(ctx, `SELECT id FROM rooms WHERE id = ? FOR UPDATE`, roomID).Scan(&id)
    return classify(err, "lock room", nil)
}

// countOverlapTx counts occupying reservations of roomID other than skipID
// that intersect [checkIn, checkOut).
func countOverlapTx(ctx context.Context, tx *sql.Tx, roomID uint64, checkIn, checkOut time.Time, skipID uint64) (int, error) {
    ph, stArgs := occupyingPlaceholders()
    q := `SELECT COUNT(*) FROM reservations
          WHERE room_id = ? AND status IN (` + ph + `) AND check_in < ? AND check_out > ? AND id <> ?`
    args := append([]any{roomID}, stArgs...)
    args = append(args, checkOut, checkIn, skipID)
    var n int
    if err := tx.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
        return 0, classify(err, "count overlapping reservations", nil)
    }
    return n, nil
}

func insertReservationTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
    const q = `INSERT INTO reservations (code, user_id, room_id, check_in, check_out, guests, nights,
        subtotal, discount_code, discount_percent, discount_amount, total_price, status, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, q, res.Code, res.UserID, res.RoomID, res.CheckIn, res.CheckOut,
        res.Guests, res.Nights, res.Subtotal, res.DiscountCode, res.DiscountPercent, res.DiscountAmount,
        res.TotalPrice, string(res.Status), res.CreatedAt, res.UpdatedAt)
    if err != nil {
        return classify(err, "insert reservation", ErrConflict)
    }
    id, err := result.LastInsertId()
    if err != nil {
        return errors.Wrap(err, "reservation id")
    }
    res.ID = uint64(id)
    return nil
}

// insertNightsTx claims every night of res in a single statement.  A
// night already owned by another reservation fails with ErrOverlap.
func insertNightsTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
    nights := model.Nights(res.CheckIn, res.CheckOut)
    if len(nights) == 0 {
        return nil
    }
    var sb strings.Builder
    sb.WriteString(`INSERT INTO reservation_nights (room_id, night, reservation_id) VALUES `)
    args := make([]any, 0, len(nights)*3)
    for i, n := range nights {
        if i > 0 {
            sb.WriteString(",")
        }
        sb.WriteString("(?, ?, ?)")
        args = append(args, res.RoomID, n, res.ID)
    }
    _, err := tx.ExecContext(ctx, sb.String(), args...)
    return classify(err, "insert reservation nights", ErrOverlap)
}

func getForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
    q := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ? FOR UPDATE`
    var res model.Reservation
    if err := scanReservation(tx.QueryRowContext(ctx, q, id), &res); err != nil {
        return nil, classify(err, "lock reservation", nil)
    }
    return &res, nil
}

// ConfirmPayment locks the reservation, asks check whether the payment
// may be applied and, unless a payment already exists, records p and
// moves a pending or confirmed reservation to paid.  created reports
// whether p was written.
func (r *ReservationRepo) ConfirmPayment(ctx context.Context, id uint64, p *model.Payment,
    check func(res *model.Reservation, alreadyPaid bool) error) (*model.Reservation, bool, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, false, classify(err, "begin tx", nil)
    }
    committed := false
    defer rollback(tx, &committed)

    res, err := getForUpdateTx(ctx, tx, id)
    if err != nil {
        return nil, false, err
    }
    var existing int
    if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments WHERE reservation_id = ?`, id).Scan(&existing); err != nil {
        return nil, false, classify(err, "count payments", nil)
    }
    if err := check(res, existing > 0); err != nil {
        return nil, false, err
    }
    if existing > 0 {
        if err := tx.Commit(); err != nil {
            return nil, false, classify(err, "commit", nil)
        }
        committed = true
        return res, false, nil
    }

    const ins = `INSERT INTO payments (reservation_id, amount, method, transaction_ref, status, created_at)
                 VALUES (?, ?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, ins, id, p.Amount, p.Method, p.TransactionRef, p.Status, p.CreatedAt)
    if err != nil {
        return nil, false, classify(err, "insert payment", ErrConflict)
    }
    if pid, err := result.LastInsertId(); err == nil {
        p.ID = uint64(pid)
    }

    if res.Status == model.StatusPending || res.Status == model.StatusConfirmed {
        if _, err := tx.ExecContext(ctx, `UPDATE reservations SET status = ? WHERE id = ?`, string(model.StatusPaid), id); err != nil {
            return nil, false, classify(err, "mark reservation paid", nil)
        }
        res.Status = model.StatusPaid
        res.UpdatedAt = time.Now().UTC()
    }
    if err := tx.Commit(); err != nil {
        return nil, false, classify(err, "commit payment", nil)
    }
    committed = true
    return res, true, nil
}

// UpdateStatus locks the reservation, asks check whether the change is
// allowed and stores the new status.  Leaving the occupying set releases
// the reservation's nights; entering it claims them again and fails with
// ErrOverlap when another reservation took them in the meantime.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, to model.Status,
    check func(res *model.Reservation) error) (*model.Reservation, model.Status, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, "", classify(err, "begin tx", nil)
    }
    committed := false
    defer rollback(tx, &committed)

    res, err := getForUpdateTx(ctx, tx, id)
    if err != nil {
        return nil, "", err
    }
    if err := check(res); err != nil {
        return nil, "", err
    }
    from := res.Status
    if from != to {
        switch {
        case from.Occupying() && !to.Occupying():
            if _, err := tx.ExecContext(ctx, `DELETE FROM reservation_nights WHERE reservation_id = ?`, id); err != nil {
                return nil, "", classify(err, "release nights", nil)
            }
        case !from.Occupying() && to.Occupying():
            if err := lockRoomTx(ctx, tx, res.RoomID); err != nil {
                return nil, "", err
            }
            if err := insertNightsTx(ctx, tx, res); err != nil {
                return nil, "", err
            }
        }
        if _, err := tx.ExecContext(ctx, `UPDATE reservations SET status = ? WHERE id = ?`, string(to), id); err != nil {
            return nil, "", classify(err, "update status", nil)
        }
        res.Status = to
        res.UpdatedAt = time.Now().UTC()
    }
    if err := tx.Commit(); err != nil {
        return nil, "", classify(err, "commit status", nil)
    }
    committed = true
    return res, from, nil
}
