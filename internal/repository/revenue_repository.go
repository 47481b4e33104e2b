package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "github.com/pkg/errors"

    "github.com/iliyamo/hotel-room-booking/internal/model"
)

// RevenueRepo reads revenue-bearing reservations for reporting.
type RevenueRepo struct {
    db *sql.DB
}

func NewRevenueRepo(db *sql.DB) *RevenueRepo { return &RevenueRepo{db: db} }

// ListRevenueEntries returns revenue-bearing reservations created in
// [from, to).  A zero bound is open.
func (r *RevenueRepo) ListRevenueEntries(ctx context.Context, from, to time.Time) ([]model.RevenueEntry, error) {
    st := model.RevenueStatuses()
    where := []string{"status IN (" + strings.TrimSuffix(strings.Repeat("?, ", len(st)), ", ") + ")"}
    args := make([]any, 0, len(st)+2)
    for _, s := range st {
        args = append(args, string(s))
    }
    if !from.IsZero() {
        where = append(where, "created_at >= ?")
        args = append(args, from)
    }
    if !to.IsZero() {
        where = append(where, "created_at < ?")
        args = append(args, to)
    }
    q := `SELECT id, total_price, created_at FROM reservations WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_at`

    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, errors.Wrap(err, "select revenue entries")
    }
    defer rows.Close()
    out := []model.RevenueEntry{}
    for rows.Next() {
        var e model.RevenueEntry
        if err := rows.Scan(&e.ReservationID, &e.TotalPrice, &e.CreatedAt); err != nil {
            return nil, errors.Wrap(err, "scan revenue entry")
        }
        out = append(out, e)
    }
    if err := rows.Err(); err != nil {
        return nil, errors.Wrap(err, "iterate revenue entries")
    }
    return out, nil
}
