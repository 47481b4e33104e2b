package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/pkg/errors"

    "github.com/iliyamo/hotel-room-booking/internal/model"
)

// RoomPageSize is the number of rooms returned per catalog page.
const RoomPageSize = 12

// RoomRepo reads the room catalog.  Rooms are maintained by staff
// tooling outside this service, so the repository is read only.
type RoomRepo struct {
    db *sql.DB
}

// NewRoomRepo returns a RoomRepo bound to db.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = `id, room_number, name, type, COALESCE(description, ''), rate, capacity, is_active, created_at, updated_at`

func scanRoom(s interface{ Scan(...any) error }, r *model.Room) error {
    return s.Scan(&r.ID, &r.RoomNumber, &r.Name, &r.Type, &r.Description, &r.Rate,
        &r.Capacity, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
}

// GetRoom returns the room with the given id, active or not.  It returns
// ErrNotFound when no row matches.
func (r *RoomRepo) GetRoom(ctx context.Context, id uint64) (*model.Room, error) {
    q := `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
    var room model.Room
    if err := scanRoom(r.db.QueryRowContext(ctx, q, id), &room); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrNotFound
        }
        return nil, errors.Wrap(err, "select room")
    }
    return &room, nil
}

// roomOrder whitelists the catalog sort keys.
var roomOrder = map[string]string{
    "price_asc":  "rate ASC, id ASC",
    "price_desc": "rate DESC, id ASC",
    "name_asc":   "name ASC, id ASC",
    "name_desc":  "name DESC, id ASC",
    "newest":     "created_at DESC, id DESC",
}

// ListRooms returns one page of active rooms matching f together with the
// total number of matches.  Unknown sort keys fall back to price_asc and
// pages start at 1.
func (r *RoomRepo) ListRooms(ctx context.Context, f model.RoomFilter) ([]model.Room, int, error) {
    where := []string{"is_active = 1"}
    args := []any{}

    if q := strings.TrimSpace(f.Query); q != "" {
        where = append(where, "(LOWER(name) LIKE ? OR LOWER(room_number) LIKE ? OR LOWER(description) LIKE ?)")
        like := "%" + strings.ToLower(q) + "%"
        args = append(args, like, like, like)
    }
    if t := strings.TrimSpace(f.Type); t != "" {
        where = append(where, "LOWER(type) = ?")
        args = append(args, strings.ToLower(t))
    }
    if f.MinRate != nil {
        where = append(where, "rate >= ?")
        args = append(args, f.MinRate.String())
    }
    if f.MaxRate != nil {
        where = append(where, "rate <= ?")
        args = append(args, f.MaxRate.String())
    }
    cond := strings.Join(where, " AND ")

    var total int
    if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms WHERE `+cond, args...).Scan(&total); err != nil {
        return nil, 0, errors.Wrap(err, "count rooms")
    }

    order, ok := roomOrder[f.Sort]
    if !ok {
        order = roomOrder["price_asc"]
    }
    page := f.Page
    if page < 1 {
        page = 1
    }
    dataSQL := `SELECT ` + roomColumns + ` FROM rooms WHERE ` + cond + ` ORDER BY ` + order + ` LIMIT ? OFFSET ?`
    argsData := append(append([]any{}, args...), RoomPageSize, (page-1)*RoomPageSize)

    rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
    if err != nil {
        return nil, 0, errors.Wrap(err, "select rooms")
    }
    defer rows.Close()

    out := make([]model.Room, 0, RoomPageSize)
    for rows.Next() {
        var room model.Room
        if err := scanRoom(rows, &room); err != nil {
            return nil, 0, errors.Wrap(err, "scan room")
        }
        out = append(out, room)
    }
    if err := rows.Err(); err != nil {
        return nil, 0, errors.Wrap(err, "iterate rooms")
    }
    return out, total, nil
}
