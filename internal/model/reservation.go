package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// Reservation records a guest's stay in a room.  The stay occupies the
// half-open interval [CheckIn, CheckOut); CheckOut is always after
// CheckIn.  The price fields are computed once at creation time and
// never recomputed when the room rate changes.
//
// Fields:
//  ID              – primary key identifier.
//  Code            – human facing booking code (BK + 8 hex chars).
//  UserID          – guest who owns the reservation.
//  RoomID          – room being reserved.
//  CheckIn         – first night (UTC midnight).
//  CheckOut        – departure date (UTC midnight), exclusive.
//  Guests          – number of guests.
//  Nights          – number of nights charged.
//  Subtotal        – rate × nights.
//  DiscountCode    – code applied, nil when none was applied.
//  DiscountPercent – percentage applied, zero when none.
//  DiscountAmount  – amount taken off the subtotal, >= 0.
//  TotalPrice      – amount owed, >= 0.
//  Status          – lifecycle state.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Reservation struct {
    ID              uint64          `json:"id"`               // reservations.id
    Code            string          `json:"code"`             // reservations.code
    UserID          uint64          `json:"user_id"`          // reservations.user_id
    RoomID          uint64          `json:"room_id"`          // reservations.room_id
    CheckIn         time.Time       `json:"check_in"`         // reservations.check_in
    CheckOut        time.Time       `json:"check_out"`        // reservations.check_out
    Guests          uint32          `json:"guests"`           // reservations.guests
    Nights          int             `json:"nights"`           // reservations.nights
    Subtotal        decimal.Decimal `json:"subtotal"`         // reservations.subtotal
    DiscountCode    *string         `json:"discount_code"`    // reservations.discount_code (nullable)
    DiscountPercent int             `json:"discount_percent"` // reservations.discount_percent
    DiscountAmount  decimal.Decimal `json:"discount_amount"`  // reservations.discount_amount
    TotalPrice      decimal.Decimal `json:"total_price"`      // reservations.total_price
    Status          Status          `json:"status"`           // reservations.status
    CreatedAt       time.Time       `json:"created_at"`       // reservations.created_at
    UpdatedAt       time.Time       `json:"updated_at"`       // reservations.updated_at
}

// Overlaps reports whether the reservation's stay intersects [checkIn, checkOut).
func (r *Reservation) Overlaps(checkIn, checkOut time.Time) bool {
    return r.CheckIn.Before(checkOut) && r.CheckOut.After(checkIn)
}

// Nights enumerates the calendar nights of [checkIn, checkOut).  Each
// returned value is a UTC midnight.  An empty slice is returned for an
// empty or inverted range.
func Nights(checkIn, checkOut time.Time) []time.Time {
    start := TruncateDay(checkIn)
    var out []time.Time
    for d := start; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
        out = append(out, d)
    }
    return out
}

// TruncateDay returns the UTC midnight of t's calendar date.
func TruncateDay(t time.Time) time.Time {
    u := t.UTC()
    return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ReservationFilter narrows the administrative reservation listing.  Zero
// values mean "no filter"; Page starts at 1.
type ReservationFilter struct {
    RoomID uint64
    Status Status
    Page   int
}
