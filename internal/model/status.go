package model

import "strings"

// Status is the lifecycle state of a reservation.
type Status string

const (
    StatusPending    Status = "pending"
    StatusConfirmed  Status = "confirmed"
    StatusPaid       Status = "paid"
    StatusCheckedIn  Status = "checked_in"
    StatusCheckedOut Status = "checked_out"
    StatusCancelled  Status = "cancelled"
)

// AllStatuses lists every state an administrator may set.
var AllStatuses = []Status{
    StatusPending, StatusConfirmed, StatusPaid,
    StatusCheckedIn, StatusCheckedOut, StatusCancelled,
}

// ParseStatus normalizes s and reports whether it names a known state.
func ParseStatus(s string) (Status, bool) {
    st := Status(strings.ToLower(strings.TrimSpace(s)))
    for _, known := range AllStatuses {
        if st == known {
            return st, true
        }
    }
    return "", false
}

// Occupying reports whether a reservation in this state holds its
// nights.  Only checked_out and cancelled release the room.
func (s Status) Occupying() bool {
    switch s {
    case StatusPending, StatusConfirmed, StatusPaid, StatusCheckedIn:
        return true
    }
    return false
}

// RevenueBearing reports whether the reservation counts as revenue.
func (s Status) RevenueBearing() bool {
    switch s {
    case StatusPaid, StatusCheckedIn, StatusCheckedOut:
        return true
    }
    return false
}

// OccupyingStatuses returns the states that block a room's nights.
func OccupyingStatuses() []Status {
    return []Status{StatusPending, StatusConfirmed, StatusPaid, StatusCheckedIn}
}

// RevenueStatuses returns the states included in revenue reports.
func RevenueStatuses() []Status {
    return []Status{StatusPaid, StatusCheckedIn, StatusCheckedOut}
}
