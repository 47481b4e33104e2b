package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// Room represents a bookable hotel room as stored in the `rooms`
// table.  Rooms are maintained by an external admin collaborator; the
// booking engine only reads them.  A change to Rate never affects
// reservations that were priced before the change.
//
// Fields:
//  ID          – primary key identifier.
//  RoomNumber  – human facing number printed on the door.
//  Name        – display name (e.g. "Deluxe - 102").
//  Type        – room category (Standard, Superior, Deluxe, Suite).
//  Description – free-text description.
//  Rate        – nightly rate in the single unit of account, >= 0.
//  Capacity    – maximum number of guests; zero means unlimited.
//  IsActive    – inactive rooms cannot be booked.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Room struct {
    ID          uint64          `json:"id"`          // rooms.id
    RoomNumber  string          `json:"room_number"` // rooms.room_number
    Name        string          `json:"name"`        // rooms.name
    Type        string          `json:"type"`        // rooms.type
    Description string          `json:"description"` // rooms.description
    Rate        decimal.Decimal `json:"rate"`        // rooms.rate
    Capacity    uint32          `json:"capacity"`    // rooms.capacity
    IsActive    bool            `json:"is_active"`   // rooms.is_active
    CreatedAt   time.Time       `json:"created_at"`  // rooms.created_at
    UpdatedAt   time.Time       `json:"updated_at"`  // rooms.updated_at
}

// RoomFilter narrows a catalog listing.  Zero values mean "no filter".
type RoomFilter struct {
    Query   string
    Type    string
    MinRate *decimal.Decimal
    MaxRate *decimal.Decimal
    Sort    string
    Page    int
}
