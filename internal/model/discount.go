package model

import "time"

// Discount is a percentage discount code.  Codes are stored upper-case
// and looked up case-insensitively.  Either bound of the validity window
// may be nil, meaning the window is open on that side.
//
// Fields:
//  ID       – primary key identifier.
//  Code     – unique upper-case code.
//  Percent  – integer percentage, 1..100.
//  StartsAt – first instant the code is usable (nullable).
//  EndsAt   – last instant the code is usable (nullable).
//  IsActive – inactive codes are never valid.
type Discount struct {
    ID        uint64
    Code      string
    Percent   int
    StartsAt  *time.Time
    EndsAt    *time.Time
    IsActive  bool
    CreatedAt time.Time
    UpdatedAt time.Time
}
