package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// RevenueEntry is the projection of a revenue-bearing reservation that
// reporting aggregates over.
type RevenueEntry struct {
    ReservationID uint64
    TotalPrice    decimal.Decimal
    CreatedAt     time.Time
}
