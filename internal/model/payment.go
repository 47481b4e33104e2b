package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// PaymentStatusPaid is the only payment status the engine records.
const PaymentStatusPaid = "paid"

// Column widths of payments.method and payments.transaction_ref, in
// characters.
const (
    MaxPaymentMethodLen  = 32
    MaxTransactionRefLen = 128
)

// Payment is the immutable receipt written when a payment provider
// confirms a reservation.  At most one exists per reservation.
//
// Fields:
//  ID             – primary key identifier.
//  ReservationID  – reservation that was paid (unique).
//  Amount         – amount captured by the provider.
//  Method         – payment method reported by the provider (card, cash, ...).
//  TransactionRef – provider side reference.
//  Status         – always "paid".
//  CreatedAt      – when the receipt was written.
type Payment struct {
    ID             uint64          `json:"id"`              // payments.id
    ReservationID  uint64          `json:"reservation_id"`  // payments.reservation_id
    Amount         decimal.Decimal `json:"amount"`          // payments.amount
    Method         string          `json:"method"`          // payments.method
    TransactionRef string          `json:"transaction_ref"` // payments.transaction_ref
    Status         string          `json:"status"`          // payments.status
    CreatedAt      time.Time       `json:"created_at"`      // payments.created_at
}
