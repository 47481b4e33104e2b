// Package pricing computes what a stay costs.  All arithmetic uses
// fixed-point decimals; binary floating point never touches a monetary
// value.
package pricing

import (
    "context"
    "time"

    "github.com/shopspring/decimal"

    "github.com/iliyamo/hotel-room-booking/internal/discount"
    "github.com/iliyamo/hotel-room-booking/internal/model"
)

const day = 24 * time.Hour

// DefaultScale is the number of decimal places of the unit's smallest
// denomination (cents).
const DefaultScale int32 = 2

var hundred = decimal.NewFromInt(100)

// Quote is the full price breakdown for a stay.
type Quote struct {
    Nights          int             `json:"nights"`
    Rate            decimal.Decimal `json:"rate"`
    Subtotal        decimal.Decimal `json:"subtotal"`
    DiscountCode    string          `json:"discount_code,omitempty"`
    DiscountPercent int             `json:"discount_percent"`
    DiscountAmount  decimal.Decimal `json:"discount_amount"`
    Total           decimal.Decimal `json:"total"`
    // DiscountRejected carries the reason a supplied code was not applied.
    DiscountRejected string `json:"discount_rejected,omitempty"`
}

// DiscountApplied reports whether a discount reduced the subtotal.
func (q Quote) DiscountApplied() bool { return q.DiscountPercent > 0 }

// CountNights returns ceil((checkOut-checkIn)/1 day), never less than 1.
func CountNights(checkIn, checkOut time.Time) int {
    span := checkOut.Sub(checkIn)
    if span <= 0 {
        return 1
    }
    n := int(span / day)
    if span%day != 0 {
        n++
    }
    if n < 1 {
        n = 1
    }
    return n
}

// Compute prices a stay at rate for [checkIn, checkOut) with an already
// validated discount percentage (0 for none).  The discount is rounded
// half-up to scale decimal places and the total never drops below zero.
func Compute(rate decimal.Decimal, checkIn, checkOut time.Time, percent int, scale int32) (Quote, error) {
    if rate.IsNegative() {
        return Quote{}, &InvalidPriceError{Input: rate.String(), Reason: "negative rate"}
    }
    if percent < 0 || percent > 100 {
        percent = 0
    }
    nights := CountNights(checkIn, checkOut)
    subtotal := rate.Mul(decimal.NewFromInt(int64(nights)))
    discountAmount := decimal.Zero
    if percent > 0 {
        discountAmount = subtotal.Mul(decimal.NewFromInt(int64(percent))).Div(hundred).Round(scale)
    }
    total := subtotal.Sub(discountAmount)
    if total.IsNegative() {
        total = decimal.Zero
    }
    return Quote{
        Nights:          nights,
        Rate:            rate,
        Subtotal:        subtotal,
        DiscountPercent: percent,
        DiscountAmount:  discountAmount,
        Total:           total,
    }, nil
}

// Validator is the subset of the discount validator the engine needs.
type Validator interface {
    Validate(ctx context.Context, code string, now time.Time) discount.Result
}

// Engine prices stays for rooms, validating discount codes on the way.
type Engine struct {
    validator Validator
    scale     int32
}

// NewEngine returns an Engine.  validator may be nil, in which case
// codes are never applied.
func NewEngine(validator Validator, scale int32) *Engine {
    if scale < 0 {
        scale = DefaultScale
    }
    return &Engine{validator: validator, scale: scale}
}

// Quote prices a stay in room.  A code that fails validation does not
// fail the quote: the stay is priced without a discount and the reason
// is recorded on the quote.
func (e *Engine) Quote(ctx context.Context, room *model.Room, checkIn, checkOut time.Time, code string, now time.Time) (Quote, error) {
    percent := 0
    var applied, rejected string
    if code != "" {
        if e.validator == nil {
            rejected = discount.ReasonNotFound
        } else {
            res := e.validator.Validate(ctx, code, now)
            if res.Valid {
                percent = res.Percent
                applied = res.Code
            } else {
                rejected = res.Reason
            }
        }
    }
    q, err := Compute(room.Rate, checkIn, checkOut, percent, e.scale)
    if err != nil {
        return Quote{}, err
    }
    q.DiscountCode = applied
    q.DiscountRejected = rejected
    return q, nil
}

// Scale is the number of decimal places amounts are rounded to.
func (e *Engine) Scale() int32 { return e.scale }
