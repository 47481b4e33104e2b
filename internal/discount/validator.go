// Package discount decides whether a discount code may be applied.
package discount

import (
    "context"
    "errors"
    "strings"
    "time"

    "github.com/rs/zerolog"

    "github.com/iliyamo/hotel-room-booking/internal/model"
    "github.com/iliyamo/hotel-room-booking/internal/repository"
)

// Reasons a code is rejected.
const (
    ReasonEmpty        = "empty"
    ReasonNotFound     = "not_found"
    ReasonInactive     = "inactive"
    ReasonNotStarted   = "not_started"
    ReasonExpired      = "expired"
    ReasonBadPercent   = "bad_percent"
    ReasonLookupFailed = "lookup_failed"
)

// Store looks discounts up by their normalized code.
type Store interface {
    FindByCode(ctx context.Context, code string) (*model.Discount, error)
}

// Result is the outcome of validating a code.
type Result struct {
    Valid   bool
    Code    string
    Percent int
    Reason  string
}

// Validator checks discount codes against a Store.
type Validator struct {
    store Store
    log   zerolog.Logger
}

// NewValidator returns a Validator backed by store.
func NewValidator(store Store, log zerolog.Logger) *Validator {
    return &Validator{store: store, log: log.With().Str("component", "discount").Logger()}
}

// Normalize trims and upper-cases a code the way codes are stored.
func Normalize(code string) string {
    return strings.ToUpper(strings.TrimSpace(code))
}

// Validate reports whether code is usable at now.  It never returns an
// error: a failed lookup is reported as an invalid code so the booking
// can carry on without a discount.
func (v *Validator) Validate(ctx context.Context, code string, now time.Time) Result {
    norm := Normalize(code)
    if norm == "" {
        return Result{Code: norm, Reason: ReasonEmpty}
    }
    d, err := v.store.FindByCode(ctx, norm)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return Result{Code: norm, Reason: ReasonNotFound}
        }
        v.log.Error().Err(err).Str("code", norm).Msg("discount lookup failed")
        return Result{Code: norm, Reason: ReasonLookupFailed}
    }
    if reason := Check(d, now); reason != "" {
        return Result{Code: norm, Reason: reason}
    }
    return Result{Valid: true, Code: norm, Percent: d.Percent}
}

// Check returns "" when d is usable at now, otherwise the rejection
// reason.  Both window bounds are inclusive; a nil bound is open.
func Check(d *model.Discount, now time.Time) string {
    switch {
    case !d.IsActive:
        return ReasonInactive
    case d.Percent < 1 || d.Percent > 100:
        return ReasonBadPercent
    case d.StartsAt != nil && now.Before(*d.StartsAt):
        return ReasonNotStarted
    case d.EndsAt != nil && now.After(*d.EndsAt):
        return ReasonExpired
    }
    return ""
}
