package pricing

import (
    "context"
    "testing"
    "time"

    "github.com/shopspring/decimal"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/hotel-room-booking/internal/discount"
    "github.com/iliyamo/hotel-room-booking/internal/model"
)

func date(m time.Month, d int) time.Time { return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC) }

func TestCountNights(t *testing.T) {
    assert.Equal(t, 3, CountNights(date(7, 1), date(7, 4)))
    assert.Equal(t, 1, CountNights(date(7, 1), date(7, 1)))
    assert.Equal(t, 1, CountNights(date(7, 4), date(7, 1)))
    assert.Equal(t, 2, CountNights(date(7, 1), date(7, 2).Add(time.Hour)))
}

func TestComputeWithDiscount(t *testing.T) {
    q, err := Compute(decimal.NewFromInt(100), date(7, 1), date(7, 4), 10, DefaultScale)
    require.NoError(t, err)
    assert.Equal(t, 3, q.Nights)
    assert.Equal(t, "300", q.Subtotal.String())
    assert.Equal(t, "30", q.DiscountAmount.String())
    assert.Equal(t, "270", q.Total.String())
    assert.True(t, q.DiscountApplied())
}

func TestComputeRoundsHalfUp(t *testing.T) {
    // 33.33 * 1 night * 15% = 4.9995 -> 5.00
    q, err := Compute(decimal.RequireFromString("33.33"), date(7, 1), date(7, 2), 15, 2)
    require.NoError(t, err)
    assert.Equal(t, "5", q.DiscountAmount.String())
    assert.Equal(t, "28.33", q.Total.String())
}

func TestComputeDeterministicAndBounded(t *testing.T) {
    a, err := Compute(decimal.NewFromInt(600000), date(7, 1), date(7, 3), 0, 2)
    require.NoError(t, err)
    b, err := Compute(decimal.NewFromInt(600000), date(7, 1), date(7, 3), 0, 2)
    require.NoError(t, err)
    assert.Equal(t, a, b)
    assert.Equal(t, "1200000", a.Total.String())

    full, err := Compute(decimal.NewFromInt(50), date(7, 1), date(7, 2), 100, 2)
    require.NoError(t, err)
    assert.True(t, full.Total.IsZero())

    ignored, err := Compute(decimal.NewFromInt(50), date(7, 1), date(7, 2), 150, 2)
    require.NoError(t, err)
    assert.Equal(t, "50", ignored.Total.String())

    _, err = Compute(decimal.NewFromInt(-1), date(7, 1), date(7, 2), 0, 2)
    assert.ErrorIs(t, err, ErrInvalidPrice)
}

type stubValidator map[string]discount.Result

func (s stubValidator) Validate(_ context.Context, code string, _ time.Time) discount.Result {
    return s[code]
}

func TestEngineQuote(t *testing.T) {
    e := NewEngine(stubValidator{
        "SAVE10": {Valid: true, Code: "SAVE10", Percent: 10},
        "OLD":    {Code: "OLD", Reason: discount.ReasonExpired},
    }, -1)
    assert.Equal(t, DefaultScale, e.Scale())
    room := &model.Room{ID: 1, Rate: decimal.NewFromInt(100)}

    q, err := e.Quote(context.Background(), room, date(7, 1), date(7, 4), "SAVE10", date(6, 1))
    require.NoError(t, err)
    assert.Equal(t, "SAVE10", q.DiscountCode)
    assert.Equal(t, "270", q.Total.String())

    q, err = e.Quote(context.Background(), room, date(7, 1), date(7, 4), "OLD", date(6, 1))
    require.NoError(t, err)
    assert.Empty(t, q.DiscountCode)
    assert.Equal(t, discount.ReasonExpired, q.DiscountRejected)
    assert.Equal(t, "300", q.Total.String())

    q, err = NewEngine(nil, 2).Quote(context.Background(), room, date(7, 1), date(7, 2), "ANY", date(6, 1))
    require.NoError(t, err)
    assert.Equal(t, discount.ReasonNotFound, q.DiscountRejected)
}

func TestParsePrice(t *testing.T) {
    ok := map[string]string{
        "250":          "250",
        "250.000":      "250000",
        "250,5":        "250.5",
        "1.234.567,89": "1234567.89",
        "1,234,567.89": "1234567.89",
        "99.99":        "99.99",
        " 1 200 ":      "1200",
        "+12,50":       "12.5",
    }
    for in, want := range ok {
        got, err := ParsePrice(in)
        if assert.NoError(t, err, in) {
            assert.Equal(t, want, got.String(), in)
        }
    }

    for _, in := range []string{"", "abc", "-5", "1,2.3,4", "12.3.4,5,6", "1e5"} {
        _, err := ParsePrice(in)
        assert.ErrorIs(t, err, ErrInvalidPrice, in)
    }

    for _, in := range []string{"1,5.3", "1.2,3", "12,34,5", "1.2.3", "1234.567", ",500", "1,2345.6"} {
        _, err := ParsePrice(in)
        var perr *InvalidPriceError
        if assert.ErrorAs(t, err, &perr, in) {
            assert.Equal(t, "malformed grouping", perr.Reason, in)
        }
    }
}
