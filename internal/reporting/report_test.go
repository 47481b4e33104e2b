package reporting

import (
    "context"
    "errors"
    "testing"
    "time"

    "github.com/rs/zerolog"
    "github.com/shopspring/decimal"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/hotel-room-booking/internal/model"
)

func at(s string) time.Time {
    t, err := time.Parse(time.RFC3339, s)
    if err != nil {
        panic(err)
    }
    return t
}

func entry(id uint64, total int64, created string) model.RevenueEntry {
    return model.RevenueEntry{ReservationID: id, TotalPrice: decimal.NewFromInt(total), CreatedAt: at(created)}
}

var sample = []model.RevenueEntry{
    entry(1, 270, "2025-03-01T10:00:00Z"),
    entry(2, 100, "2025-03-01T23:59:59Z"),
    entry(3, 50, "2025-03-02T00:00:00Z"),
    entry(4, 1200000, "2024-12-31T08:00:00Z"),
}

func TestAggregate(t *testing.T) {
    days := Aggregate(sample, Day)
    require.Len(t, days, 3)
    assert.Equal(t, "2025-03-02", days[0].Key)
    assert.Equal(t, "2025-03-01", days[1].Key)
    assert.True(t, decimal.NewFromInt(370).Equal(days[1].Total))
    assert.Equal(t, 2, days[1].Count)
    assert.Equal(t, "2024-12-31", days[2].Key)

    months := Aggregate(sample, Month)
    require.Len(t, months, 2)
    assert.Equal(t, "2025-03", months[0].Key)
    assert.Equal(t, 3, months[0].Count)

    years := Aggregate(sample, Year)
    require.Len(t, years, 2)
    assert.Equal(t, "2024", years[1].Key)
    assert.True(t, decimal.NewFromInt(1200000).Equal(years[1].Total))

    assert.Empty(t, Aggregate(nil, Day))
}

func TestPeriodBounds(t *testing.T) {
    from, to, err := PeriodBounds(Month, "2025-02")
    require.NoError(t, err)
    assert.Equal(t, at("2025-02-01T00:00:00Z"), from)
    assert.Equal(t, at("2025-03-01T00:00:00Z"), to)

    from, to, err = PeriodBounds(Day, "2025-12-31")
    require.NoError(t, err)
    assert.Equal(t, at("2026-01-01T00:00:00Z"), to)
    assert.Equal(t, at("2025-12-31T00:00:00Z"), from)

    from, to, err = PeriodBounds(Year, "")
    require.NoError(t, err)
    assert.True(t, from.IsZero() && to.IsZero())

    _, _, err = PeriodBounds(Month, "2025-13")
    assert.ErrorIs(t, err, ErrInvalidPeriod)
    _, _, err = PeriodBounds(Year, "2025-01")
    assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestParseGranularity(t *testing.T) {
    g, err := ParseGranularity("")
    require.NoError(t, err)
    assert.Equal(t, Month, g)
    g, err = ParseGranularity(" DAY ")
    require.NoError(t, err)
    assert.Equal(t, Day, g)
    _, err = ParseGranularity("week")
    assert.ErrorIs(t, err, ErrInvalidGranularity)
}

type fakeSource struct {
    entries []model.RevenueEntry
    err     error
}

func (f *fakeSource) ListRevenueEntries(_ context.Context, from, to time.Time) ([]model.RevenueEntry, error) {
    if f.err != nil {
        return nil, f.err
    }
    var out []model.RevenueEntry
    for _, e := range f.entries {
        if !from.IsZero() && e.CreatedAt.Before(from) {
            continue
        }
        if !to.IsZero() && !e.CreatedAt.Before(to) {
            continue
        }
        out = append(out, e)
    }
    return out, nil
}

func TestGetRevenueReport(t *testing.T) {
    svc := NewService(&fakeSource{entries: sample}, zerolog.Nop())

    rep, err := svc.GetRevenueReport(context.Background(), "day", "2025-03-01")
    require.NoError(t, err)
    require.Len(t, rep.Rows, 1)
    assert.Equal(t, "2025-03-01", rep.Rows[0].Key)
    assert.Equal(t, 2, rep.Rows[0].Count)
    assert.Equal(t, 4, rep.GrandCount)
    assert.True(t, decimal.NewFromInt(1200420).Equal(rep.GrandTotal), rep.GrandTotal.String())

    rep, err = svc.GetRevenueReport(context.Background(), "year", "")
    require.NoError(t, err)
    assert.Len(t, rep.Rows, 2)
    assert.Equal(t, 4, rep.GrandCount)

    _, err = svc.GetRevenueReport(context.Background(), "week", "")
    assert.ErrorIs(t, err, ErrInvalidGranularity)

    boom := errors.New("db down")
    _, err = NewService(&fakeSource{err: boom}, zerolog.Nop()).GetRevenueReport(context.Background(), "month", "")
    assert.ErrorIs(t, err, boom)
}
