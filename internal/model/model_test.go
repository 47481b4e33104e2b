package model

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
    s, ok := ParseStatus(" CHECKED_IN ")
    assert.True(t, ok)
    assert.Equal(t, StatusCheckedIn, s)

    _, ok = ParseStatus("archived")
    assert.False(t, ok)
}

func TestStatusSets(t *testing.T) {
    for _, s := range AllStatuses {
        occupying := false
        for _, o := range OccupyingStatuses() {
            occupying = occupying || o == s
        }
        assert.Equal(t, occupying, s.Occupying(), s)

        revenue := false
        for _, r := range RevenueStatuses() {
            revenue = revenue || r == s
        }
        assert.Equal(t, revenue, s.RevenueBearing(), s)
    }
    assert.False(t, StatusCancelled.Occupying())
    assert.False(t, StatusCheckedOut.Occupying())
}

func TestNightsAndTruncate(t *testing.T) {
    ci := time.Date(2025, 7, 1, 15, 30, 0, 0, time.FixedZone("X", 3*3600))
    assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), TruncateDay(ci))

    nights := Nights(TruncateDay(ci), time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC))
    assert.Len(t, nights, 3)
    assert.Equal(t, 3, nights[2].Day())
    assert.Empty(t, Nights(time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC), time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)))
}

func TestOverlaps(t *testing.T) {
    d := func(n int) time.Time { return time.Date(2025, 7, n, 0, 0, 0, 0, time.UTC) }
    r := &Reservation{CheckIn: d(5), CheckOut: d(8)}
    assert.True(t, r.Overlaps(d(7), d(9)))
    assert.False(t, r.Overlaps(d(8), d(9)))
    assert.False(t, r.Overlaps(d(3), d(5)))
}
