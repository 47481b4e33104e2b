package availability

import (
    "context"
    "errors"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/hotel-room-booking/internal/model"
)

type listStore struct {
    list []model.Reservation
    err  error
}

func (s listStore) ListOccupying(context.Context, uint64, time.Time, time.Time) ([]model.Reservation, error) {
    return s.list, s.err
}

func day(d int) time.Time { return time.Date(2025, 7, d, 0, 0, 0, 0, time.UTC) }

func TestValidateRange(t *testing.T) {
    assert.NoError(t, ValidateRange(day(1), day(2)))
    for _, r := range [][2]time.Time{{day(2), day(2)}, {day(3), day(2)}, {time.Time{}, day(2)}} {
        err := ValidateRange(r[0], r[1])
        assert.ErrorIs(t, err, ErrInvalidRange)
        var ire *InvalidRangeError
        require.ErrorAs(t, err, &ire)
        assert.Equal(t, r[1], ire.CheckOut)
    }
}

func TestIsAvailable(t *testing.T) {
    existing := []model.Reservation{
        {ID: 1, CheckIn: day(5), CheckOut: day(8), Status: model.StatusPaid},
        {ID: 2, CheckIn: day(10), CheckOut: day(12), Status: model.StatusCancelled},
        {ID: 3, CheckIn: day(14), CheckOut: day(16), Status: model.StatusCheckedOut},
    }
    c := NewChecker(listStore{list: existing})
    ctx := context.Background()

    cases := []struct {
        name    string
        ci, co  time.Time
        wantOK  bool
    }{
        {"ends when other starts", day(3), day(5), true},
        {"starts when other ends", day(8), day(9), true},
        {"inside", day(6), day(7), false},
        {"covers", day(4), day(9), false},
        {"last night", day(7), day(9), false},
        {"over cancelled", day(10), day(12), true},
        {"over checked out", day(14), day(16), true},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            ok, err := c.IsAvailable(ctx, 1, tc.ci, tc.co)
            require.NoError(t, err)
            assert.Equal(t, tc.wantOK, ok)
        })
    }

    _, err := c.IsAvailable(ctx, 1, day(5), day(5))
    assert.ErrorIs(t, err, ErrInvalidRange)

    boom := errors.New("boom")
    _, err = NewChecker(listStore{err: boom}).IsAvailable(ctx, 1, day(1), day(2))
    assert.ErrorIs(t, err, boom)
}
