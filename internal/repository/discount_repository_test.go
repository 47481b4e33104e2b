package repository

import (
    "context"
    "regexp"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    gormmysql "gorm.io/driver/mysql"
    "gorm.io/gorm"
    "gorm.io/gorm/logger"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
    t.Helper()
    db, mock := newMock(t)
    gdb, err := gorm.Open(gormmysql.New(gormmysql.Config{Conn: db, SkipInitializeWithVersion: true}),
        &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
    require.NoError(t, err)
    return gdb, mock
}

func TestDiscountFindByCode(t *testing.T) {
    gdb, mock := newGormMock(t)
    repo := NewDiscountRepo(gdb)
    start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
    end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

    mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `discounts` WHERE code = ?")).
        WithArgs("SAVE10", 1).
        WillReturnRows(sqlmock.NewRows([]string{"id", "code", "percent", "starts_at", "ends_at", "is_active", "created_at", "updated_at"}).
            AddRow(1, "SAVE10", 10, start, end, true, start, start))

    d, err := repo.FindByCode(context.Background(), "SAVE10")
    require.NoError(t, err)
    assert.Equal(t, 10, d.Percent)
    require.NotNil(t, d.EndsAt)
    assert.True(t, d.EndsAt.Equal(end))
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiscountFindByCodeMissing(t *testing.T) {
    gdb, mock := newGormMock(t)
    repo := NewDiscountRepo(gdb)

    mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `discounts` WHERE code = ?")).
        WithArgs("NOPE", 1).
        WillReturnRows(sqlmock.NewRows([]string{"id"}))

    _, err := repo.FindByCode(context.Background(), "NOPE")
    assert.ErrorIs(t, err, ErrNotFound)
    assert.NoError(t, mock.ExpectationsWereMet())
}
