package database

import (
    "context"
    "errors"
    "testing"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestMigrateRunsEveryStatement(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    for _, table := range []string{"rooms", "reservations", "reservation_nights", "discounts", "payments"} {
        mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + table + " ").WillReturnResult(sqlmock.NewResult(0, 0))
    }
    require.NoError(t, Migrate(context.Background(), db))
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateStopsOnError(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectExec("CREATE TABLE IF NOT EXISTS rooms").WillReturnResult(sqlmock.NewResult(0, 0))
    mock.ExpectExec("CREATE TABLE IF NOT EXISTS reservations").WillReturnError(errors.New("boom"))

    err = Migrate(context.Background(), db)
    require.Error(t, err)
    assert.Contains(t, err.Error(), "migrate statement 2")
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDSN(t *testing.T) {
    assert.Equal(t, "app:secret@tcp(db:3306)/hotel?charset=utf8mb4&parseTime=true&loc=UTC&multiStatements=false",
        DSN("app", "secret", "db", "3306", "hotel"))
    assert.Equal(t, "app@tcp(db:3306)/hotel?charset=utf8mb4&parseTime=true&loc=UTC&multiStatements=false",
        DSN("app", "", "db", "3306", "hotel"))
}
