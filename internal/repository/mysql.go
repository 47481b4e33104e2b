package repository

import (
    "context"
    "database/sql"

    "github.com/go-sql-driver/mysql"
    "github.com/pkg/errors"
)

// MySQL error numbers the repositories translate.
const (
    mysqlDuplicateEntry  = 1062
    mysqlLockWaitTimeout = 1205
    mysqlDeadlock        = 1213
)

// classify maps driver errors onto the package sentinels.  dupErr is
// returned for duplicate key violations since their meaning depends on
// the table being written.  Other errors are wrapped with op.
func classify(err error, op string, dupErr error) error {
    if err == nil {
        return nil
    }
    if errors.Is(err, context.DeadlineExceeded) {
        return errors.Wrap(ErrLockTimeout, op)
    }
    if errors.Is(err, sql.ErrNoRows) {
        return ErrNotFound
    }
    var me *mysql.MySQLError
    if errors.As(err, &me) {
        switch me.Number {
        case mysqlDuplicateEntry:
            if dupErr != nil {
                return dupErr
            }
        case mysqlLockWaitTimeout, mysqlDeadlock:
            return errors.Wrap(ErrLockTimeout, op)
        }
    }
    return errors.Wrap(err, op)
}

// rollback is deferred by transactional methods; it is a no-op once the
// transaction has been committed.
func rollback(tx *sql.Tx, committed *bool) {
    if !*committed {
        _ = tx.Rollback()
    }
}
