package database

import (
    "context"
    "database/sql"

    "github.com/pkg/errors"
)

// schema creates the booking tables.  reservation_nights holds one row
// per night of every occupying reservation; its primary key is what makes
// two overlapping stays of the same room impossible.
var schema = []string{
    `CREATE TABLE IF NOT EXISTS rooms (
        id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
        room_number  VARCHAR(32)     NOT NULL,
        name         VARCHAR(191)    NOT NULL,
        type         VARCHAR(64)     NOT NULL DEFAULT '',
        description  TEXT            NULL,
        rate         DECIMAL(18,4)   NOT NULL,
        capacity     INT UNSIGNED    NOT NULL DEFAULT 0,
        is_active    TINYINT(1)      NOT NULL DEFAULT 1,
        created_at   DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at   DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
        PRIMARY KEY (id),
        UNIQUE KEY uq_rooms_number (room_number),
        KEY idx_rooms_active_rate (is_active, rate)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

    `CREATE TABLE IF NOT EXISTS reservations (
        id               BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
        code             CHAR(10)        NOT NULL,
        user_id          BIGINT UNSIGNED NOT NULL,
        room_id          BIGINT UNSIGNED NOT NULL,
        check_in         DATE            NOT NULL,
        check_out        DATE            NOT NULL,
        guests           INT UNSIGNED    NOT NULL DEFAULT 1,
        nights           INT             NOT NULL,
        subtotal         DECIMAL(18,4)   NOT NULL,
        discount_code    VARCHAR(64)     NULL,
        discount_percent INT             NOT NULL DEFAULT 0,
        discount_amount  DECIMAL(18,4)   NOT NULL DEFAULT 0,
        total_price      DECIMAL(18,4)   NOT NULL,
        status           ENUM('pending','confirmed','paid','checked_in','checked_out','cancelled') NOT NULL DEFAULT 'pending',
        created_at       DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at       DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
        PRIMARY KEY (id),
        UNIQUE KEY uq_reservations_code (code),
        KEY idx_reservations_room_dates (room_id, check_in, check_out),
        KEY idx_reservations_user (user_id, id),
        KEY idx_reservations_status_created (status, created_at),
        CONSTRAINT fk_reservations_room FOREIGN KEY (room_id) REFERENCES rooms (id),
        CONSTRAINT chk_reservations_range CHECK (check_out > check_in)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

    `CREATE TABLE IF NOT EXISTS reservation_nights (
        room_id        BIGINT UNSIGNED NOT NULL,
        night          DATE            NOT NULL,
        reservation_id BIGINT UNSIGNED NOT NULL,
        PRIMARY KEY (room_id, night),
        KEY idx_nights_reservation (reservation_id),
        CONSTRAINT fk_nights_reservation FOREIGN KEY (reservation_id) REFERENCES reservations (id) ON DELETE CASCADE
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

    `CREATE TABLE IF NOT EXISTS discounts (
        id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
        code        VARCHAR(64)     NOT NULL,
        percent     INT             NOT NULL,
        starts_at   DATETIME        NULL,
        ends_at     DATETIME        NULL,
        is_active   TINYINT(1)      NOT NULL DEFAULT 1,
        created_at  DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at  DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
        PRIMARY KEY (id),
        UNIQUE KEY uq_discounts_code (code)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

    `CREATE TABLE IF NOT EXISTS payments (
        id              BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
        reservation_id  BIGINT UNSIGNED NOT NULL,
        amount          DECIMAL(18,4)   NOT NULL,
        method          VARCHAR(32)     NOT NULL,
        transaction_ref VARCHAR(128)    NOT NULL DEFAULT '',
        status          VARCHAR(16)     NOT NULL,
        created_at      DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
        PRIMARY KEY (id),
        UNIQUE KEY uq_payments_reservation (reservation_id),
        CONSTRAINT fk_payments_reservation FOREIGN KEY (reservation_id) REFERENCES reservations (id)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates missing tables.  Statements are idempotent so it is
// safe to run on every start.
func Migrate(ctx context.Context, db *sql.DB) error {
    for i, stmt := range schema {
        if _, err := db.ExecContext(ctx, stmt); err != nil {
            return errors.Wrapf(err, "migrate statement %d", i+1)
        }
    }
    return nil
}
