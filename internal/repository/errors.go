// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// booking service and handlers to distinguish between different failure
// scenarios. For example, ErrOverlap signals that the storage layer
// rejected a reservation because another occupying reservation already
// holds one of its nights, while ErrLockTimeout indicates that a room
// row could not be locked within the caller's deadline.
package repository

import "errors"

// ErrNotFound is returned when a lookup by id or code matches no row.
var ErrNotFound = errors.New("not found")

// ErrOverlap is returned when the reservation_nights primary key rejects
// an insert.  It is the storage-level guarantee that no two occupying
// reservations of a room share a night.
var ErrOverlap = errors.New("overlapping reservation")

// ErrLockTimeout is returned when a row lock could not be acquired in
// time (MySQL error 1205 or an expired context deadline).  Callers may
// retry.
var ErrLockTimeout = errors.New("lock wait timeout")

// ErrConflict is returned when a unique key other than the nights key
// rejects an insert: a reservation code that is already taken, or a
// second payment row for the same reservation.
var ErrConflict = errors.New("conflict")
