// Package queue defines the booking lifecycle events exchanged over the
// message broker and the background consumer that journals them.
package queue

// BookingEventsQueue is the durable queue every lifecycle event is
// routed to.
const BookingEventsQueue = "booking.events"

// Event types carried in BookingEvent.Type.
const (
    EventBookingCreated       = "booking.created"
    EventBookingPaid          = "booking.paid"
    EventBookingStatusChanged = "booking.status_changed"
)

// BookingEvent is published after a reservation is created, paid or moved
// to another status.  It carries enough information for downstream
// consumers (notifications, analytics, the audit journal) to act without
// querying the primary database.
//
// Fields:
//   EventID         – random identifier, lets consumers de-duplicate redeliveries.
//   Type            – one of the Event* constants.
//   ReservationID   – reservation the event is about.
//   Code            – human friendly reservation code.
//   UserID          – owner of the reservation.
//   RoomID          – booked room.
//   CheckIn/Out     – stay boundaries as YYYY-MM-DD.
//   Status          – status after the change.
//   PreviousStatus  – status before the change, empty for booking.created.
//   TotalPrice      – decimal string in the booking currency.
//   ActorID         – user who triggered the change.
//   OccurredAt      – RFC3339 UTC timestamp.
type BookingEvent struct {
    EventID        string `json:"event_id"`
    Type           string `json:"type"`
    ReservationID  uint64 `json:"reservation_id"`
    Code           string `json:"code"`
    UserID         uint64 `json:"user_id"`
    RoomID         uint64 `json:"room_id"`
    CheckIn        string `json:"check_in"`
    CheckOut       string `json:"check_out"`
    Status         string `json:"status"`
    PreviousStatus string `json:"previous_status,omitempty"`
    TotalPrice     string `json:"total_price"`
    ActorID        uint64 `json:"actor_id"`
    OccurredAt     string `json:"occurred_at"`
}
