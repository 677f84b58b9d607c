// Package queue defines message payloads exchanged over the message broker
// and the publisher/consumer that move them.
package queue

// ReservationReleasedEvent is published after a sweep pass that reclaimed
// abandoned reservations.  The notification collaborator consumes it to
// tell customers their checkout lapsed; the payload is self-contained so
// consumers never query the primary database.
type ReservationReleasedEvent struct {
	RemovedHolds           int64    `json:"removed_holds"`
	RemovedPendingBookings int      `json:"removed_pending_bookings"`
	FreedBookingIDs        []uint64 `json:"freed_booking_ids"`
	SweptAt                string   `json:"swept_at"`
}
