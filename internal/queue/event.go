// Package queue defines message payloads exchanged over the message broker
// and the publisher that sends them.
package queue

// BookingConfirmedQueue is the durable queue booking events are routed to.
const BookingConfirmedQueue = "booking.confirmed"

// BookingConfirmedEvent is published after a booking has been stored. It
// carries enough for downstream consumers to notify or log without querying
// the document store.
type BookingConfirmedEvent struct {
	BookingID    string  `json:"booking_id"`
	ListingID    string  `json:"listing_id"`
	ListingTitle string  `json:"listing_title"`
	Location     string  `json:"location"`
	Price        float64 `json:"price"`
	UserID       uint64  `json:"user_id"`
	Status       string  `json:"status"`
	ConfirmedAt  string  `json:"confirmed_at"`
}
