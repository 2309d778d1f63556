package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingConfirmed is the only state a booking ever reaches. Bookings are
// created confirmed and never transition.
const BookingConfirmed = "confirmed"

// Booking records that a user reserved a listing.
//
// Fields:
//  ID        – document id.
//  Listing   – reserved listing; may dangle once the listing is deleted.
//  User      – users.id of the guest.
//  Status    – always BookingConfirmed.
//  CreatedAt – when the booking was submitted.
type Booking struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Listing   primitive.ObjectID `bson:"listing"`
	User      uint64             `bson:"user"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// BookingDetail is a booking with its listing populated. Listing is nil
// when the listing was deleted after the booking was made.
type BookingDetail struct {
	Booking Booking
	Listing *Listing
}
