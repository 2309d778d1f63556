package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Listing is a bookable property stored in the `listings` collection.
//
// Fields:
//  ID          – document id.
//  Title       – short headline shown in the index.
//  Description – free text body.
//  Image       – optional image url.
//  Price       – nightly price, never negative.
//  Location    – city or area.
//  Country     – country name.
//  Reviews     – ids of reviews written for this listing, oldest first.
//  Owner       – creating user (users.id); nil for listings created without one.
//
// Bookings are not referenced from here; they are looked up by listing id.
type Listing struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Title       string               `bson:"title"`
	Description string               `bson:"description"`
	Image       string               `bson:"image"`
	Price       float64              `bson:"price"`
	Location    string               `bson:"location"`
	Country     string               `bson:"country"`
	Reviews     []primitive.ObjectID `bson:"reviews"`
	Owner       *uint64              `bson:"owner,omitempty"`
}

// ListingFields is the mutable part of a listing, i.e. what a create or
// update form may set.
type ListingFields struct {
	Title       string  `bson:"title"`
	Description string  `bson:"description"`
	Image       string  `bson:"image"`
	Price       float64 `bson:"price"`
	Location    string  `bson:"location"`
	Country     string  `bson:"country"`
}

// Apply copies the form fields onto the listing.
func (l *Listing) Apply(f ListingFields) {
	l.Title = f.Title
	l.Description = f.Description
	l.Image = f.Image
	l.Price = f.Price
	l.Location = f.Location
	l.Country = f.Country
}

// ListingDetail is a listing with its reviews and owner populated.
type ListingDetail struct {
	Listing Listing
	Owner   *User
	Reviews []ReviewDetail
}
