package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a rating and comment left on a listing.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Listing   primitive.ObjectID `bson:"listing"`
	Author    uint64             `bson:"author"`
	Comment   string             `bson:"comment"`
	Rating    int                `bson:"rating"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// ReviewDetail pairs a review with the display name of its author. The name
// is empty when the author account no longer exists.
type ReviewDetail struct {
	Review     Review
	AuthorName string
}
