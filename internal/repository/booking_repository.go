package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wanderlust/listings/internal/database"
	"github.com/wanderlust/listings/internal/model"
)

// BookingRepo stores bookings in the `bookings` collection. Bookings are
// insert-only: there is no update or delete.
type BookingRepo struct {
	coll *mongo.Collection
}

func NewBookingRepo(db *mongo.Database) *BookingRepo {
	return &BookingRepo{coll: db.Collection(database.BookingsCollection)}
}

// Create inserts a booking as a single independent write. Nothing prevents
// two bookings for the same listing and user.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	res, err := r.coll.InsertOne(ctx, b)
	if err != nil {
		return fmt.Errorf("BookingRepo.Create: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid
	}
	return nil
}

type bookingWithListing struct {
	model.Booking `bson:",inline"`
	ListingDocs   []model.Listing `bson:"listingDocs"`
}

// ListByUser returns every booking made by userID with its listing joined
// in. Bookings whose listing has been deleted come back with a nil Listing.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.BookingDetail, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user": userID}}},
		{{Key: "$sort", Value: bson.M{"createdAt": 1}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         database.ListingsCollection,
			"localField":   "listing",
			"foreignField": "_id",
			"as":           "listingDocs",
		}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("BookingRepo.ListByUser: %w", err)
	}
	var rows []bookingWithListing
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("BookingRepo.ListByUser: %w", err)
	}
	out := make([]model.BookingDetail, 0, len(rows))
	for _, row := range rows {
		d := model.BookingDetail{Booking: row.Booking}
		if len(row.ListingDocs) > 0 {
			l := row.ListingDocs[0]
			d.Listing = &l
		}
		out = append(out, d)
	}
	return out, nil
}
