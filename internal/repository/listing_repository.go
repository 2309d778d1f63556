package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wanderlust/listings/internal/database"
	"github.com/wanderlust/listings/internal/model"
)

// ListingRepo stores listings in the `listings` collection. Lookups by id
// return (nil, nil) when nothing matches so that handlers can tell a soft
// miss apart from a database fault.
type ListingRepo struct {
	coll *mongo.Collection
}

func NewListingRepo(db *mongo.Database) *ListingRepo {
	return &ListingRepo{coll: db.Collection(database.ListingsCollection)}
}

// List returns every listing in insertion order.
func (r *ListingRepo) List(ctx context.Context) ([]model.Listing, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("ListingRepo.List: %w", err)
	}
	out := []model.Listing{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("ListingRepo.List: %w", err)
	}
	return out, nil
}

// GetByID fetches a single listing.
func (r *ListingRepo) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	var l model.Listing
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ListingRepo.GetByID: %w", err)
	}
	return &l, nil
}

// listingWithReviews is the shape produced by the $lookup in GetDetail.
type listingWithReviews struct {
	model.Listing `bson:",inline"`
	ReviewDocs    []model.Review `bson:"reviewDocs"`
}

// GetDetail fetches a listing together with its review documents, oldest
// review first. Authors and owner live in the accounts database and are
// resolved by the caller.
func (r *ListingRepo) GetDetail(ctx context.Context, id string) (*model.Listing, []model.Review, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil, nil
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": oid}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         database.ReviewsCollection,
			"localField":   "reviews",
			"foreignField": "_id",
			"as":           "reviewDocs",
		}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, nil, fmt.Errorf("ListingRepo.GetDetail: %w", err)
	}
	var rows []listingWithReviews
	if err := cur.All(ctx, &rows); err != nil {
		return nil, nil, fmt.Errorf("ListingRepo.GetDetail: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	reviews := rows[0].ReviewDocs
	sort.SliceStable(reviews, func(i, j int) bool { return reviews[i].CreatedAt.Before(reviews[j].CreatedAt) })
	l := rows[0].Listing
	return &l, reviews, nil
}

// Create inserts the listing and populates its ID.
func (r *ListingRepo) Create(ctx context.Context, l *model.Listing) error {
	if l.Reviews == nil {
		// $push on a null field fails, so start with an empty array.
		l.Reviews = []primitive.ObjectID{}
	}
	res, err := r.coll.InsertOne(ctx, l)
	if err != nil {
		return fmt.Errorf("ListingRepo.Create: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		l.ID = oid
	}
	return nil
}

// Update overwrites the editable fields of a listing. A missing or
// malformed id updates nothing and is not an error.
func (r *ListingRepo) Update(ctx context.Context, id string, f model.ListingFields) error {
	oid, ok := parseID(id)
	if !ok {
		return nil
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": f}); err != nil {
		return fmt.Errorf("ListingRepo.Update: %w", err)
	}
	return nil
}

// Delete removes a listing and reports whether anything was deleted.
// Reviews and bookings that reference it are left in place.
func (r *ListingRepo) Delete(ctx context.Context, id string) (bool, error) {
	oid, ok := parseID(id)
	if !ok {
		return false, nil
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("ListingRepo.Delete: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// AddReview appends a review id to the listing's review list.
func (r *ListingRepo) AddReview(ctx context.Context, listingID, reviewID primitive.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": listingID}, bson.M{"$push": bson.M{"reviews": reviewID}})
	if err != nil {
		return fmt.Errorf("ListingRepo.AddReview: %w", err)
	}
	return nil
}

// RemoveReview pulls a review id from the listing's review list.
func (r *ListingRepo) RemoveReview(ctx context.Context, listingID, reviewID primitive.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": listingID}, bson.M{"$pull": bson.M{"reviews": reviewID}})
	if err != nil {
		return fmt.Errorf("ListingRepo.RemoveReview: %w", err)
	}
	return nil
}
