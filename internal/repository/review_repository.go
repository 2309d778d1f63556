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

// ReviewRepo stores reviews in the `reviews` collection. Linking a review to
// its listing is done separately through ListingRepo.AddReview.
type ReviewRepo struct {
	coll *mongo.Collection
}

func NewReviewRepo(db *mongo.Database) *ReviewRepo {
	return &ReviewRepo{coll: db.Collection(database.ReviewsCollection)}
}

// Create inserts a review and populates its ID.
func (r *ReviewRepo) Create(ctx context.Context, rev *model.Review) error {
	res, err := r.coll.InsertOne(ctx, rev)
	if err != nil {
		return fmt.Errorf("ReviewRepo.Create: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rev.ID = oid
	}
	return nil
}

// Delete removes a review by id. Malformed ids delete nothing.
func (r *ReviewRepo) Delete(ctx context.Context, id string) (bool, error) {
	oid, ok := parseID(id)
	if !ok {
		return false, nil
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("ReviewRepo.Delete: %w", err)
	}
	return res.DeletedCount > 0, nil
}
