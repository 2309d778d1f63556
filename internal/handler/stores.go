package handler

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderlust/listings/internal/model"
	"github.com/wanderlust/listings/internal/queue"
)

// ListingStore is the listing collection as the handlers use it. Lookups
// return (nil, nil) for ids that do not resolve to a listing.
type ListingStore interface {
	List(ctx context.Context) ([]model.Listing, error)
	GetByID(ctx context.Context, id string) (*model.Listing, error)
	GetDetail(ctx context.Context, id string) (*model.Listing, []model.Review, error)
	Create(ctx context.Context, l *model.Listing) error
	Update(ctx context.Context, id string, f model.ListingFields) error
	Delete(ctx context.Context, id string) (bool, error)
	AddReview(ctx context.Context, listingID, reviewID primitive.ObjectID) error
	RemoveReview(ctx context.Context, listingID, reviewID primitive.ObjectID) error
}

type ReviewStore interface {
	Create(ctx context.Context, r *model.Review) error
	Delete(ctx context.Context, id string) (bool, error)
}

type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	ListByUser(ctx context.Context, userID uint64) ([]model.BookingDetail, error)
}

// UserStore is the account table. GetByUsername returns
// repository.ErrUserNotFound for unknown names.
type UserStore interface {
	Create(ctx context.Context, username, email, password string, cost int) (uint64, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByIDs(ctx context.Context, ids []uint64) (map[uint64]model.User, error)
}

// BookingEvents receives a notification for every stored booking.
type BookingEvents interface {
	PublishBookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error
}
