package handler_test

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderlust/listings/internal/model"
	"github.com/wanderlust/listings/internal/queue"
	"github.com/wanderlust/listings/internal/repository"
	"github.com/wanderlust/listings/internal/utils"
)

var errStore = errors.New("store unavailable")

type fakeListings struct {
	mu      sync.Mutex
	items   map[primitive.ObjectID]*model.Listing
	reviews *fakeReviews
	err     error
}

func newFakeListings(r *fakeReviews) *fakeListings {
	return &fakeListings{items: make(map[primitive.ObjectID]*model.Listing), reviews: r}
}

func (f *fakeListings) seed(l model.Listing) *model.Listing {
	f.mu.Lock()
	defer f.mu.Unlock()
	if l.ID.IsZero() {
		l.ID = primitive.NewObjectID()
	}
	f.items[l.ID] = &l
	return &l
}

func (f *fakeListings) get(id primitive.ObjectID) *model.Listing {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.items[id]
	if !ok {
		return nil
	}
	cp := *l
	return &cp
}

func (f *fakeListings) lookup(id string) (*model.Listing, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	l, ok := f.items[oid]
	return l, ok
}

func (f *fakeListings) List(context.Context) ([]model.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Listing, 0, len(f.items))
	for _, l := range f.items {
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeListings) GetByID(_ context.Context, id string) (*model.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	l, ok := f.lookup(id)
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (f *fakeListings) GetDetail(ctx context.Context, id string) (*model.Listing, []model.Review, error) {
	l, err := f.GetByID(ctx, id)
	if err != nil || l == nil {
		return nil, nil, err
	}
	var revs []model.Review
	for _, rid := range l.Reviews {
		if r, ok := f.reviews.get(rid); ok {
			revs = append(revs, r)
		}
	}
	return l, revs, nil
}

func (f *fakeListings) Create(_ context.Context, l *model.Listing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	l.ID = primitive.NewObjectID()
	cp := *l
	f.items[l.ID] = &cp
	return nil
}

func (f *fakeListings) Update(_ context.Context, id string, fields model.ListingFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if l, ok := f.lookup(id); ok {
		l.Apply(fields)
	}
	return nil
}

func (f *fakeListings) Delete(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	l, ok := f.lookup(id)
	if !ok {
		return false, nil
	}
	delete(f.items, l.ID)
	return true, nil
}

func (f *fakeListings) AddReview(_ context.Context, listingID, reviewID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if l, ok := f.items[listingID]; ok {
		l.Reviews = append(l.Reviews, reviewID)
	}
	return nil
}

func (f *fakeListings) RemoveReview(_ context.Context, listingID, reviewID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.items[listingID]
	if !ok {
		return nil
	}
	kept := l.Reviews[:0]
	for _, id := range l.Reviews {
		if id != reviewID {
			kept = append(kept, id)
		}
	}
	l.Reviews = kept
	return nil
}

type fakeReviews struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]model.Review
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{items: make(map[primitive.ObjectID]model.Review)}
}

func (f *fakeReviews) get(id primitive.ObjectID) (model.Review, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.items[id]
	return r, ok
}

func (f *fakeReviews) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

func (f *fakeReviews) Create(_ context.Context, r *model.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = primitive.NewObjectID()
	f.items[r.ID] = *r
	return nil
}

func (f *fakeReviews) Delete(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	_, ok := f.items[oid]
	delete(f.items, oid)
	return ok, nil
}

type fakeBookings struct {
	mu       sync.Mutex
	items    []model.Booking
	listings *fakeListings
}

func (f *fakeBookings) all() []model.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Booking(nil), f.items...)
}

func (f *fakeBookings) Create(_ context.Context, b *model.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b.ID = primitive.NewObjectID()
	f.items = append(f.items, *b)
	return nil
}

func (f *fakeBookings) ListByUser(_ context.Context, userID uint64) ([]model.BookingDetail, error) {
	var out []model.BookingDetail
	for _, b := range f.all() {
		if b.User != userID {
			continue
		}
		out = append(out, model.BookingDetail{Booking: b, Listing: f.listings.get(b.Listing)})
	}
	return out, nil
}

type fakeUsers struct {
	mu     sync.Mutex
	nextID uint64
	items  map[uint64]model.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{items: make(map[uint64]model.User)}
}

func (f *fakeUsers) Create(_ context.Context, username, email, password string, cost int) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.items {
		if u.Username == username {
			return 0, repository.ErrUsernameExists
		}
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	f.nextID++
	f.items[f.nextID] = model.User{ID: f.nextID, Username: username, Email: email, PasswordHash: hash}
	return f.nextID, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.items {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUsers) GetByIDs(_ context.Context, ids []uint64) (map[uint64]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[uint64]model.User)
	for _, id := range ids {
		if u, ok := f.items[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

type fakeEvents struct {
	mu     sync.Mutex
	events []queue.BookingConfirmedEvent
	err    error
}

func (f *fakeEvents) PublishBookingConfirmed(_ context.Context, ev queue.BookingConfirmedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}
