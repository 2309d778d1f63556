package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderlust/listings/internal/middleware"
	"github.com/wanderlust/listings/internal/model"
	"github.com/wanderlust/listings/internal/validation"
)

const (
	MsgReviewCreated = "New Review Created!"
	MsgReviewDeleted = "Review Deleted"
)

// ReviewHandler adds and removes reviews on a listing.
type ReviewHandler struct {
	Listings ListingStore
	Reviews  ReviewStore
}

func NewReviewHandler(l ListingStore, r ReviewStore) *ReviewHandler {
	return &ReviewHandler{Listings: l, Reviews: r}
}

// Create stores a review written by the caller and links it to the listing.
func (h *ReviewHandler) Create(c echo.Context) error {
	res := validation.Review(validation.ReviewInput{
		Comment: c.FormValue("review[comment]"),
		Rating:  c.FormValue("review[rating]"),
	})
	if !res.OK() {
		return echo.NewHTTPError(http.StatusBadRequest, res.Message())
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	l, err := h.Listings.GetByID(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	if l == nil {
		return listingMissing(c)
	}

	sess := middleware.CurrentSession(c)
	r := model.Review{
		Listing:   l.ID,
		Author:    sess.UserID,
		Comment:   res.Value.Comment,
		Rating:    res.Value.Rating,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Reviews.Create(ctx, &r); err != nil {
		return err
	}
	if err := h.Listings.AddReview(ctx, l.ID, r.ID); err != nil {
		return err
	}
	sess.AddSuccess(MsgReviewCreated)
	return redirect(c, "/listings/"+l.ID.Hex())
}

// Delete unlinks the review from the listing and removes it. Malformed ids
// touch nothing.
func (h *ReviewHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	listingID, err1 := primitive.ObjectIDFromHex(id)
	reviewID, err2 := primitive.ObjectIDFromHex(c.Param("reviewId"))
	if err1 == nil && err2 == nil {
		ctx, cancel := storeCtx(c)
		defer cancel()

		if err := h.Listings.RemoveReview(ctx, listingID, reviewID); err != nil {
			return err
		}
		if _, err := h.Reviews.Delete(ctx, reviewID.Hex()); err != nil {
			return err
		}
	}
	middleware.CurrentSession(c).AddSuccess(MsgReviewDeleted)
	return redirect(c, "/listings/"+id)
}
