package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wanderlust/listings/internal/middleware"
	"github.com/wanderlust/listings/internal/model"
	"github.com/wanderlust/listings/internal/validation"
)

// Flash notices shown by the listing pages.
const (
	MsgListingMissing = "Listing you requested does not exist!"
	MsgListingCreated = "New Listing Created!"
	MsgListingUpdated = "Listing Updated"
	MsgListingDeleted = "Listing Deleted"
	MsgListingGone    = "Listing not found"
)

// ListingHandler serves listing CRUD.
type ListingHandler struct {
	Listings ListingStore
	Users    UserStore
}

func NewListingHandler(l ListingStore, u UserStore) *ListingHandler {
	return &ListingHandler{Listings: l, Users: u}
}

// Index renders every listing.
func (h *ListingHandler) Index(c echo.Context) error {
	ctx, cancel := storeCtx(c)
	defer cancel()

	all, err := h.Listings.List(ctx)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "listings/index.html", "All Listings", all)
}

// New renders the create form.
func (h *ListingHandler) New(c echo.Context) error {
	return render(c, http.StatusOK, "listings/new.html", "New Listing", nil)
}

// Show renders one listing with its reviews and owner populated.
func (h *ListingHandler) Show(c echo.Context) error {
	ctx, cancel := storeCtx(c)
	defer cancel()

	l, reviews, err := h.Listings.GetDetail(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	if l == nil {
		return listingMissing(c)
	}

	ids := make([]uint64, 0, len(reviews)+1)
	if l.Owner != nil {
		ids = append(ids, *l.Owner)
	}
	for _, r := range reviews {
		ids = append(ids, r.Author)
	}
	users, err := h.Users.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}

	detail := model.ListingDetail{Listing: *l, Reviews: make([]model.ReviewDetail, 0, len(reviews))}
	if l.Owner != nil {
		if u, ok := users[*l.Owner]; ok {
			detail.Owner = &u
		}
	}
	for _, r := range reviews {
		detail.Reviews = append(detail.Reviews, model.ReviewDetail{Review: r, AuthorName: users[r.Author].Username})
	}
	return render(c, http.StatusOK, "listings/show.html", l.Title, detail)
}

// Create validates the form and stores a new listing. The listing is not
// bound to the creating user.
func (h *ListingHandler) Create(c echo.Context) error {
	res := validation.Listing(listingInput(c))
	if !res.OK() {
		return echo.NewHTTPError(http.StatusBadRequest, res.Message())
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	var l model.Listing
	l.Apply(res.Value)
	if err := h.Listings.Create(ctx, &l); err != nil {
		return err
	}
	middleware.CurrentSession(c).AddSuccess(MsgListingCreated)
	return redirect(c, "/listings")
}

// Edit renders the edit form for an existing listing.
func (h *ListingHandler) Edit(c echo.Context) error {
	ctx, cancel := storeCtx(c)
	defer cancel()

	l, err := h.Listings.GetByID(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	if l == nil {
		return listingMissing(c)
	}
	return render(c, http.StatusOK, "listings/edit.html", "Edit "+l.Title, l)
}

// Update overwrites the listing's fields. An id that matches nothing is
// still reported as updated.
func (h *ListingHandler) Update(c echo.Context) error {
	res := validation.Listing(listingInput(c))
	if !res.OK() {
		return echo.NewHTTPError(http.StatusBadRequest, res.Message())
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	id := c.Param("id")
	if err := h.Listings.Update(ctx, id, res.Value); err != nil {
		return err
	}
	middleware.CurrentSession(c).AddSuccess(MsgListingUpdated)
	return redirect(c, "/listings/"+id)
}

// Delete removes the listing. Its reviews and bookings stay behind.
func (h *ListingHandler) Delete(c echo.Context) error {
	ctx, cancel := storeCtx(c)
	defer cancel()

	deleted, err := h.Listings.Delete(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	sess := middleware.CurrentSession(c)
	if deleted {
		sess.AddSuccess(MsgListingDeleted)
	} else {
		sess.AddError(MsgListingGone)
	}
	return redirect(c, "/listings")
}

func listingInput(c echo.Context) validation.ListingInput {
	return validation.ListingInput{
		Title:       c.FormValue("listing[title]"),
		Description: c.FormValue("listing[description]"),
		Image:       c.FormValue("listing[image]"),
		Price:       c.FormValue("listing[price]"),
		Location:    c.FormValue("listing[location]"),
		Country:     c.FormValue("listing[country]"),
	}
}

// listingMissing is the soft not-found response shared by every page that
// looks a listing up by id.
func listingMissing(c echo.Context) error {
	middleware.CurrentSession(c).AddError(MsgListingMissing)
	return redirect(c, "/listings")
}
