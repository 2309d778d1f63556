package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wanderlust/listings/internal/middleware"
	"github.com/wanderlust/listings/internal/model"
	"github.com/wanderlust/listings/internal/queue"
)

const MsgBookingConfirmed = "Booking Confirmed!"

// BookingHandler serves the booking form, booking submission and the
// caller's booking list.
type BookingHandler struct {
	Listings ListingStore
	Bookings BookingStore
	Events   BookingEvents // optional
}

func NewBookingHandler(l ListingStore, b BookingStore, ev BookingEvents) *BookingHandler {
	return &BookingHandler{Listings: l, Bookings: b, Events: ev}
}

// Form renders the booking page for a listing.
func (h *BookingHandler) Form(c echo.Context) error {
	ctx, cancel := storeCtx(c)
	defer cancel()

	l, err := h.Listings.GetByID(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	if l == nil {
		return listingMissing(c)
	}
	return render(c, http.StatusOK, "listings/book.html", "Book "+l.Title, l)
}

// Create stores a confirmed booking for the caller. Repeated submissions
// create repeated bookings; availability is not checked.
func (h *BookingHandler) Create(c echo.Context) error {
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
	b := model.Booking{
		Listing:   l.ID,
		User:      sess.UserID,
		Status:    model.BookingConfirmed,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Bookings.Create(ctx, &b); err != nil {
		return err
	}
	h.publish(c, l, &b)

	sess.AddSuccess(MsgBookingConfirmed)
	return redirect(c, "/listings/"+l.ID.Hex())
}

// publish sends the booking event. The booking is already stored, so a
// broker failure is logged and otherwise ignored.
func (h *BookingHandler) publish(c echo.Context, l *model.Listing, b *model.Booking) {
	if h.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), storeTimeout)
	defer cancel()

	err := h.Events.PublishBookingConfirmed(ctx, queue.BookingConfirmedEvent{
		BookingID:    b.ID.Hex(),
		ListingID:    l.ID.Hex(),
		ListingTitle: l.Title,
		Location:     l.Location,
		Price:        l.Price,
		UserID:       b.User,
		Status:       b.Status,
		ConfirmedAt:  b.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		c.Logger().Warnf("booking %s: publish event: %v", b.ID.Hex(), err)
	}
}

// Mine lists the caller's bookings with their listings. It is mounted on
// both /listings/my-bookings and /bookings/bookings.
func (h *BookingHandler) Mine(c echo.Context) error {
	ctx, cancel := storeCtx(c)
	defer cancel()

	bookings, err := h.Bookings.ListByUser(ctx, middleware.CurrentSession(c).UserID)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "bookings/index.html", "My Bookings", bookings)
}
