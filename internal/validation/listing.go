package validation

import (
	"math"
	"strconv"
	"strings"

	"github.com/wanderlust/listings/internal/model"
)

// ListingInput is the raw `listing[...]` form as submitted.
type ListingInput struct {
	Title       string
	Description string
	Image       string
	Price       string
	Location    string
	Country     string
}

// Listing validates a create or update payload. Title, description,
// location, country and a non-negative numeric price are required; the
// image url is optional.
func Listing(in ListingInput) Result[model.ListingFields] {
	var c collector
	out := model.ListingFields{
		Title:       c.required("listing.title", in.Title),
		Description: c.required("listing.description", in.Description),
		Image:       strings.TrimSpace(in.Image),
		Location:    c.required("listing.location", in.Location),
		Country:     c.required("listing.country", in.Country),
	}

	if raw := strings.TrimSpace(in.Price); raw == "" {
		c.add("listing.price", "is required")
	} else if p, err := strconv.ParseFloat(raw, 64); err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
		c.add("listing.price", "must be a number")
	} else if p < 0 {
		c.add("listing.price", "must be greater than or equal to 0")
	} else {
		out.Price = p
	}

	return Result[model.ListingFields]{Value: out, Errors: c.errs}
}
