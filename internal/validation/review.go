package validation

import (
	"strconv"
	"strings"
)

// ReviewInput is the raw `review[...]` form.
type ReviewInput struct {
	Comment string
	Rating  string
}

// ReviewFields is a validated review payload.
type ReviewFields struct {
	Comment string
	Rating  int
}

// Review requires a comment and an integer rating from 1 to 5.
func Review(in ReviewInput) Result[ReviewFields] {
	var c collector
	out := ReviewFields{Comment: c.required("review.comment", in.Comment)}

	if raw := strings.TrimSpace(in.Rating); raw == "" {
		c.add("review.rating", "is required")
	} else if n, err := strconv.Atoi(raw); err != nil {
		c.add("review.rating", "must be a number")
	} else if n < 1 || n > 5 {
		c.add("review.rating", "must be between 1 and 5")
	} else {
		out.Rating = n
	}

	return Result[ReviewFields]{Value: out, Errors: c.errs}
}
