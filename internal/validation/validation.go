// Package validation checks form payloads against fixed schemas before any
// write happens. A check never fails fast: every field problem is collected
// so the user sees all of them at once.
package validation

import "strings"

// Result is the outcome of validating a payload: either a typed value ready
// to be stored, or the list of reasons it was rejected.
type Result[T any] struct {
	Value  T
	Errors []string
}

// OK reports whether validation passed.
func (r Result[T]) OK() bool { return len(r.Errors) == 0 }

// Message joins every reason into the single message shown on the error page.
func (r Result[T]) Message() string {
	if r.OK() {
		return ""
	}
	return strings.Join(r.Errors, ", ")
}

type collector struct{ errs []string }

func (c *collector) add(field, msg string) {
	c.errs = append(c.errs, `"`+field+`" `+msg)
}

func (c *collector) required(field, v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		c.add(field, "is required")
	}
	return v
}
