package middleware

// identity.go exposes the request-scoped session to handlers. LoadSession
// stores it in the echo context; everything downstream reads it through
// CurrentSession instead of touching cookies or the store.

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wanderlust/listings/internal/session"
)

const (
	sessionKey = "session"
	flashKey   = "flash"
)

// CurrentSession returns the session attached to c. Requests that did not
// pass through LoadSession get a throwaway anonymous session.
func CurrentSession(c echo.Context) *session.Session {
	if s, ok := c.Get(sessionKey).(*session.Session); ok && s != nil {
		return s
	}
	s := session.New()
	c.Set(sessionKey, s)
	return s
}

// PageFlash returns the notices taken from the session when the request
// started; they are the ones the rendered page should show.
func PageFlash(c echo.Context) session.Flash {
	f, _ := c.Get(flashKey).(session.Flash)
	return f
}

// rateSubject names who a request counts against: the logged-in user, or
// nobody in particular for anonymous callers, whose bucket is then shared
// per address. A session id is never used because anyone can get a fresh
// one by dropping the cookie.
func rateSubject(c echo.Context) string {
	s, ok := c.Get(sessionKey).(*session.Session)
	if ok && s != nil && s.Authenticated() {
		return "user:" + strconv.FormatUint(s.UserID, 10)
	}
	return "anon"
}
