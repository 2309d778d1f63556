package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wanderlust/listings/internal/authz"
)

// LoginPath is where anonymous users are sent when a route needs a login.
const LoginPath = "/login"

// MsgLoginRequired is flashed when the gate turns a request away.
const MsgLoginRequired = "You must be logged in first!"

// Policy decides whether a routed request may proceed.
type Policy interface {
	Allow(ctx context.Context, req authz.Request) (bool, error)
}

// RequireLogin consults the policy for every routed request. When the route
// needs a user and the session has none, the requested URI is remembered
// for after login, a notice is flashed and the request is redirected to the
// login page without reaching the handler.
func RequireLogin(p Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := CurrentSession(c)
			ok, err := p.Allow(c.Request().Context(), authz.Request{
				Method:        c.Request().Method,
				Route:         c.Path(),
				Authenticated: sess.Authenticated(),
			})
			if err != nil {
				return err
			}
			if ok {
				return next(c)
			}
			sess.ReturnTo = c.Request().URL.RequestURI()
			sess.AddError(MsgLoginRequired)
			return c.Redirect(http.StatusFound, LoginPath)
		}
	}
}
