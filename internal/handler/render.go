package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wanderlust/listings/internal/middleware"
	"github.com/wanderlust/listings/internal/view"
)

// storeTimeout bounds every store call made while serving a request.
const storeTimeout = 5 * time.Second

func storeCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), storeTimeout)
}

// render executes a page with the request's flash notices and identity.
func render(c echo.Context, status int, name, title string, data any) error {
	sess := middleware.CurrentSession(c)
	return c.Render(status, name, view.Page{
		Title:    title,
		Flash:    middleware.PageFlash(c),
		Username: sess.Username,
		Data:     data,
	})
}

func redirect(c echo.Context, to string) error {
	return c.Redirect(http.StatusFound, to)
}
