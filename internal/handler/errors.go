package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	MsgNotFound      = "Page Not found!!"
	MsgInternalError = "something went wrong"
)

// ErrorPage is the data rendered by error.html.
type ErrorPage struct {
	Status  int
	Message string
}

// ErrorHandler is the echo HTTPErrorHandler. Every failure, including
// unmatched routes, ends up as the error page carrying the failure's status.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	page := classify(err)
	if page.Status >= http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(page.Status)
	} else {
		err = render(c, page.Status, "error.html", "Error", page)
		if err != nil {
			err = c.String(page.Status, page.Message)
		}
	}
	if err != nil {
		c.Logger().Error(err)
	}
}

func classify(err error) ErrorPage {
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		return ErrorPage{Status: http.StatusInternalServerError, Message: MsgInternalError}
	}
	switch he.Code {
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return ErrorPage{Status: http.StatusNotFound, Message: MsgNotFound}
	}
	if he.Code >= http.StatusInternalServerError {
		return ErrorPage{Status: he.Code, Message: MsgInternalError}
	}
	msg := fmt.Sprint(he.Message)
	if msg == "" || he.Message == nil {
		msg = http.StatusText(he.Code)
	}
	return ErrorPage{Status: he.Code, Message: msg}
}
