// Package router assembles the echo instance: global middleware, the
// renderer, the error page and every route.
package router

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/wanderlust/listings/internal/config"
	"github.com/wanderlust/listings/internal/handler"
	"github.com/wanderlust/listings/internal/middleware"
	"github.com/wanderlust/listings/internal/session"
	"github.com/wanderlust/listings/internal/view"
)

// Deps is everything the routes need from the outside world.
type Deps struct {
	Listings handler.ListingStore
	Reviews  handler.ReviewStore
	Bookings handler.BookingStore
	Users    handler.UserStore
	Events   handler.BookingEvents // nil disables booking events

	Sessions      session.Store
	SessionSecret string
	SessionTTL    time.Duration
	SecureCookie  bool

	Policy     middleware.Policy
	RateLimit  config.RateLimitConfig
	Redis      *redis.Client // nil disables rate limiting
	BcryptCost int
	AccessLog  bool
}

// New builds the echo instance. Request flow: method override, access log,
// panic recovery, session load, login gate, route middleware, handler.
func New(d Deps) (*echo.Echo, error) {
	r, err := view.New()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = r
	e.HTTPErrorHandler = handler.ErrorHandler

	e.Pre(echomw.MethodOverrideWithConfig(echomw.MethodOverrideConfig{
		Getter: echomw.MethodFromForm("_method"),
	}))
	if d.AccessLog {
		e.Use(echomw.Logger())
	}
	e.Use(echomw.Recover())
	e.Use(middleware.LoadSession(middleware.SessionConfig{
		Store:  d.Sessions,
		Secret: d.SessionSecret,
		TTL:    d.SessionTTL,
		Secure: d.SecureCookie,
	}))
	e.Use(middleware.RequireLogin(d.Policy))

	limit := middleware.NewTokenBucket(d.RateLimit, d.Redis).Middleware()

	RegisterRoutes(e)
	RegisterAuth(e, handler.NewAuthHandler(d.Users, d.BcryptCost), limit)
	RegisterListings(e,
		handler.NewListingHandler(d.Listings, d.Users),
		handler.NewBookingHandler(d.Listings, d.Bookings, d.Events),
		handler.NewReviewHandler(d.Listings, d.Reviews),
	)
	return e, nil
}

// RegisterRoutes registers the root greeting and the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers signup, login and logout. Credential submissions
// go through the rate limiter.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limit echo.MiddlewareFunc) {
	e.GET("/signup", a.SignupForm)
	e.POST("/signup", a.Signup, limit)
	e.GET("/login", a.LoginForm)
	e.POST("/login", a.Login, limit)
	e.GET("/logout", a.Logout)
}

// RegisterListings registers listing CRUD, bookings and reviews. Which of
// these need a login is decided by the authorization policy, not here.
// Booking submissions are not throttled: every submission is recorded.
func RegisterListings(e *echo.Echo, l *handler.ListingHandler, b *handler.BookingHandler, r *handler.ReviewHandler) {
	e.GET("/listings", l.Index)
	e.GET("/listings/new", l.New)
	e.POST("/listings", l.Create)
	e.GET("/listings/my-bookings", b.Mine)
	e.GET("/listings/:id", l.Show)
	e.GET("/listings/:id/edit", l.Edit)
	e.PUT("/listings/:id", l.Update)
	e.DELETE("/listings/:id", l.Delete)

	e.GET("/listings/:id/book", b.Form)
	e.POST("/listings/:id/book", b.Create)
	e.GET("/bookings/bookings", b.Mine)

	e.POST("/listings/:id/reviews", r.Create)
	e.DELETE("/listings/:id/reviews/:reviewId", r.Delete)
}
