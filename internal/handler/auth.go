package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wanderlust/listings/internal/middleware"
	"github.com/wanderlust/listings/internal/repository"
	"github.com/wanderlust/listings/internal/utils"
)

const (
	MsgWelcome          = "Welcome to Wanderlust!"
	MsgWelcomeBack      = "Welcome back to Wanderlust!"
	MsgBadCredentials   = "Invalid username or password"
	MsgLoggedOut        = "You are logged out!"
	MsgSignupIncomplete = "Username, email and password are required"
	MsgUsernameTaken    = "A user with the given username is already registered"
	MsgEmailTaken       = "A user with the given email is already registered"
)

// AuthHandler bundles dependencies for signup, login and logout.
type AuthHandler struct {
	Users      UserStore
	BcryptCost int
}

func NewAuthHandler(u UserStore, bcryptCost int) *AuthHandler {
	return &AuthHandler{Users: u, BcryptCost: bcryptCost}
}

func (h *AuthHandler) SignupForm(c echo.Context) error {
	return render(c, http.StatusOK, "users/signup.html", "Sign up", nil)
}

// Signup creates the account and logs it in.
func (h *AuthHandler) Signup(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	sess := middleware.CurrentSession(c)
	if username == "" || email == "" || password == "" {
		sess.AddError(MsgSignupIncomplete)
		return redirect(c, "/signup")
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	uid, err := h.Users.Create(ctx, username, email, password, h.BcryptCost)
	switch {
	case errors.Is(err, repository.ErrUsernameExists):
		sess.AddError(MsgUsernameTaken)
		return redirect(c, "/signup")
	case errors.Is(err, repository.ErrEmailExists):
		sess.AddError(MsgEmailTaken)
		return redirect(c, "/signup")
	case err != nil:
		return err
	}

	sess.Renew()
	sess.Login(uid, username)
	sess.AddSuccess(MsgWelcome)
	return redirect(c, "/listings")
}

func (h *AuthHandler) LoginForm(c echo.Context) error {
	return render(c, http.StatusOK, "users/login.html", "Login", nil)
}

// Login checks the credentials and sends the user back to the page the
// login gate interrupted, or to the listings.
func (h *AuthHandler) Login(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	sess := middleware.CurrentSession(c)

	ctx, cancel := storeCtx(c)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}
	if u == nil || !utils.VerifyPassword(u.PasswordHash, password) {
		sess.AddError(MsgBadCredentials)
		return redirect(c, middleware.LoginPath)
	}

	sess.Renew()
	sess.Login(u.ID, u.Username)
	sess.AddSuccess(MsgWelcomeBack)
	return redirect(c, sess.TakeReturnTo("/listings"))
}

// Logout detaches the identity from the session.
func (h *AuthHandler) Logout(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	sess.Logout()
	sess.Renew()
	sess.AddSuccess(MsgLoggedOut)
	return redirect(c, "/listings")
}
