package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/wanderlust/listings/internal/authz"
	"github.com/wanderlust/listings/internal/middleware"
	"github.com/wanderlust/listings/internal/model"
	"github.com/wanderlust/listings/internal/router"
	"github.com/wanderlust/listings/internal/session"
	"github.com/wanderlust/listings/internal/utils"
)

const testSecret = "handler-test-secret"

type testEnv struct {
	e        *echo.Echo
	sessions *session.MemoryStore
	listings *fakeListings
	reviews  *fakeReviews
	bookings *fakeBookings
	users    *fakeUsers
	events   *fakeEvents
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	policy, err := authz.New(context.Background())
	if err != nil {
		t.Fatalf("authz.New() error = %v", err)
	}
	reviews := newFakeReviews()
	listings := newFakeListings(reviews)
	env := &testEnv{
		sessions: session.NewMemoryStore(),
		listings: listings,
		reviews:  reviews,
		bookings: &fakeBookings{listings: listings},
		users:    newFakeUsers(),
		events:   &fakeEvents{},
	}
	env.e, err = router.New(router.Deps{
		Listings:      env.listings,
		Reviews:       env.reviews,
		Bookings:      env.bookings,
		Users:         env.users,
		Events:        env.events,
		Sessions:      env.sessions,
		SessionSecret: testSecret,
		SessionTTL:    time.Hour,
		Policy:        policy,
		BcryptCost:    bcrypt.MinCost,
	})
	if err != nil {
		t.Fatalf("router.New() error = %v", err)
	}
	return env
}

// anon returns a stored session without a user.
func (env *testEnv) anon(t *testing.T) *session.Session {
	t.Helper()
	s := session.New()
	if err := env.sessions.Save(context.Background(), s, time.Hour); err != nil {
		t.Fatal(err)
	}
	return s
}

// login registers a user and returns a stored session logged in as them.
func (env *testEnv) login(t *testing.T, username string) *session.Session {
	t.Helper()
	id, err := env.users.Create(context.Background(), username, username+"@example.com", "secret", bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	s := session.New()
	s.Login(id, username)
	if err := env.sessions.Save(context.Background(), s, time.Hour); err != nil {
		t.Fatal(err)
	}
	return s
}

// do sends the request on behalf of sess. A non-nil form is sent as a
// urlencoded POST body.
func (env *testEnv) do(t *testing.T, method, target string, form url.Values, sess *session.Session) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, env.request(t, method, target, form, sess))
	return rec
}

func (env *testEnv) request(t *testing.T, method, target string, form url.Values, sess *session.Session) *http.Request {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if sess != nil {
		tok, err := utils.NewSessionToken(testSecret, sess.ID, time.Hour)
		if err != nil {
			t.Fatal(err)
		}
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: tok.Token})
	}
	return req
}

// reload returns the stored state of sess after a request.
func (env *testEnv) reload(t *testing.T, sess *session.Session) *session.Session {
	t.Helper()
	s, err := env.sessions.Load(context.Background(), sess.ID)
	if err != nil || s == nil {
		t.Fatalf("session %s not stored: %v", sess.ID, err)
	}
	return s
}

// issued returns the session named by the cookie set on rec.
func (env *testEnv) issued(t *testing.T, rec *httptest.ResponseRecorder) *session.Session {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name != middleware.SessionCookie {
			continue
		}
		sid, err := utils.ParseSessionToken(testSecret, ck.Value)
		if err != nil {
			t.Fatalf("ParseSessionToken() error = %v", err)
		}
		return env.reload(t, &session.Session{ID: sid})
	}
	t.Fatal("response set no session cookie")
	return nil
}

// assertGone fails when sess is still stored.
func (env *testEnv) assertGone(t *testing.T, sess *session.Session) {
	t.Helper()
	if s, _ := env.sessions.Load(context.Background(), sess.ID); s != nil {
		t.Errorf("session %s still stored", sess.ID)
	}
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, to string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302; body=%s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != to {
		t.Fatalf("Location = %q, want %q", got, to)
	}
}

func assertFlash(t *testing.T, got []string, want string) {
	t.Helper()
	for _, m := range got {
		if m == want {
			return
		}
	}
	t.Errorf("flash %v does not contain %q", got, want)
}

func listingForm(title, price string) url.Values {
	return url.Values{
		"listing[title]":       {title},
		"listing[description]": {"A quiet place"},
		"listing[image]":       {""},
		"listing[price]":       {price},
		"listing[location]":    {"Goa"},
		"listing[country]":     {"India"},
	}
}

func sampleListing() model.Listing {
	return model.Listing{
		Title: "Beach Hut", Description: "Sea view", Price: 80,
		Location: "Goa", Country: "India",
	}
}
