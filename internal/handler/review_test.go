package handler_test

import (
	"net/http"
	"net/url"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderlust/listings/internal/handler"
	"github.com/wanderlust/listings/internal/middleware"
)

func TestCreateReview(t *testing.T) {
	env := newTestEnv(t)
	sess := env.login(t, "ana")
	l := env.listings.seed(sampleListing())

	rec := env.do(t, http.MethodPost, "/listings/"+l.ID.Hex()+"/reviews",
		url.Values{"review[comment]": {"Great"}, "review[rating]": {"4"}}, sess)
	assertRedirect(t, rec, "/listings/"+l.ID.Hex())
	assertFlash(t, env.reload(t, sess).Flash.Success, handler.MsgReviewCreated)

	got := env.listings.get(l.ID)
	if len(got.Reviews) != 1 {
		t.Fatalf("listing has %d reviews, want 1", len(got.Reviews))
	}
	r, ok := env.reviews.get(got.Reviews[0])
	if !ok || r.Author != sess.UserID || r.Rating != 4 || r.Comment != "Great" || r.Listing != l.ID {
		t.Errorf("review = %+v", r)
	}
}

func TestCreateReviewValidation(t *testing.T) {
	env := newTestEnv(t)
	l := env.listings.seed(sampleListing())
	rec := env.do(t, http.MethodPost, "/listings/"+l.ID.Hex()+"/reviews",
		url.Values{"review[comment]": {""}, "review[rating]": {"9"}}, env.login(t, "ana"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.reviews.count() != 0 {
		t.Error("invalid review stored")
	}
}

func TestCreateReviewMissingListing(t *testing.T) {
	env := newTestEnv(t)
	sess := env.login(t, "ana")
	rec := env.do(t, http.MethodPost, "/listings/"+primitive.NewObjectID().Hex()+"/reviews",
		url.Values{"review[comment]": {"x"}, "review[rating]": {"2"}}, sess)
	assertRedirect(t, rec, "/listings")
	assertFlash(t, env.reload(t, sess).Flash.Error, handler.MsgListingMissing)
}

func TestCreateReviewRequiresLogin(t *testing.T) {
	env := newTestEnv(t)
	l := env.listings.seed(sampleListing())
	rec := env.do(t, http.MethodPost, "/listings/"+l.ID.Hex()+"/reviews",
		url.Values{"review[comment]": {"x"}, "review[rating]": {"2"}}, env.anon(t))
	assertRedirect(t, rec, middleware.LoginPath)
}

func TestDeleteReview(t *testing.T) {
	env := newTestEnv(t)
	sess := env.login(t, "ana")
	l := env.listings.seed(sampleListing())
	env.do(t, http.MethodPost, "/listings/"+l.ID.Hex()+"/reviews",
		url.Values{"review[comment]": {"Great"}, "review[rating]": {"4"}}, sess)
	rid := env.listings.get(l.ID).Reviews[0]

	rec := env.do(t, http.MethodPost, "/listings/"+l.ID.Hex()+"/reviews/"+rid.Hex(),
		url.Values{"_method": {http.MethodDelete}}, sess)
	assertRedirect(t, rec, "/listings/"+l.ID.Hex())
	assertFlash(t, env.reload(t, sess).Flash.Success, handler.MsgReviewDeleted)

	if n := len(env.listings.get(l.ID).Reviews); n != 0 {
		t.Errorf("listing still references %d reviews", n)
	}
	if env.reviews.count() != 0 {
		t.Error("review not deleted")
	}
}
