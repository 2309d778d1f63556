package handler_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/wanderlust/listings/internal/handler"
)

func TestUnmatchedRouteRendersNotFound(t *testing.T) {
	env := newTestEnv(t)
	for _, tt := range []struct{ method, path string }{
		{http.MethodGet, "/nowhere"},
		{http.MethodPost, "/listings/abc/unknown"},
		{http.MethodPatch, "/listings"},
	} {
		rec := env.do(t, tt.method, tt.path, nil, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s %s status = %d, want 404", tt.method, tt.path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), handler.MsgNotFound) {
			t.Errorf("%s %s body missing not-found message", tt.method, tt.path)
		}
	}
}

func TestFlashShownOnceOnNextPage(t *testing.T) {
	env := newTestEnv(t)
	sess := env.anon(t)

	env.do(t, http.MethodGet, "/listings/missing", nil, sess)
	rec := env.do(t, http.MethodGet, "/listings", nil, sess)
	if !strings.Contains(rec.Body.String(), handler.MsgListingMissing) {
		t.Error("flash not rendered on next page")
	}
	rec = env.do(t, http.MethodGet, "/listings", nil, sess)
	if strings.Contains(rec.Body.String(), handler.MsgListingMissing) {
		t.Error("flash rendered twice")
	}
}
