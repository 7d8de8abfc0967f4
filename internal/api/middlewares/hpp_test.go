package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	mw "github.com/5w1tchy/smart-library-api/internal/api/middlewares"
)

func TestHPP_FirstValueWinsAndUnknownDropped(t *testing.T) {
	var got map[string][]string
	wrapped := mw.HPP(mw.DefaultHPPOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
	}))

	req := httptest.NewRequest("GET", "/books?author=a&author=b&limit=5&evil=1", nil)
	wrapped.ServeHTTP(httptest.NewRecorder(), req)

	if len(got["author"]) != 1 || got["author"][0] != "a" {
		t.Errorf("Expected author=[a], got %v", got["author"])
	}
	if got["limit"][0] != "5" {
		t.Errorf("Expected limit=5, got %v", got["limit"])
	}
	if _, ok := got["evil"]; ok {
		t.Error("Expected non-whitelisted parameter to be dropped")
	}
}
