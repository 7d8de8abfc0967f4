package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mw "github.com/5w1tchy/smart-library-api/internal/api/middlewares"
	"go.uber.org/zap"
)

func TestCORS_Wildcard(t *testing.T) {
	wrapped := mw.CORS([]string{"*"}, zap.NewNop())(okHandler)

	req := httptest.NewRequest("GET", "/books", nil)
	req.Header.Set("Origin", "https://anything.example")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://anything.example" {
		t.Errorf("Expected origin echoed, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
	exposed := rec.Header().Get("Access-Control-Expose-Headers")
	for _, h := range []string{"X-Total-Count", "X-Page", "X-Per-Page", "X-Request-ID"} {
		if !strings.Contains(exposed, h) {
			t.Errorf("Expected %s to be exposed, got %q", h, exposed)
		}
	}
}

func TestCORS_BlocksUnknownOrigin(t *testing.T) {
	wrapped := mw.CORS([]string{"http://localhost:5173"}, zap.NewNop())(okHandler)

	req := httptest.NewRequest("GET", "/books", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("Expected 403, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"code":"FORBIDDEN"`) {
		t.Errorf("Expected FORBIDDEN envelope, got %s", rec.Body.String())
	}
}

func TestCORS_Preflight(t *testing.T) {
	called := false
	wrapped := mw.CORS([]string{"http://localhost:5173"}, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("OPTIONS", "/books", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", rec.Code)
	}
	if called {
		t.Error("Preflight must not reach the handler")
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("Expected credentials allowed for an explicit origin")
	}
}
