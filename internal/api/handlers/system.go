package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/5w1tchy/smart-library-api/internal/api/apperr"
	"github.com/5w1tchy/smart-library-api/internal/api/httpx"
	"github.com/5w1tchy/smart-library-api/internal/library"
)

type AppInfo struct {
	Name    string
	Version string
}

// RootHandler serves the service banner.
func RootHandler(info AppInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"message":   "Welcome to " + info.Name,
			"version":   info.Version,
			"timestamp": time.Now().UTC(),
			"endpoints": map[string]string{
				"books":        "/books",
				"api_v1_books": "/api/v1/books",
				"health":       "/health",
				"metrics":      "/metrics",
			},
		})
	}
}

type HealthChecker interface {
	Health(ctx context.Context) library.Health
}

// HealthHandler always answers 200; degraded dependencies show up in the
// services map.
func HealthHandler(hc HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := hc.Health(r.Context())
		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"status":    h.Status,
			"timestamp": time.Now().UTC(),
			"services":  h.Services,
			"metrics":   h.Metrics,
		})
	}
}

// NotFoundHandler renders unknown routes through the error envelope.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	apperr.Write(w, r, nil, library.RouteNotFound(r.URL.Path))
}
