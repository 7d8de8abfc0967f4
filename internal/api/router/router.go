package router

import (
	"net/http"

	"github.com/5w1tchy/smart-library-api/internal/api/handlers"
	"github.com/5w1tchy/smart-library-api/internal/api/handlers/books"
	"github.com/5w1tchy/smart-library-api/internal/library"
	"github.com/5w1tchy/smart-library-api/internal/metrics"
	"go.uber.org/zap"
)

type Deps struct {
	Library *library.Service
	Info    handlers.AppInfo
	Log     *zap.Logger
	// Metrics is nil when the /metrics endpoint is disabled.
	Metrics *metrics.Metrics
}

func Router(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", handlers.RootHandler(d.Info))
	mux.Handle("GET /health", handlers.HealthHandler(d.Library))
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics.Handler())
	}

	books.Mount(mux, "/books", d.Library, d.Log)
	books.Mount(mux, "/api/v1/books", d.Library, d.Log)

	mux.HandleFunc("/", handlers.NotFoundHandler)
	return mux
}
