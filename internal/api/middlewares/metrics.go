package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"github.com/5w1tchy/smart-library-api/internal/metrics"
)

// Metrics records request counts and latency labelled by the matched
// ServeMux pattern. It must wrap the mux directly so it sees the pattern
// the mux stores on the request.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.HTTPRequestsInProgress.Inc()
			defer m.HTTPRequestsInProgress.Dec()

			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
