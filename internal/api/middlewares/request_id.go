package middlewares

import (
	"net/http"
	"regexp"

	"github.com/5w1tchy/smart-library-api/internal/api/httpx"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

var ridRe = regexp.MustCompile(`^[A-Za-z0-9_.\-]{1,64}$`)

// RequestID keeps a well-formed incoming X-Request-ID or assigns a UUID,
// and exposes it on the context and the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(HeaderRequestID)
		if !ridRe.MatchString(rid) {
			rid = uuid.NewString()
		}
		r = r.WithContext(httpx.WithRequestID(r.Context(), rid))
		r.Header.Set(HeaderRequestID, rid)
		w.Header().Set(HeaderRequestID, rid)

		next.ServeHTTP(w, r)
	})
}

// GetRequestID extracts the value previously set by RequestID middleware.
func GetRequestID(r *http.Request) string {
	if v := httpx.RequestID(r.Context()); v != "" {
		return v
	}
	return r.Header.Get(HeaderRequestID)
}
