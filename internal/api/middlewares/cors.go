package middlewares

import (
	"net/http"
	"strings"

	"github.com/5w1tchy/smart-library-api/internal/api/apperr"
	"github.com/5w1tchy/smart-library-api/internal/library"
	"go.uber.org/zap"
)

var exposedHeaders = strings.Join([]string{
	"X-Request-ID", "X-Response-Time", "X-API-Version",
	"X-Total-Count", "X-Page", "X-Per-Page",
}, ", ")

// CORS allows the listed origins; "*" allows any origin. Requests from
// other origins are rejected with FORBIDDEN.
func CORS(origins []string, log *zap.Logger) func(http.Handler) http.Handler {
	allowAny := false
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAny = true
		}
		allowed[o] = struct{}{}
	}
	isAllowed := func(origin string) bool {
		if allowAny {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && !isAllowed(origin) {
				log.Warn("cors origin blocked",
					zap.String("origin", origin),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				)
				apperr.WriteStatus(w, http.StatusForbidden, library.CodeForbidden, "Origin not allowed")
				return
			}

			h := w.Header()
			if origin != "" {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
				if !allowAny {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
			}
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Max-Age", "3600")
			h.Set("Access-Control-Expose-Headers", exposedHeaders)

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.Add("Vary", "Access-Control-Request-Method")
				h.Add("Vary", "Access-Control-Request-Headers")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
