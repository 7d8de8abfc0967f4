package middlewares

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/5w1tchy/smart-library-api/internal/api/apperr"
	"github.com/5w1tchy/smart-library-api/internal/library"
	"go.uber.org/zap"
)

// Recovery turns a panic into an INTERNAL_ERROR envelope and logs the
// stack. http.ErrAbortHandler is re-raised so the server can drop the
// connection as intended.
func Recovery(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				rid := GetRequestID(r)
				if rid == "" {
					rid = "unknown"
				}
				log.Error("panic recovered",
					zap.String("request_id", rid),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				apperr.Write(w, r, nil, library.Internal(fmt.Errorf("panic: %v", rec)))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
