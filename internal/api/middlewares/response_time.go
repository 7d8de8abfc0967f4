package middlewares

import (
	"net/http"
	"time"
)

type rtWriter struct {
	http.ResponseWriter
	start       time.Time
	wroteHeader bool
}

func (w *rtWriter) stamp() {
	if !w.wroteHeader {
		w.Header().Set("X-Response-Time", time.Since(w.start).String())
		w.wroteHeader = true
	}
}

func (w *rtWriter) WriteHeader(code int) {
	w.stamp()
	w.ResponseWriter.WriteHeader(code)
}

func (w *rtWriter) Write(b []byte) (int, error) {
	w.stamp()
	return w.ResponseWriter.Write(b)
}

func (w *rtWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// ResponseTime sets X-Response-Time just before the headers go out.
func ResponseTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &rtWriter{ResponseWriter: w, start: time.Now()}
		next.ServeHTTP(rw, r)

		// If nothing was written (e.g., 204/HEAD), set it now.
		if !rw.wroteHeader {
			rw.Header().Set("X-Response-Time", time.Since(rw.start).String())
		}
	})
}
