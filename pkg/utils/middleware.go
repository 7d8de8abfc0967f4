package utils

import "net/http"

type Middleware func(http.Handler) http.Handler

// ApplyMiddleware wraps handler so the last middleware listed runs first.
func ApplyMiddleware(handler http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		handler = m(handler)
	}
	return handler
}
