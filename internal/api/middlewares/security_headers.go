package middlewares

import "net/http"

type SecurityOptions struct {
	// Strict adds COOP/COEP/CORP, which can break embeds.
	Strict     bool
	APIVersion string
}

func SecurityHeaders(opts SecurityOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-DNS-Prefetch-Control", "off")
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-XSS-Protection", "1; mode=block")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Referrer-Policy", "no-referrer")
			h.Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			h.Set("Content-Security-Policy", "default-src 'self'")

			// HSTS only means something over HTTPS.
			if r.TLS != nil {
				h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")
			}
			if opts.Strict {
				h.Set("Cross-Origin-Opener-Policy", "same-origin")
				h.Set("Cross-Origin-Embedder-Policy", "require-corp")
				h.Set("Cross-Origin-Resource-Policy", "same-origin")
			}
			if opts.APIVersion != "" {
				h.Set("X-API-Version", opts.APIVersion)
			}
			h.Set("Server", "")

			next.ServeHTTP(w, r)
		})
	}
}
