package http

import "net/http"

// feedCSP blocks every subresource and script when a feed is opened
// directly in a browser. Entry content is publisher-supplied HTML.
const feedCSP = "default-src 'none'; frame-ancestors 'none'; sandbox"

// SecurityHeaders sets Content-Security-Policy and nosniff on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", feedCSP)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}
