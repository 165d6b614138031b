package middleware

import "net/http"

// CORS returns a middleware that permits any cross-origin caller.
//
// The funnel endpoints are consumed from arbitrary landing pages, so every
// origin, method and header is allowed and credentialed requests are
// accepted. The request origin is reflected rather than using "*" so that
// Access-Control-Allow-Credentials stays valid.
func CORS() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// No Origin header = same-origin request, skip CORS
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			// Handle preflight request
			if r.Method == http.MethodOptions {
				method := r.Header.Get("Access-Control-Request-Method")
				if method == "" {
					method = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
				}
				w.Header().Set("Access-Control-Allow-Methods", method)

				if headers := r.Header.Get("Access-Control-Request-Headers"); headers != "" {
					w.Header().Set("Access-Control-Allow-Headers", headers)
				}
				w.Header().Set("Access-Control-Max-Age", "86400")

				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
