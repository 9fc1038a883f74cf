// ABOUTME: CORS middleware for API cross-origin requests
// ABOUTME: Echoes whitelisted origins and answers preflight requests

package middleware

import (
	"net/http"
	"slices"
)

const (
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsAllowHeaders = "Content-Type, X-Client-ID, X-Request-ID"
)

// CORSWithConfig returns middleware that allows cross-origin requests only from
// allowedOrigins. An empty list blocks every cross-origin request. Preflight
// requests are answered with 204 without calling the wrapped handler.
func CORSWithConfig(allowedOrigins []string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				w.Header().Add("Vary", "Origin")
			}

			allowed := origin != "" && slices.Contains(allowedOrigins, origin)
			if allowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
				w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
				w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, Retry-After")
			}

			if r.Method == http.MethodOptions {
				if origin != "" && !allowed {
					writeJSONError(w, "Origin not allowed", http.StatusForbidden)
					return
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next(w, r)
		}
	}
}
