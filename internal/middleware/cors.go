package middleware

import (
	"net/http"
	"strings"
)

// allowedOriginPrefixes are the browser-extension origin schemes the server
// echoes back. Everything else gets a non-matching placeholder origin, which
// browsers treat as a CORS denial.
var allowedOriginPrefixes = []string{
	"chrome-extension://", // Any Chrome extension
	"moz-extension://",    // Firefox extensions
	"null",                // Local file or extension context
}

// CORS sets the cross-origin and security headers on every response and
// short-circuits OPTIONS preflight with an empty 204.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			// Loopback callers without an Origin header land here too;
			// they never evaluate CORS so the placeholder is harmless.
			w.Header().Set("Access-Control-Allow-Origin", "null")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Think-Forge-Token")
		w.Header().Set("Content-Type", "application/json")

		// Security headers
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func originAllowed(origin string) bool {
	for _, prefix := range allowedOriginPrefixes {
		if strings.HasPrefix(origin, prefix) {
			return true
		}
	}
	return false
}
