package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"forgesync/internal/httputil"
)

// RequestLog tags each request with an id and traces it at debug level.
func RequestLog(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			r = httputil.WithRequestID(r, id)

			logger.Debug("request",
				"id", id,
				"method", r.Method,
				"path", r.URL.Path,
			)

			next.ServeHTTP(w, r)
		})
	}
}
