package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const requestIDKey contextKey = "requestID"

// WithRequestID adds a request id to the request context
func WithRequestID(r *http.Request, id string) *http.Request {
	ctx := context.WithValue(r.Context(), requestIDKey, id)
	return r.WithContext(ctx)
}

// GetRequestID retrieves the request id from context, returns empty string
// if not found
func GetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}
