package middleware

import (
	"bytes"
	"io"
	"net/http"

	"forgesync/internal/httputil"
)

// BodyLimit rejects oversized request bodies before they reach routing. A
// declared Content-Length above the cap is refused outright; bodies without
// one (chunked encoding) are drained through a capped reader and refused as
// soon as the read exceeds the cap. Handlers see the buffered body.
func BodyLimit(max int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > max {
				httputil.RespondFailure(w, "request body too large (max 10MB)")
				return
			}

			if r.Body != nil && r.Body != http.NoBody {
				body, err := io.ReadAll(io.LimitReader(r.Body, max+1))
				if err != nil {
					httputil.RespondFailure(w, "failed to read request body")
					return
				}
				if int64(len(body)) > max {
					httputil.RespondFailure(w, "request body too large (max 10MB)")
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))
			}

			next.ServeHTTP(w, r)
		})
	}
}
