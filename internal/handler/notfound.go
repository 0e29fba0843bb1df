package handler

import (
	"fmt"
	"net/http"
	"strings"

	"forgesync/internal/httputil"
)

// NotFound answers any unmatched method/path combination with a failure
// envelope naming both.
func NotFound(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(r.URL.Path, "/")
	httputil.RespondFailure(w, fmt.Sprintf("Unknown endpoint: %s /%s", r.Method, path))
}
