package handler

import (
	"log/slog"
	"net/http"

	"forgesync/internal/domain/models"
	"forgesync/internal/httputil"
	"forgesync/internal/service/sync"
)

// SyncHandler serves the push and pull endpoints.
type SyncHandler struct {
	sync   *sync.Service
	logger *slog.Logger
}

func NewSyncHandler(svc *sync.Service, logger *slog.Logger) *SyncHandler {
	return &SyncHandler{sync: svc, logger: logger}
}

// Push handles POST /sync/push. Shape validation failures return a failure
// envelope without ever touching the single-flight gate; a busy gate is
// reported as a failure envelope, not a transport error.
func (h *SyncHandler) Push(w http.ResponseWriter, r *http.Request) {
	var req models.PushRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondFailure(w, err.Error())
		return
	}

	if err := sync.CheckPushRequest(&req); err != nil {
		httputil.RespondFailure(w, err.Error())
		return
	}

	result, err := h.sync.Push(r.Context(), &req)
	if err != nil {
		httputil.RespondFailure(w, err.Error())
		return
	}

	// Partial failure still reports success; callers inspect result.Errors.
	httputil.RespondData(w, result)
}

// Pull handles POST /sync/pull. The body is optional.
func (h *SyncHandler) Pull(w http.ResponseWriter, r *http.Request) {
	var req models.PullRequest
	if err := httputil.ParseOptionalJSON(w, r, &req); err != nil {
		httputil.RespondFailure(w, err.Error())
		return
	}

	result, err := h.sync.Pull(r.Context(), req.Since, req.FolderIDs)
	if err != nil {
		httputil.RespondFailure(w, err.Error())
		return
	}

	httputil.RespondData(w, result)
}
