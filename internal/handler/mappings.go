package handler

import (
	"log/slog"
	"net/http"

	"forgesync/internal/config"
	"forgesync/internal/domain/models"
	"forgesync/internal/httputil"
	"forgesync/internal/service/sync"
)

// MappingHandler serves the folder-mapping registry endpoints.
type MappingHandler struct {
	sync   *sync.Service
	logger *slog.Logger
}

func NewMappingHandler(svc *sync.Service, logger *slog.Logger) *MappingHandler {
	return &MappingHandler{sync: svc, logger: logger}
}

// List handles GET /mappings.
func (h *MappingHandler) List(w http.ResponseWriter, r *http.Request) {
	httputil.RespondData(w, models.MappingsData{Mappings: h.sync.ListMappings()})
}

// Create handles POST /mappings: validate, ensure the target folder, upsert.
func (h *MappingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMappingRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondFailure(w, err.Error())
		return
	}

	if err := sync.CheckCreateMappingRequest(&req); err != nil {
		httputil.RespondFailure(w, err.Error())
		return
	}

	mapping, err := h.sync.AddMapping(r.Context(), req.ThinkForgeFolderID, req.ThinkForgeFolderName, req.ObsidianPath)
	if err != nil {
		httputil.RespondFailure(w, err.Error())
		return
	}

	httputil.RespondData(w, mapping)
}

// Delete handles DELETE /mappings/{id}. The path value arrives URL-decoded.
func (h *MappingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" || len(id) > config.MaxFolderIDLength {
		httputil.RespondFailure(w, "Invalid folder ID")
		return
	}

	deleted, err := h.sync.RemoveMapping(id)
	if err != nil {
		httputil.RespondFailure(w, err.Error())
		return
	}

	httputil.RespondData(w, models.DeletedData{Deleted: deleted})
}
