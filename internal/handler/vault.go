package handler

import (
	"log/slog"
	"net/http"

	"forgesync/internal/config"
	"forgesync/internal/domain/models"
	"forgesync/internal/httputil"
	"forgesync/internal/service/sync"
	"forgesync/internal/settings"
	"forgesync/internal/vault"
)

// VaultHandler serves the read-only vault surfaces: health, status and
// folder enumeration.
type VaultHandler struct {
	vault    *vault.Vault
	settings *settings.Store
	sync     *sync.Service
	logger   *slog.Logger
}

func NewVaultHandler(v *vault.Vault, st *settings.Store, svc *sync.Service, logger *slog.Logger) *VaultHandler {
	return &VaultHandler{
		vault:    v,
		settings: st,
		sync:     svc,
		logger:   logger,
	}
}

// Health handles GET /health and GET /ping, the extension's liveness probe.
func (h *VaultHandler) Health(w http.ResponseWriter, r *http.Request) {
	snap := h.settings.Get()

	basePath := snap.BasePath
	if basePath == "" {
		basePath = "ThinkForge"
	}

	httputil.RespondData(w, models.HealthData{
		Status:      "ok",
		Version:     config.Version,
		VaultName:   h.vault.Name(),
		BasePath:    basePath,
		SyncEnabled: snap.ServerEnabled,
		LastSync:    snap.LastSync,
	})
}

// Status handles GET /status - the extension's connection check.
func (h *VaultHandler) Status(w http.ResponseWriter, r *http.Request) {
	snap := h.settings.Get()

	basePath := snap.BasePath
	if basePath == "" {
		basePath = "ThinkForge"
	}

	httputil.RespondData(w, models.StatusData{
		Vault: models.VaultInfo{
			Name: h.vault.Name(),
			Path: h.vault.Root(),
		},
		BasePath:    basePath,
		SyncFolders: h.sync.ListMappings(),
	})
}

// Folders handles GET /folders - a sorted enumeration of every folder path
// in the vault, root excluded.
func (h *VaultHandler) Folders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.vault.ListAllFolders()
	if err != nil {
		h.logger.Error("folder enumeration failed", "error", err)
		httputil.RespondFailure(w, err.Error())
		return
	}
	if folders == nil {
		folders = []string{}
	}

	httputil.RespondData(w, models.FoldersData{Folders: folders})
}
