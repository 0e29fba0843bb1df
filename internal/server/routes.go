package server

import (
	"log/slog"
	"net/http"

	"forgesync/internal/config"
	"forgesync/internal/handler"
	"forgesync/internal/middleware"
	"forgesync/internal/service/sync"
	"forgesync/internal/settings"
	"forgesync/internal/vault"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Vault    *vault.Vault
	Settings *settings.Store
	Sync     *sync.Service
	Logger   *slog.Logger
}

// NewHandler builds the route table and middleware chain.
func NewHandler(deps Deps) http.Handler {
	vaultHandler := handler.NewVaultHandler(deps.Vault, deps.Settings, deps.Sync, deps.Logger)
	syncHandler := handler.NewSyncHandler(deps.Sync, deps.Logger)
	mappingHandler := handler.NewMappingHandler(deps.Sync, deps.Logger)

	mux := http.NewServeMux()

	// Health check (/ping is the alias the extension uses)
	mux.HandleFunc("GET /health", vaultHandler.Health)
	mux.HandleFunc("GET /ping", vaultHandler.Health)

	// Vault information
	mux.HandleFunc("GET /status", vaultHandler.Status)
	mux.HandleFunc("GET /folders", vaultHandler.Folders)

	// Folder mappings
	mux.HandleFunc("GET /mappings", mappingHandler.List)
	mux.HandleFunc("POST /mappings", mappingHandler.Create)
	mux.HandleFunc("DELETE /mappings/{id}", mappingHandler.Delete)

	// Sync operations
	mux.HandleFunc("POST /sync/push", syncHandler.Push)
	mux.HandleFunc("POST /sync/pull", syncHandler.Pull)

	// Method mismatches on known paths fall through to the envelope-style
	// not-found response instead of the mux's plain-text 405.
	for _, path := range []string{
		"/health", "/ping", "/status", "/folders",
		"/mappings", "/mappings/{id}", "/sync/push", "/sync/pull",
	} {
		mux.HandleFunc(path, handler.NotFound)
	}
	mux.HandleFunc("/", handler.NotFound)

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestLog → Recovery → BodyLimit → Routes
	// RequestLog sits outside Recovery so panic logs carry the request id.
	var h http.Handler = mux
	h = middleware.BodyLimit(config.MaxBodyBytes)(h)
	h = middleware.Recovery(deps.Logger)(h)
	h = middleware.RequestLog(deps.Logger)(h)

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	h = middleware.CORS(h)

	return h
}
