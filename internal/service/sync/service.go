package sync

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"forgesync/internal/domain"
	"forgesync/internal/domain/models"
	"forgesync/internal/settings"
	"forgesync/internal/vault"
)

// Notifier receives user-visible notices about completed syncs. It stands in
// for the host application's notification surface.
type Notifier interface {
	Notify(message string)
}

// LogNotifier is the default Notifier: notices go to the log.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n *LogNotifier) Notify(message string) {
	n.Logger.Info("notice", "message", message)
}

// Service coordinates push batches against the vault. A single-flight gate
// rejects concurrent pushes so two batches can never race on the same target
// files; there is no per-file locking beyond it.
type Service struct {
	vault    *vault.Vault
	settings *settings.Store
	notifier Notifier
	logger   *slog.Logger

	busy atomic.Bool

	autoMu   sync.Mutex
	autoStop chan struct{}
}

func NewService(v *vault.Vault, st *settings.Store, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		vault:    v,
		settings: st,
		notifier: notifier,
		logger:   logger,
	}
}

// IsBusy reports whether a push batch is currently in flight.
func (s *Service) IsBusy() bool {
	return s.busy.Load()
}

// Push materializes a batch into the vault. Items are processed one at a
// time, in order: folders, branches, forgeDocs, docKits. A failing item is
// recorded and processing continues; there is no rollback, so a partially
// completed batch leaves already-written files in place. Returns
// domain.ErrSyncInProgress without touching anything if a push is already
// running.
func (s *Service) Push(ctx context.Context, req *models.PushRequest) (*models.PushResult, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, domain.ErrSyncInProgress
	}
	defer s.busy.Store(false)

	snap := s.settings.Get()
	basePath := snap.BasePath
	if basePath == "" {
		basePath = snap.DefaultSyncFolder
	}
	if basePath == "" {
		basePath = "ThinkForge"
	}
	projectName := req.ProjectName
	if projectName == "" {
		projectName = "Default"
	}
	projectPath := basePath + "/" + projectName

	result := &models.PushResult{Errors: []models.SyncError{}}

	// Folder structure first so later items land in existing directories.
	for i := range req.Folders {
		folder := &req.Folders[i]
		if folder.Path == "" {
			continue
		}
		if _, err := s.vault.EnsureFolder(projectPath + "/" + folder.Path); err != nil {
			result.Errors = append(result.Errors, itemError(folder.ID, "folder", err))
			continue
		}
		result.Processed.Folders++
	}

	for i := range req.Branches {
		branch := &req.Branches[i]
		if _, err := s.vault.SaveBranch(branch, projectPath); err != nil {
			result.Errors = append(result.Errors, itemError(branch.ID, "branch", err))
			continue
		}
		result.Processed.Branches++
	}

	for i := range req.ForgeDocs {
		doc := &req.ForgeDocs[i]
		if _, err := s.vault.SaveForgeDoc(doc, projectPath); err != nil {
			result.Errors = append(result.Errors, itemError(doc.ID, "forgeDoc", err))
			continue
		}
		result.Processed.ForgeDocs++
	}

	for i := range req.DocKits {
		kit := &req.DocKits[i]
		if _, err := s.vault.SaveDocKit(kit, projectPath); err != nil {
			result.Errors = append(result.Errors, itemError(kit.ID, "docKit", err))
			continue
		}
		result.Processed.DocKits++
	}

	// Last-sync is stamped after the batch even when some items failed.
	if err := s.settings.SetLastSync(time.Now().UnixMilli()); err != nil {
		s.logger.Warn("failed to persist last sync time", "error", err)
	}

	total := result.Processed.Branches + result.Processed.ForgeDocs + result.Processed.DocKits
	if total > 0 {
		s.notifier.Notify(fmt.Sprintf("Think Forge: Synced %d items to %s", total, projectName))
	}

	s.logger.Info("push completed",
		"project", projectName,
		"folders", result.Processed.Folders,
		"branches", result.Processed.Branches,
		"forge_docs", result.Processed.ForgeDocs,
		"doc_kits", result.Processed.DocKits,
		"errors", len(result.Errors),
	)

	return result, nil
}

// Pull reads stored items back out of the vault through the mapping
// registry. Mappings whose folders cannot be read are skipped, not fatal.
func (s *Service) Pull(ctx context.Context, since *int64, folderIDs []string) (*models.PullResult, error) {
	snap := s.settings.Get()

	mappings := snap.FolderMappings
	if folderIDs != nil {
		wanted := make(map[string]bool, len(folderIDs))
		for _, id := range folderIDs {
			wanted[id] = true
		}
		var filtered []models.FolderMapping
		for _, m := range mappings {
			if wanted[m.ThinkForgeFolderID] {
				filtered = append(filtered, m)
			}
		}
		mappings = filtered
	}

	result := &models.PullResult{
		Branches:  []models.Branch{},
		ForgeDocs: []models.ForgeDoc{},
		DocKits:   []models.DocKit{},
		LastSync:  time.Now().UnixMilli(),
	}

	for _, mapping := range mappings {
		items, err := s.vault.ReadStoredItems(mapping.ObsidianPath)
		if err != nil {
			s.logger.Debug("failed to read mapped folder",
				"path", mapping.ObsidianPath,
				"error", err,
			)
			continue
		}
		result.Branches = append(result.Branches, items.Branches...)
		result.ForgeDocs = append(result.ForgeDocs, items.ForgeDocs...)
		result.DocKits = append(result.DocKits, items.DocKits...)
	}

	if since != nil {
		result.Branches = filterSince(result.Branches, *since, func(b models.Branch) int64 { return b.UpdatedAt })
		result.ForgeDocs = filterSince(result.ForgeDocs, *since, func(d models.ForgeDoc) int64 { return d.UpdatedAt })
		result.DocKits = filterSince(result.DocKits, *since, func(k models.DocKit) int64 { return k.UpdatedAt })
	}

	return result, nil
}

// AddMapping upserts a folder mapping, keyed by the external folder id. The
// target folder is created first; a folder-creation failure propagates to
// the caller instead of being swallowed.
func (s *Service) AddMapping(ctx context.Context, folderID, folderName, path string) (*models.FolderMapping, error) {
	if _, err := s.vault.EnsureFolder(path); err != nil {
		return nil, err
	}

	mapping := models.FolderMapping{
		ThinkForgeFolderID:   folderID,
		ThinkForgeFolderName: folderName,
		ObsidianPath:         path,
		CreatedAt:            time.Now().UnixMilli(),
		LastSync:             0,
	}

	err := s.settings.Update(func(st *settings.Settings) {
		kept := st.FolderMappings[:0]
		for _, m := range st.FolderMappings {
			if m.ThinkForgeFolderID != folderID {
				kept = append(kept, m)
			}
		}
		st.FolderMappings = append(kept, mapping)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("mapping added", "folder_id", folderID, "path", path)
	return &mapping, nil
}

// RemoveMapping deletes any mapping for the external folder id and reports
// whether one existed.
func (s *Service) RemoveMapping(folderID string) (bool, error) {
	removed := false
	err := s.settings.Update(func(st *settings.Settings) {
		kept := st.FolderMappings[:0]
		for _, m := range st.FolderMappings {
			if m.ThinkForgeFolderID == folderID {
				removed = true
				continue
			}
			kept = append(kept, m)
		}
		st.FolderMappings = kept
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// ListMappings returns a defensive copy of the mapping registry.
func (s *Service) ListMappings() []models.FolderMapping {
	mappings := s.settings.Get().FolderMappings
	if mappings == nil {
		mappings = []models.FolderMapping{}
	}
	return mappings
}

// StartAutoSync starts the interval timer when auto-sync is enabled. The
// tick itself is a no-op: in HTTP-only mode the extension initiates every
// sync, so the timer exists only for settings parity with the host.
func (s *Service) StartAutoSync() {
	s.autoMu.Lock()
	defer s.autoMu.Unlock()

	snap := s.settings.Get()
	if !snap.AutoSync {
		return
	}
	if s.autoStop != nil {
		return
	}

	interval := time.Duration(snap.SyncIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	stop := make(chan struct{})
	s.autoStop = stop

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.logger.Debug("auto sync interval tick (no-op in HTTP-only mode)")
			case <-stop:
				return
			}
		}
	}()
}

// StopAutoSync stops the interval timer if it is running.
func (s *Service) StopAutoSync() {
	s.autoMu.Lock()
	defer s.autoMu.Unlock()

	if s.autoStop != nil {
		close(s.autoStop)
		s.autoStop = nil
	}
}

func itemError(id, itemType string, err error) models.SyncError {
	return models.SyncError{ItemID: id, ItemType: itemType, Error: err.Error()}
}

func filterSince[T any](items []T, since int64, updatedAt func(T) int64) []T {
	kept := items[:0]
	for _, item := range items {
		if updatedAt(item) > since {
			kept = append(kept, item)
		}
	}
	return kept
}
