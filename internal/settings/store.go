package settings

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"forgesync/internal/domain/models"
)

// Settings is the host-owned configuration surface of the sync core. The
// Store below is its single owner; everything else reads snapshots and
// mutates through Update.
type Settings struct {
	ServerPort    int  `yaml:"serverPort" json:"serverPort"`
	ServerEnabled bool `yaml:"serverEnabled" json:"serverEnabled"`
	// AutoSync and SyncIntervalMinutes drive an inert placeholder timer;
	// in HTTP-only mode the extension initiates all syncs.
	AutoSync            bool   `yaml:"autoSync" json:"autoSync"`
	SyncIntervalMinutes int    `yaml:"syncIntervalMinutes" json:"syncIntervalMinutes"`
	BasePath            string `yaml:"basePath" json:"basePath"`
	// DefaultSyncFolder is deprecated, kept for migration of old settings
	// files; it is only consulted as a base-path fallback.
	DefaultSyncFolder string                 `yaml:"defaultSyncFolder" json:"defaultSyncFolder"`
	FolderMappings    []models.FolderMapping `yaml:"folderMappings" json:"folderMappings"`
	DebugMode         bool                   `yaml:"debugMode" json:"debugMode"`
	LastSync          *int64                 `yaml:"lastSync" json:"lastSync"`
}

// Default returns the settings used when no settings file exists yet.
func Default() Settings {
	return Settings{
		ServerPort:          9879,
		ServerEnabled:       true,
		AutoSync:            false,
		SyncIntervalMinutes: 5,
		BasePath:            "ThinkForge",
		DefaultSyncFolder:   "Think Forge",
		DebugMode:           false,
		LastSync:            nil,
	}
}

// Store owns the settings file. It persists every mutation and can watch the
// file for external edits, reloading on change.
type Store struct {
	path   string
	logger *slog.Logger

	mu      sync.RWMutex
	current Settings

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewStore loads the settings file at path, creating it with defaults when
// missing.
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	s := &Store{path: path, logger: logger, current: Default()}

	if err := s.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		s.mu.Lock()
		err := s.save()
		s.mu.Unlock()
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Path returns the settings file location.
func (s *Store) Path() string { return s.path }

// Get returns a snapshot of the current settings. The mappings slice is
// copied so callers cannot mutate shared state.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.current
	snap.FolderMappings = append([]models.FolderMapping(nil), s.current.FolderMappings...)
	return snap
}

// Update applies fn to the settings under the write lock and persists the
// result.
func (s *Store) Update(fn func(*Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.current)
	return s.save()
}

// SetLastSync records the completion time of a push batch, in epoch
// milliseconds.
func (s *Store) SetLastSync(ms int64) error {
	return s.Update(func(st *Settings) {
		st.LastSync = &ms
	})
}

// Watch starts reloading the settings file when something else writes it.
// Call Close to stop.
func (s *Store) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	// Watch the directory so the file is tracked across rename/recreate.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch settings directory: %w", err)
	}

	s.watcher = watcher
	s.done = make(chan struct{})

	go func() {
		base := filepath.Base(s.path)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := s.load(); err != nil {
					s.logger.Warn("settings reload failed", "error", err)
					continue
				}
				s.logger.Debug("settings reloaded", "path", s.path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("settings watcher error", "error", err)
			case <-s.done:
				return
			}
		}
	}()

	return nil
}

// Close stops the file watcher if one is running.
func (s *Store) Close() error {
	if s.watcher == nil {
		return nil
	}
	close(s.done)
	return s.watcher.Close()
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	// Start from defaults so keys absent from older files keep sane values.
	loaded := Default()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parse settings file: %w", err)
	}

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()
	return nil
}

// save writes the current settings; the caller must hold mu.
func (s *Store) save() error {
	data, err := yaml.Marshal(s.current)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}
