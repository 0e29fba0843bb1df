package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"forgesync/internal/config"
	"forgesync/internal/domain/models"
	"forgesync/internal/settings"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query a running sync server and print its status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		cfg := config.Load()

		port := cfg.PortOverride
		if port == 0 {
			settingsPath := cfg.SettingsPath
			if settingsPath == "" {
				settingsPath = filepath.Join(cfg.VaultDir, ".forgesync.yaml")
			}
			store, err := settings.NewStore(settingsPath, newLogger(cfg))
			if err != nil {
				return err
			}
			port = store.Get().ServerPort
		}

		client := http.Client{Timeout: 5 * time.Second}
		resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%d/status", port))
		if err != nil {
			return fmt.Errorf("sync server not reachable on port %d: %w", port, err)
		}
		defer resp.Body.Close()

		var envelope struct {
			Success bool              `json:"success"`
			Data    models.StatusData `json:"data"`
			Error   string            `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			return fmt.Errorf("decode status response: %w", err)
		}
		if !envelope.Success {
			return fmt.Errorf("status request failed: %s", envelope.Error)
		}

		fmt.Printf("Server:    running on port %d\n", port)
		fmt.Printf("Vault:     %s (%s)\n", envelope.Data.Vault.Name, envelope.Data.Vault.Path)
		fmt.Printf("Base path: %s\n", envelope.Data.BasePath)
		fmt.Printf("Mappings:  %d\n", len(envelope.Data.SyncFolders))
		fmt.Printf("Mode:      Extension -> vault (one-way)\n")
		return nil
	},
}
