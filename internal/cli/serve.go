package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"forgesync/internal/config"
	"forgesync/internal/server"
	syncsvc "forgesync/internal/service/sync"
	"forgesync/internal/settings"
	"forgesync/internal/vault"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sync server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load .env file (silently ignore if it doesn't exist)
		_ = godotenv.Load()

		cfg := config.Load()
		logger := newLogger(cfg)

		logger.Info("forgesync starting",
			"environment", cfg.Environment,
			"vault", cfg.VaultDir,
			"version", config.Version,
		)

		settingsPath := cfg.SettingsPath
		if settingsPath == "" {
			settingsPath = filepath.Join(cfg.VaultDir, ".forgesync.yaml")
		}

		store, err := settings.NewStore(settingsPath, logger)
		if err != nil {
			return err
		}
		if err := store.Watch(); err != nil {
			logger.Warn("settings hot-reload unavailable", "error", err)
		}
		defer store.Close()

		v, err := vault.New(cfg.VaultDir, logger)
		if err != nil {
			return err
		}

		svc := syncsvc.NewService(v, store, &syncsvc.LogNotifier{Logger: logger}, logger)

		snap := store.Get()
		if !snap.ServerEnabled {
			logger.Warn("sync server is disabled in settings; nothing to do",
				"settings", store.Path(),
			)
			return nil
		}

		port := snap.ServerPort
		if cfg.PortOverride > 0 {
			port = cfg.PortOverride
		}

		srv := server.New(port, server.NewHandler(server.Deps{
			Vault:    v,
			Settings: store,
			Sync:     svc,
			Logger:   logger,
		}), logger)

		if err := srv.Start(); err != nil {
			return err
		}
		svc.StartAutoSync()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		logger.Info("shutting down")
		svc.StopAutoSync()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)
	},
}
