package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"forgesync/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "forgesync",
	Short: "Local sync bridge between the Think Forge extension and a markdown vault",
	Long: `forgesync runs a loopback HTTP server that receives push batches from the
Think Forge browser extension and materializes them as markdown files with
structured headers inside a vault directory.

Sync is one-way: Extension -> vault, over HTTP only.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the forgesync version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("forgesync " + config.Version)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, statusCmd, versionCmd)
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the JSON logger shared by every component. Debug mode
// lowers the level; FORGESYNC_LOG_DIR adds a rotated file sink.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	out := io.Writer(os.Stdout)
	if cfg.LogDir != "" {
		if f, err := config.SetupLogFile(cfg.LogDir, 10); err == nil {
			out = io.MultiWriter(os.Stdout, f)
		} else {
			fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", err)
		}
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
