package config

import (
	"os"
	"strconv"
)

// Version is reported by GET /health and the version command.
const Version = "1.0.0"

type Config struct {
	Environment  string
	VaultDir     string // root directory of the document vault
	SettingsPath string // settings file location; empty = <vault>/.forgesync.yaml
	LogDir       string // optional file logging; empty = stdout only
	PortOverride int    // overrides the settings file port when > 0
	// Debug flags
	Debug bool // Enables debug logging and request tracing
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Environment:  env,
		VaultDir:     getEnv("FORGESYNC_VAULT", "vault"),
		SettingsPath: getEnv("FORGESYNC_SETTINGS", ""),
		LogDir:       getEnv("FORGESYNC_LOG_DIR", ""),
		PortOverride: getEnvInt("FORGESYNC_PORT", 0),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true" // Enable DEBUG in dev/test by default
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
