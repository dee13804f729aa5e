// Package config loads client configuration from the environment, with an
// optional .env file for development setups.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the complete client configuration.
type Config struct {
	// APIURL is the portal server, without the /api suffix.
	APIURL string `env:"PLACENET_API_URL" envDefault:"http://localhost:5000"`
	// SocketURL is the realtime push endpoint. Empty means derive from APIURL.
	SocketURL string `env:"PLACENET_SOCKET_URL"`
	// DataDir holds the cached identity and cookie files.
	DataDir string `env:"PLACENET_DATA_DIR"`

	// Federated sign-in (google) for the `login` subcommand.
	GoogleClientID     string `env:"PLACENET_GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"PLACENET_GOOGLE_CLIENT_SECRET"`
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load() //nolint:errcheck

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("config.Load: home dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".placenet")
	}
	return cfg, nil
}

// IdentityCachePath is the cached identity record location.
func (c Config) IdentityCachePath() string {
	return filepath.Join(c.DataDir, "identity.json")
}

// CookiePath is the persisted session cookie location.
func (c Config) CookiePath() string {
	return filepath.Join(c.DataDir, "cookies.json")
}
