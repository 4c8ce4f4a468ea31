// Package config loads the server configuration from environment
// variables, with an optional .env file for development.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Port       int    `env:"SWG_PORT" envDefault:"5500"`
	DataDir    string `env:"SWG_DATA_DIR" envDefault:"./data"`
	UploadsDir string `env:"SWG_UPLOADS_DIR" envDefault:"./uploads"`
	SiteDir    string `env:"SWG_SITE_DIR" envDefault:"./public"`
	LogLevel   string `env:"SWG_LOG_LEVEL" envDefault:"info"`

	// AdminPasswordHash is the sha256 hex digest of the master password.
	// Generate one with: switchsite hash-password <password>
	AdminPasswordHash string `env:"SWG_ADMIN_PASSWORD_HASH,required"`
	AdminUsername     string `env:"SWG_ADMIN_USERNAME" envDefault:"admin"`

	// WebhookURL enables Discord notifications for contact and
	// application submissions when set.
	WebhookURL string `env:"SWG_WEBHOOK_URL"`

	// UniverseIDs are the universes summed into the site-wide visit and
	// concurrent-player counters.
	UniverseIDs []string `env:"SWG_UNIVERSE_IDS" envSeparator:","`
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.AdminPasswordHash = strings.ToLower(strings.TrimSpace(cfg.AdminPasswordHash))
	if len(cfg.AdminPasswordHash) != 64 {
		return nil, fmt.Errorf("SWG_ADMIN_PASSWORD_HASH must be a sha256 hex digest; " +
			"generate one with: switchsite hash-password <password>")
	}
	return cfg, nil
}
