// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// LogConfig selects log verbosity and output format.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"` // text or json
}

// StorageConfig selects the snapshot medium.
type StorageConfig struct {
	// Backend is one of memory, file, postgres.
	Backend     string `envconfig:"STORAGE_BACKEND" default:"file"`
	Dir         string `envconfig:"STORAGE_DIR" default:"./data"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
}

// AppConfig is the full application configuration.
type AppConfig struct {
	Env     string `envconfig:"APP_ENV" default:"development"`
	Host    string `envconfig:"APP_HOST" default:"localhost"`
	Port    int    `envconfig:"APP_PORT" default:"3000"`
	Log     LogConfig
	Storage StorageConfig
}

// Addr returns the host:port the HTTP server binds to.
func (c *AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from the environment. When an env file path is
// given and exists, it is loaded first; a missing file is not an error so
// production can run from real environment variables alone.
func Load(logger *slog.Logger, envFilePath ...string) (*AppConfig, error) {
	if len(envFilePath) > 0 && envFilePath[0] != "" {
		if err := godotenv.Load(envFilePath[0]); err != nil {
			logger.Warn("env file not loaded", "path", envFilePath[0], "error", err)
		}
	}
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	logger.Info("config loaded",
		"env", cfg.Env, "addr", cfg.Addr(),
		"storage_backend", cfg.Storage.Backend)
	return &cfg, nil
}
