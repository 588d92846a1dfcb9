package config

import (
	"errors"
	"os"
	"strings"
)

// Config contains runtime configuration required by the service.
type Config struct {
	DatabaseURL string
	Port        string
	LogLevel    string
}

// Load reads required values from environment variables.
// DATABASE_URL is mandatory; PORT defaults to 3001, LOG_LEVEL to info.
func Load() (Config, error) {
	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		return Config{}, errors.New("DATABASE_URL required")
	}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "3001"
	}

	level := strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if level == "" {
		level = "info"
	}

	return Config{
		DatabaseURL: dbURL,
		Port:        port,
		LogLevel:    level,
	}, nil
}

// LocalDatabase reports whether DATABASE_URL targets a local development
// endpoint. Local targets connect in plaintext; everything else negotiates
// TLS with peer verification relaxed (managed Postgres behind a proxy).
func (c Config) LocalDatabase() bool {
	return strings.Contains(c.DatabaseURL, "localhost") ||
		strings.Contains(c.DatabaseURL, "127.0.0.1")
}
