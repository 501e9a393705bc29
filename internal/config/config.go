package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the service.
type Config struct {
	ListenAddr           string
	DatabaseURL          string
	SessionSecret        string
	SiteURL              string
	StorageDir           string
	SessionTTL           time.Duration
	ResetTokenTTL        time.Duration
	TokenCleanupInterval time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:           strings.TrimSpace(os.Getenv("LISTEN_ADDR")),
		DatabaseURL:          strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SessionSecret:        strings.TrimSpace(os.Getenv("SESSION_SECRET")),
		SiteURL:              strings.TrimRight(strings.TrimSpace(os.Getenv("SITE_URL")), "/"),
		StorageDir:           strings.TrimSpace(os.Getenv("STORAGE_DIR")),
		SessionTTL:           parseHours(os.Getenv("SESSION_TTL_HOURS")),
		ResetTokenTTL:        parseMinutes(os.Getenv("RESET_TOKEN_TTL_MINUTES")),
		TokenCleanupInterval: parseHours(os.Getenv("TOKEN_CLEANUP_INTERVAL_HOURS")),
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "todo.db"
	}
	if cfg.SiteURL == "" {
		cfg.SiteURL = "http://localhost:8080"
	}
	if cfg.StorageDir == "" {
		cfg.StorageDir = "storage"
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 72 * time.Hour
	}
	if cfg.ResetTokenTTL == 0 {
		cfg.ResetTokenTTL = time.Hour
	}
	if cfg.TokenCleanupInterval == 0 {
		cfg.TokenCleanupInterval = 6 * time.Hour
	}

	if cfg.SessionSecret == "" {
		return cfg, fmt.Errorf("SESSION_SECRET is required")
	}

	return cfg, nil
}

func parseHours(raw string) time.Duration {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Hour
}

func parseMinutes(raw string) time.Duration {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Minute
}
