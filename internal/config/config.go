// Package config loads configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all server configuration.
type Config struct {
	// Server
	ListenAddr  string
	MetricsAddr string

	// Logging
	LogLevel  string
	LogFormat string

	// Shop
	SourceDirs     []string
	CacheTTL       time.Duration
	SuccessMessage string

	// Basic auth (optional — both must be set to enable the check)
	AuthUser     string
	AuthPassword string
}

// AuthEnabled reports whether the static Basic-Auth credential pair is
// configured. A missing pair disables the check entirely.
func (c *Config) AuthEnabled() bool {
	return c.AuthUser != "" && c.AuthPassword != ""
}

// Load reads configuration from the environment, after merging in a .env
// file if one is present in the working directory.
func Load() (*Config, error) {
	// Missing .env is the normal case outside of development.
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:     envOr("LISTEN_ADDR", ":3000"),
		MetricsAddr:    envOr("METRICS_ADDR", ":9090"),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		LogFormat:      envOr("LOG_FORMAT", "json"),
		SourceDirs:     envList("SOURCE_DIRS"),
		CacheTTL:       time.Duration(envInt("CACHE_TTL_SECONDS", 60)) * time.Second,
		SuccessMessage: envOr("SUCCESS_MESSAGE", ""),
		AuthUser:       envOr("AUTH_USER", ""),
		AuthPassword:   envOr("AUTH_PASSWORD", ""),
	}

	if len(cfg.SourceDirs) == 0 {
		return nil, fmt.Errorf("SOURCE_DIRS is required (comma-separated absolute paths)")
	}
	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("CACHE_TTL_SECONDS must be >= 0")
	}
	if (cfg.AuthUser == "") != (cfg.AuthPassword == "") {
		return nil, fmt.Errorf("AUTH_USER and AUTH_PASSWORD must be set together")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

// envList splits a comma-separated variable, trimming whitespace and
// dropping empty items.
func envList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
