// Package config loads the process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the complete application configuration.
type Config struct {
	Host            string
	Port            int
	GitHubBaseURL   string
	UpstreamTimeout time.Duration
	CacheSize       int
	DumpDir         string
}

// Load reads the configuration from an optional .env file and the
// environment. Every key has a working default; the service starts with no
// configuration at all.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, relying on environment variables")
	}

	port, err := getEnvInt("PORT", 6969)
	if err != nil {
		return nil, err
	}
	timeoutSecs, err := getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	cacheSize, err := getEnvInt("CACHE_SIZE", 100)
	if err != nil {
		return nil, err
	}
	if cacheSize < 1 {
		return nil, fmt.Errorf("CACHE_SIZE must be positive, got %d", cacheSize)
	}

	return &Config{
		Host:            getEnv("HOST", "0.0.0.0"),
		Port:            port,
		GitHubBaseURL:   getEnv("GITHUB_BASE_URL", "https://github.com"),
		UpstreamTimeout: time.Duration(timeoutSecs) * time.Second,
		CacheSize:       cacheSize,
		DumpDir:         getEnv("DUMP_DIR", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return value, nil
}
