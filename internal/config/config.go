// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	APIURL        string
	ListenAddr    string
	DBPath        string
	CheckInterval time.Duration
	TokenTTL      time.Duration
	SecretKey     []byte // 32-byte credential encryption key; nil disables encryption at rest.
}

// Load reads configuration from environment variables and returns a validated
// Config. TASKDECK_API_URL is required. Optional variables with defaults:
// TASKDECK_LISTEN_ADDR (127.0.0.1:8080), TASKDECK_DB_PATH (taskdeck.db),
// TASKDECK_CHECK_INTERVAL (60s), TASKDECK_TOKEN_TTL (30m). TASKDECK_SECRET_KEY
// is an optional hex-encoded 32-byte key for encrypting the stored credential.
func Load() (*Config, error) {
	apiURL := os.Getenv("TASKDECK_API_URL")
	if apiURL == "" {
		return nil, errors.New("TASKDECK_API_URL is required")
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("TASKDECK_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "taskdeck.db"
	if v, ok := os.LookupEnv("TASKDECK_DB_PATH"); ok {
		dbPath = v
	}

	checkInterval := 60 * time.Second
	if v, ok := os.LookupEnv("TASKDECK_CHECK_INTERVAL"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("TASKDECK_CHECK_INTERVAL has invalid duration %q: %w", v, err)
		}
		checkInterval = parsed
	}

	tokenTTL := 30 * time.Minute
	if v, ok := os.LookupEnv("TASKDECK_TOKEN_TTL"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("TASKDECK_TOKEN_TTL has invalid duration %q: %w", v, err)
		}
		tokenTTL = parsed
	}

	var secretKey []byte
	if v, ok := os.LookupEnv("TASKDECK_SECRET_KEY"); ok && v != "" {
		decoded, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("TASKDECK_SECRET_KEY is not valid hex: %w", err)
		}
		if len(decoded) != 32 {
			return nil, fmt.Errorf("TASKDECK_SECRET_KEY must decode to 32 bytes, got %d", len(decoded))
		}
		secretKey = decoded
	}

	return &Config{
		APIURL:        apiURL,
		ListenAddr:    listenAddr,
		DBPath:        dbPath,
		CheckInterval: checkInterval,
		TokenTTL:      tokenTTL,
		SecretKey:     secretKey,
	}, nil
}
