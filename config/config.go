package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration (snapshot cache + chat history)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Snapshot freshness window; zero means the built-in default.
	SnapshotFreshness time.Duration

	// AI assistant configuration
	AIAPIKey string
	AIAPIURL string
	AIModel  string
}

// LoadConfig creates a Config from environment variables, falling back to
// Docker secrets for sensitive values.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getenv("SERVER_PORT", "8080"),
		ServerHost: getenv("SERVER_HOST", "0.0.0.0"),

		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     secret("DB_USER", "db_user"),
		DBPassword: secret("DB_PASSWORD", "db_password"),
		DBName:     getenv("DB_NAME", "recipebook"),
		DBSSLMode:  getenv("DB_SSL_MODE", "disable"),

		RedisHost:     getenv("REDIS_HOST", "localhost"),
		RedisPort:     getenv("REDIS_PORT", "6379"),
		RedisPassword: secret("REDIS_PASSWORD", "redis_password"),
		RedisURL:      os.Getenv("REDIS_URL"),

		AIAPIKey: secret("AI_API_KEY", "ai_api_key"),
		AIAPIURL: getenv("AI_API_URL", "https://api.deepseek.com/v1/chat/completions"),
		AIModel:  getenv("AI_MODEL", "deepseek-chat"),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	if winStr := os.Getenv("SNAPSHOT_FRESHNESS_SECONDS"); winStr != "" {
		secs, err := strconv.Atoi(winStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SNAPSHOT_FRESHNESS_SECONDS value %q: %w", winStr, err)
		}
		cfg.SnapshotFreshness = time.Duration(secs) * time.Second
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getenv returns the environment variable or a fallback.
func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// secret resolves a sensitive value: the environment variable wins, then a
// *_FILE variable pointing at a file, then the Docker secret of the given
// name; empty when none is present.
func secret(envKey, secretName string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if path := os.Getenv(envKey + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return readSecret(secretName)
}

// readSecret reads a Docker secret from the secrets directory.
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
