package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks that the configuration carries everything the
// environment requires. The AI key is only demanded in production; a
// development instance without it simply runs with the assistant disabled.
func ValidateConfig(cfg *Config) error {
	var errors []string

	required := map[string]string{
		"SERVER_PORT": cfg.ServerPort,
		"DB_HOST":     cfg.DBHost,
		"DB_PORT":     cfg.DBPort,
		"DB_USER":     cfg.DBUser,
		"DB_NAME":     cfg.DBName,
		"REDIS_HOST":  cfg.RedisHost,
		"REDIS_PORT":  cfg.RedisPort,
	}
	for name, value := range required {
		if value == "" {
			errors = append(errors, fmt.Sprintf("required configuration %s is not set", name))
		}
	}

	if IsProduction() {
		if cfg.DBPassword == "" {
			errors = append(errors, "db_password secret is required in production")
		}
		if cfg.AIAPIKey == "" {
			errors = append(errors, "ai_api_key secret is required in production")
		}
	}

	if cfg.SnapshotFreshness < 0 {
		errors = append(errors, "snapshot freshness window must not be negative")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}
	return nil
}
