package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the coordination service.
type Config struct {
	HTTPPort           string
	DatabasePath       string
	JWTSecret          string
	LogLevel           string
	Env                string
	StrictEmptyResults bool
}

// Load reads configuration from a .env file (if present) and the
// environment. JWT_SECRET has no default and must be set.
func Load() (*Config, error) {
	// Best effort: a missing .env file just means plain env vars.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		DatabasePath:       getEnv("CORDB_PATH", "coordination.db"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Env:                getEnv("ENV", "development"),
		StrictEmptyResults: getEnvAsBool("STRICT_EMPTY_RESULTS", true),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	return cfg, nil
}

// IsDev reports whether the service runs in development mode. Development
// mode enables the token-mint endpoint and human-readable log output.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
