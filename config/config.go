package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application.
type Config struct {
	// Admin HTTP surface
	Host     string
	HTTPPort string

	// Port range that game sessions are allocated from
	SessionPortMin int
	SessionPortMax int

	// Sqlite database file
	DBPath string

	Environment string
}

// Load reads configuration from the environment, with a .env file if one
// exists.
func Load() Config {
	godotenv.Load()

	return Config{
		Host:           getEnv("SUPEREGO_HOST", "0.0.0.0"),
		HTTPPort:       getEnv("SUPEREGO_HTTP_PORT", "8080"),
		SessionPortMin: getEnvInt("SUPEREGO_SESSION_PORT_MIN", 9000),
		SessionPortMax: getEnvInt("SUPEREGO_SESSION_PORT_MAX", 9100),
		DBPath:         getEnv("SUPEREGO_DB_PATH", "superego.db"),
		Environment:    getEnv("ENV", "development"),
	}
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
