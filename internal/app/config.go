package app

import (
	"os"
	"strconv"
	"time"

	"github.com/hackmatehq/hackmate/internal/semantic"
)

type Config struct {
	JWTSecret string // Required: HMAC secret for session tokens
	Issuer    string // Optional: issuer claim for tokens (default: hackmate)

	DatabaseFile      string        // Optional: path to SQLite database file (default: ./hackmate.db)
	SimilarityURL     string        // Optional: base URL of the semantic similarity sidecar; empty disables hybrid scoring
	SimilarityTimeout time.Duration // Optional: per-call timeout for the similarity sidecar (default: 2s)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		JWTSecret:           os.Getenv("HACKMATE_JWT_SECRET"),
		Issuer:              getEnvOrDefault("HACKMATE_ISSUER", "hackmate"),
		DatabaseFile:        getEnvOrDefault("HACKMATE_DATABASE_FILE", "hackmate.db"),
		SimilarityURL:       os.Getenv("HACKMATE_SIMILARITY_URL"), // Optional: hybrid scoring stays off when unset
		SimilarityTimeout:   getEnvDurationOrDefault("HACKMATE_SIMILARITY_TIMEOUT", semantic.DefaultTimeout),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are read as seconds.
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
