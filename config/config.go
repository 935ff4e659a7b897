package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the report generator service
type Config struct {
	// Server configuration
	Port string

	// Asset resolution configuration
	FetchTimeout         time.Duration
	FetchRetries         int
	MaxConcurrentFetches int64
	MaxImageDimension    int
	UserAgent            string

	// Currency formatting
	CurrencyLocale string
	CurrencySymbol string

	// Property map configuration
	OSMTileURL string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		// Server defaults
		Port: getEnv("PORT", "8080"),

		// Asset resolution defaults (8s timeout matches the OSM tile client,
		// one retry before falling back to the placeholder)
		FetchTimeout:         getDurationEnv("FETCH_TIMEOUT", 8*time.Second),
		FetchRetries:         getIntEnv("FETCH_RETRIES", 1),
		MaxConcurrentFetches: int64(getIntEnv("MAX_CONCURRENT_FETCHES", 16)),
		MaxImageDimension:    getIntEnv("MAX_IMAGE_DIMENSION", 1024),
		UserAgent:            getEnv("FETCH_USER_AGENT", "ReportGenerator/1.0"),

		// Currency defaults
		CurrencyLocale: getEnv("CURRENCY_LOCALE", "en-US"),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "$"),

		// Property map defaults
		OSMTileURL: getEnv("OSM_TILE_URL", "https://tile.openstreetmap.org/%d/%d/%d.png"),

		// Logging defaults
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv gets an integer environment variable with a default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv gets a duration environment variable with a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
