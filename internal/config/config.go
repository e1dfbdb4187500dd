// Package config loads server settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds everything the server needs at startup. DatabaseURL and
// RedisURL are optional; the server runs without persistence when they are
// empty.
type Config struct {
	Addr        string
	BaseURL     string
	DatabaseURL string
	RedisURL    string
	LogLevel    string
}

// Load reads .env if present, then the environment. Missing optional values
// fall back to defaults suitable for local play.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not read .env")
	}
	return Config{
		Addr:        getenv("PATIENCE_ADDR", ":8080"),
		BaseURL:     getenv("PATIENCE_BASE_URL", "http://localhost:8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		LogLevel:    getenv("PATIENCE_LOG_LEVEL", "info"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LogrusLevel parses the configured level, falling back to info.
func (c Config) LogrusLevel() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
