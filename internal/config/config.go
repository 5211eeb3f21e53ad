package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	DefaultHost           = "0.0.0.0"
	DefaultPort           = 5000
	DefaultDBFile         = "feedback.db"
	DefaultFeedbackDomain = "tatamotors.com"
	// DefaultLinksLimit is also the ceiling for LINKS_LIMIT.
	DefaultLinksLimit     = 100
)

// Config is loaded once at startup and never mutated afterwards.
type Config struct {
	Host           string
	Port           int
	DBPath         string
	FeedbackDomain string
	LinksLimit     int
	Env            string
	LogLevel       string
}

// Load reads an optional .env file, then environment variables, falling back
// to defaults for anything unset.
func Load() *Config {
	// Missing .env is fine, vars may be set directly
	_ = godotenv.Load()

	return &Config{
		Host:           getEnv("HOST", DefaultHost),
		Port:           getEnvInt("PORT", DefaultPort),
		DBPath:         getEnv("DB_PATH", defaultDBPath()),
		FeedbackDomain: getEnv("FEEDBACK_DOMAIN", DefaultFeedbackDomain),
		LinksLimit:     linksLimit(),
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

// Addr is the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// defaultDBPath places the database file next to the running executable.
func defaultDBPath() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultDBFile
	}
	return filepath.Join(filepath.Dir(exe), DefaultDBFile)
}

// linksLimit lets LINKS_LIMIT lower the /links cap but never raise it.
func linksLimit() int {
	n := getEnvInt("LINKS_LIMIT", DefaultLinksLimit)
	if n > DefaultLinksLimit {
		log.Warn().Int("value", n).Int("max", DefaultLinksLimit).Msg("LINKS_LIMIT above maximum, clamping")
		return DefaultLinksLimit
	}
	return n
}

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
	if err != nil || n <= 0 {
		log.Warn().Str("key", key).Str("value", value).Int("default", fallback).
			Msg("invalid integer in environment, using default")
		return fallback
	}
	return n
}
