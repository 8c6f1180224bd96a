package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Backend identifies which store implementation the process should construct.
type Backend string

// Supported store backends.
const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// ContactInfo is the fallback channel shown to users when a submission cannot
// be saved, so a lead is never silently lost.
type ContactInfo struct {
	Email string
	Phone string
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port            string
	StoreBackend    Backend
	DatabaseURL     string
	SQLitePath      string
	PhoneRegion     string
	RateLimitSubmit RateLimitConfig
	Contact         ContactInfo
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getEnv("SQLITE_PATH", "data/leads.db"),
		PhoneRegion: getEnv("PHONE_REGION", "US"),
		Contact: ContactInfo{
			Email: getEnv("CONTACT_EMAIL", "contact@adaai.in"),
			Phone: getEnv("CONTACT_PHONE", "+91 93463 17790"),
		},
	}

	backend, err := parseBackend(getEnv("STORE_BACKEND", string(BackendSQLite)))
	if err != nil {
		return nil, err
	}
	cfg.StoreBackend = backend
	if backend == BackendPostgres && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for the postgres backend")
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_SUBMIT", "30/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SUBMIT value: %w", err)
	}
	cfg.RateLimitSubmit = rl

	return cfg, nil
}

func parseBackend(value string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "sqlite":
		return BackendSQLite, nil
	case "postgres", "postgresql", "pg":
		return BackendPostgres, nil
	default:
		return "", fmt.Errorf("unsupported STORE_BACKEND: %s", value)
	}
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}
