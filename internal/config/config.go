package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// RedisConfig holds connection settings for the optional Redis cache backend.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port            string
	PlacesAPIKey    string
	GeminiAPIKey    string
	GeminiModel     string
	MinRating       float64
	SearchRadiusM   int
	HTTPTimeout     time.Duration
	CacheBackend    string
	CacheTTL        time.Duration
	Redis           RedisConfig
	RateLimitSearch RateLimitConfig
	LogLevel        string
	LogFormat       string
}

// Search radius bounds, in meters.
const (
	MinSearchRadiusM = 500
	MaxSearchRadiusM = 50000
)

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		PlacesAPIKey:  os.Getenv("PLACES_API_KEY"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		MinRating:     parseFloat(getEnv("MIN_RATING", "3.5"), 3.5),
		SearchRadiusM: parseInt(getEnv("SEARCH_RADIUS_M", "3000"), 3000),
		HTTPTimeout:   parseDuration(getEnv("HTTP_TIMEOUT", "30s"), 30*time.Second),
		CacheBackend:  strings.ToLower(getEnv("CACHE_BACKEND", "memory")),
		CacheTTL:      parseDuration(getEnv("CACHE_TTL", "1h"), time.Hour),
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if cfg.PlacesAPIKey == "" {
		return nil, fmt.Errorf("PLACES_API_KEY is required")
	}

	if cfg.MinRating < 0 || cfg.MinRating > 5 {
		return nil, fmt.Errorf("MIN_RATING must be between 0 and 5, got %v", cfg.MinRating)
	}

	cfg.SearchRadiusM = ClampRadius(cfg.SearchRadiusM)

	switch cfg.CacheBackend {
	case "memory", "redis":
	default:
		return nil, fmt.Errorf("unsupported CACHE_BACKEND value: %s", cfg.CacheBackend)
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_SEARCH", "10/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SEARCH value: %w", err)
	}
	cfg.RateLimitSearch = rl

	return cfg, nil
}

// ClampRadius bounds a search radius to the range the places API accepts.
func ClampRadius(radius int) int {
	if radius < MinSearchRadiusM {
		return MinSearchRadiusM
	}
	if radius > MaxSearchRadiusM {
		return MaxSearchRadiusM
	}
	return radius
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

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return fallback
	}
	return d
}

func parseFloat(input string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return fallback
	}
	return f
}

func parseInt(input string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return fallback
	}
	return n
}
