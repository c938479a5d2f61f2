package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingAPIKey means the OpenWeatherMap credential is absent. This is
// fatal at startup, not per-request.
var ErrMissingAPIKey = errors.New("OPENWEATHER_API_KEY is required")

type AppConfig struct {
	// OpenWeatherAPIKey authenticates both the weather and geocoding calls.
	OpenWeatherAPIKey string

	// GoogleGeocoderKey, when set, switches geocoding to Google Maps.
	GoogleGeocoderKey string

	// CacheTTL is the time-to-live hint supplied with every cache write.
	CacheTTL time.Duration

	// HTTPTimeout bounds each outbound request.
	HTTPTimeout time.Duration

	// MaxRetries caps backoff retries on retryable upstream failures.
	MaxRetries int

	// DetailedLogging enables DEBUG lines.
	DetailedLogging bool

	Port string
}

// Load reads configuration from environment with sensible defaults. A .env
// file is honored when present.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	if cfg.OpenWeatherAPIKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg.GoogleGeocoderKey = os.Getenv("GOOGLE_GEOCODER_API_KEY")

	ttl, err := getenvDuration("CACHE_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.CacheTTL = ttl

	timeout, err := getenvDuration("HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	cfg.MaxRetries = getenvInt("MAX_RETRIES", 3)
	cfg.DetailedLogging = getenvBool("DETAILED_LOGGING", false)
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
