package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds all application configuration loaded from environment
// variables.
type Config struct {
	API  APIConfig
	Push PushConfig
	Auth AuthConfig
}

// APIConfig holds remote API settings.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// PushConfig holds push-channel settings.
type PushConfig struct {
	URL              string
	MinBackoff       time.Duration
	MaxBackoff       time.Duration
	RefetchPerSecond float64
	RefetchBurst     int
}

// AuthConfig holds session credentials.
type AuthConfig struct {
	Token string
}

// Load reads configuration from environment variables. The API base URL
// has no default; everything else is tuned for interactive use.
func Load() (*Config, error) {
	timeout, err := getEnvDuration("CREWBOARD_API_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	minBackoff, err := getEnvDuration("CREWBOARD_PUSH_MIN_BACKOFF", time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	maxBackoff, err := getEnvDuration("CREWBOARD_PUSH_MAX_BACKOFF", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	refetchPerSecond, err := getEnvFloat("CREWBOARD_PUSH_REFETCH_PER_SECOND", 1)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	refetchBurst, err := getEnvInt("CREWBOARD_PUSH_REFETCH_BURST", 2)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL: getEnv("CREWBOARD_API_BASE_URL", ""),
			Timeout: timeout,
		},
		Push: PushConfig{
			URL:              getEnv("CREWBOARD_PUSH_URL", ""),
			MinBackoff:       minBackoff,
			MaxBackoff:       maxBackoff,
			RefetchPerSecond: refetchPerSecond,
			RefetchBurst:     refetchBurst,
		},
		Auth: AuthConfig{
			Token: getEnv("CREWBOARD_TOKEN", ""),
		},
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// validate checks required fields and value bounds.
func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return errors.New("CREWBOARD_API_BASE_URL is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("CREWBOARD_API_BASE_URL is not a valid URL: %q", c.API.BaseURL)
	}
	if u.Scheme == "http" {
		log.Warn().Msg("CREWBOARD_API_BASE_URL uses plain http; the bearer token travels unencrypted")
	}

	if c.Push.URL != "" {
		pu, pErr := url.Parse(c.Push.URL)
		if pErr != nil || (pu.Scheme != "ws" && pu.Scheme != "wss") {
			return fmt.Errorf("CREWBOARD_PUSH_URL must be a ws:// or wss:// URL, got %q", c.Push.URL)
		}
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("CREWBOARD_API_TIMEOUT must be positive, got %s", c.API.Timeout)
	}
	if c.Push.MinBackoff <= 0 {
		return fmt.Errorf("CREWBOARD_PUSH_MIN_BACKOFF must be positive, got %s", c.Push.MinBackoff)
	}
	if c.Push.MaxBackoff < c.Push.MinBackoff {
		return fmt.Errorf("CREWBOARD_PUSH_MAX_BACKOFF must be >= min backoff, got %s", c.Push.MaxBackoff)
	}
	if c.Push.RefetchPerSecond <= 0 {
		return fmt.Errorf("CREWBOARD_PUSH_REFETCH_PER_SECOND must be positive, got %g", c.Push.RefetchPerSecond)
	}
	if c.Push.RefetchBurst < 1 {
		return fmt.Errorf("CREWBOARD_PUSH_REFETCH_BURST must be >= 1, got %d", c.Push.RefetchBurst)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as float: %w", key, v, err)
	}
	return f, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}
