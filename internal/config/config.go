package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many calls are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// SenderConfig identifies the outreach sender.
type SenderConfig struct {
	Email string
	Name  string
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL  string
	JWTSecret    string
	Port         string
	TokenTTL     time.Duration
	EventSinkURL string

	AbstractAPIKey string
	HunterAPIKey   string
	SendGridAPIKey string
	Sender         SenderConfig

	// Provider quota windows enforced by the in-process limiter.
	ProviderLimits map[string]RateLimitConfig

	// Token bucket applied to the enrichment HTTP endpoints.
	RateLimitEnrich RateLimitConfig

	// Pacing between items in batch enrichment and batch send loops.
	BatchEnrichDelay time.Duration
	BatchSendDelay   time.Duration
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret"),
		Port:           getEnv("PORT", "8080"),
		TokenTTL:       parseDuration(getEnv("JWT_TTL", "24h"), 24*time.Hour),
		EventSinkURL:   os.Getenv("EVENT_SINK_URL"),
		AbstractAPIKey: os.Getenv("ABSTRACT_API_KEY"),
		HunterAPIKey:   os.Getenv("HUNTER_API_KEY"),
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		Sender: SenderConfig{
			Email: getEnv("SENDER_EMAIL", "outreach@example.com"),
			Name:  getEnv("SENDER_NAME", "Lead Outreach"),
		},
		BatchEnrichDelay: parseDuration(getEnv("BATCH_ENRICH_DELAY", "2s"), 2*time.Second),
		BatchSendDelay:   parseDuration(getEnv("BATCH_SEND_DELAY", "1s"), time.Second),
	}

	limits := map[string]RateLimitConfig{}
	for envKey, service := range map[string]string{
		"HUNTER_RATE_LIMIT":   "hunter",
		"ABSTRACT_RATE_LIMIT": "abstract",
		"SENDGRID_RATE_LIMIT": "sendgrid",
	} {
		raw := os.Getenv(envKey)
		if raw == "" {
			continue
		}
		rl, err := ParseRateLimit(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", envKey, err)
		}
		limits[service] = rl
	}
	cfg.ProviderLimits = limits

	rl, err := ParseRateLimit(getEnv("RATE_LIMIT_ENRICH", "10/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_ENRICH value: %w", err)
	}
	cfg.RateLimitEnrich = rl

	return cfg, nil
}

// ParseRateLimit parses a "<requests>/<interval>" quota string. Besides the
// usual second/minute/hour units it accepts day and month, which is how the
// enrichment providers express their free-tier quotas.
func ParseRateLimit(value string) (RateLimitConfig, error) {
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
	case "d", "day", "days":
		interval = 24 * time.Hour
	case "mo", "month", "months":
		interval = 30 * 24 * time.Hour
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
