package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Scraper   ScraperConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Store     StoreConfig
	Log       LogConfig
	Webhook   WebhookConfig
}

// ServerConfig controls the HTTP API server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// MaxPages is the page pool capacity (max concurrent tabs).
	MaxPages int // default: 4

	// UserAgent overrides the User-Agent header sent with all
	// navigations. Empty means the browser default.
	UserAgent string

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Proxy is the proxy URL for all requests.
	Proxy string
}

// ScraperConfig controls fetching behavior.
type ScraperConfig struct {
	// DefaultTimeout is the per-scrape timeout.
	DefaultTimeout time.Duration // default: 30s

	// MaxTimeout is the maximum allowed timeout from the client.
	MaxTimeout time.Duration // default: 120s

	// SettleDelay is the window the DOM must stay unchanged before the
	// rendered page is considered settled.
	SettleDelay time.Duration // default: 300ms

	// BlockedResourceTypes lists resource types never fetched.
	// default: ["Image", "Font", "Media"]
	BlockedResourceTypes []string

	// Stealth enables anti-bot-detection evasions.
	Stealth bool // default: true
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// StoreConfig controls the in-memory product and job store.
type StoreConfig struct {
	// MaxProducts is the maximum number of retained products.
	MaxProducts int // default: 1000

	// TTL is how long products and finished jobs are retained.
	TTL time.Duration // default: 24h
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"

	// File is the log file path. Empty disables the file sink and logs
	// go to stdout only.
	File string // default: "logs/pantryscan.log"

	// Rotation settings for the file sink.
	MaxSizeMB  int // default: 50
	MaxBackups int // default: 3
	MaxAgeDays int // default: 14
}

// WebhookConfig controls job completion notifications.
type WebhookConfig struct {
	// Secret signs webhook payloads with HMAC-SHA256 when non-empty.
	Secret string
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("PANTRYSCAN_HOST", "0.0.0.0"),
			Port: envIntOr("PANTRYSCAN_PORT", 8080),
			Mode: envOr("PANTRYSCAN_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("PANTRYSCAN_HEADLESS", true),
			MaxPages:   envIntOr("PANTRYSCAN_MAX_PAGES", 4),
			UserAgent:  os.Getenv("PANTRYSCAN_USER_AGENT"),
			NoSandbox:  envBoolOr("PANTRYSCAN_NO_SANDBOX", false),
			BrowserBin: os.Getenv("PANTRYSCAN_BROWSER_BIN"),
			Proxy:      os.Getenv("PANTRYSCAN_PROXY"),
		},
		Scraper: ScraperConfig{
			DefaultTimeout: envDurationOr("PANTRYSCAN_DEFAULT_TIMEOUT", 30*time.Second),
			MaxTimeout:     envDurationOr("PANTRYSCAN_MAX_TIMEOUT", 120*time.Second),
			SettleDelay:    envDurationOr("PANTRYSCAN_SETTLE_DELAY", 300*time.Millisecond),
			BlockedResourceTypes: envSliceOr("PANTRYSCAN_BLOCKED_RESOURCES", []string{
				"Image", "Font", "Media",
			}),
			Stealth: envBoolOr("PANTRYSCAN_STEALTH", true),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("PANTRYSCAN_AUTH_ENABLED", false),
			APIKeys: envSliceOr("PANTRYSCAN_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("PANTRYSCAN_RATE_RPS", 5.0),
			Burst:             envIntOr("PANTRYSCAN_RATE_BURST", 10),
		},
		Store: StoreConfig{
			MaxProducts: envIntOr("PANTRYSCAN_STORE_MAX_PRODUCTS", 1000),
			TTL:         envDurationOr("PANTRYSCAN_STORE_TTL", 24*time.Hour),
		},
		Log: LogConfig{
			Level:      envOr("PANTRYSCAN_LOG_LEVEL", "info"),
			Format:     envOr("PANTRYSCAN_LOG_FORMAT", "text"),
			File:       envOr("PANTRYSCAN_LOG_FILE", "logs/pantryscan.log"),
			MaxSizeMB:  envIntOr("PANTRYSCAN_LOG_MAX_SIZE_MB", 50),
			MaxBackups: envIntOr("PANTRYSCAN_LOG_MAX_BACKUPS", 3),
			MaxAgeDays: envIntOr("PANTRYSCAN_LOG_MAX_AGE_DAYS", 14),
		},
		Webhook: WebhookConfig{
			Secret: os.Getenv("PANTRYSCAN_WEBHOOK_SECRET"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
