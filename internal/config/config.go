// Package config provides environment-driven configuration for relgraph.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/relgraphio/relgraph/internal/models"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all application configuration values.
type Config struct {
	DatabaseURL Secret
	Port        string
	ListenHost  string
	CORSOrigins []string
	LogLevel    string
	SchemasFile string
	Limits      models.Limits
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: Secret(envOrDefault("DATABASE_URL", "")),
		Port:        envOrDefault("PORT", "3040"),
		ListenHost:  envOrDefault("LISTEN_HOST", "127.0.0.1"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		SchemasFile: envOrDefault("SCHEMAS_FILE", ""),
	}

	limits, err := loadLimits()
	if err != nil {
		return nil, err
	}

	cfg.Limits = limits

	origins := envOrDefault("CORS_ORIGINS", "http://localhost:3002")
	cfg.CORSOrigins = strings.Split(origins, ",")

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// loadLimits builds the engine safety limits from environment overrides
// on top of the stock defaults.
func loadLimits() (models.Limits, error) {
	limits := models.DefaultLimits()

	overrides := []struct {
		env    string
		target *int
	}{
		{"MAX_DEPTH", &limits.MaxDepth},
		{"MAX_NODES", &limits.MaxNodes},
		{"MAX_EDGES_PER_FETCH", &limits.MaxEdgesPerFetch},
		{"MAX_PATH_DEPTH", &limits.MaxPathDepth},
		{"MAX_ANALYZER_NODES", &limits.MaxAnalyzerNodes},
		{"SAMPLE_DEPTH", &limits.SampleDepth},
	}

	for _, o := range overrides {
		raw := os.Getenv(o.env)
		if raw == "" {
			continue
		}

		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return limits, fmt.Errorf("%s must be a positive integer, got %q", o.env, raw)
		}

		*o.target = v
	}

	if raw := os.Getenv("HUB_FACTOR"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 1 {
			return limits, fmt.Errorf("HUB_FACTOR must be a number above 1, got %q", raw)
		}

		limits.HubFactor = v
	}

	if raw := os.Getenv("GUARD_MARGIN"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 1 {
			return limits, fmt.Errorf("GUARD_MARGIN must be a number of at least 1, got %q", raw)
		}

		limits.GuardMargin = v
	}

	return limits, limits.Validate()
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
