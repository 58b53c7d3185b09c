// Package config loads stream configuration for the order book CLI: the
// top-N capacity, the fixed dialect, input/output paths, and the optional
// audit sink DSN. Startup applies godotenv.Load() non-fatally before parsing
// the YAML file that carries the structured fields.
package config

import (
	"fmt"
	"os"
	"strings"

	"order-matching-engine/internal/dispatch"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// StreamConfig is the top-N capacity and dialect a stream runs with, plus
// the host-level fields (paths, audit DSN env var) needed to actually run
// one.
type StreamConfig struct {
	Capacity    int    `yaml:"capacity"`
	Dialect     string `yaml:"dialect"` // "A", "B", or "C"
	Input       string `yaml:"input"`
	Output      string `yaml:"output"`
	TickSize    string `yaml:"tick_size"`
	AuditDSNEnv string `yaml:"audit_dsn_env"` // env var carrying the audit sink DSN; default DB_DSN
	WarnCrossed bool   `yaml:"warn_crossed_book"`
}

// Load loads a .env file into the process environment via godotenv (best
// effort: a missing .env file is not fatal), then reads path as YAML. No
// YAML field is overridden from the environment; the environment is only
// consulted later by AuditDSN.
func Load(path string) (*StreamConfig, error) {
	if err := godotenv.Load(); err != nil {
		// Non-fatal: an absent .env is the common case outside development.
		_ = err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg StreamConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if cfg.TickSize == "" {
		cfg.TickSize = "1"
	}
	if cfg.AuditDSNEnv == "" {
		cfg.AuditDSNEnv = "DB_DSN"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects a negative capacity and an unrecognized dialect before
// construction; an invalid capacity should fail fast rather than surface
// as a confusing error mid-stream.
func (c *StreamConfig) Validate() error {
	if c.Capacity < 0 {
		return fmt.Errorf("config: capacity must be non-negative, got %d", c.Capacity)
	}
	switch strings.ToUpper(c.Dialect) {
	case "A", "B", "C":
	default:
		return fmt.Errorf("config: dialect must be one of A, B, C, got %q", c.Dialect)
	}
	return nil
}

// ResolveDialect maps the configured dialect letter to a dispatch.Dialect.
func (c *StreamConfig) ResolveDialect() dispatch.Dialect {
	switch strings.ToUpper(c.Dialect) {
	case "B":
		return dispatch.DialectB
	case "C":
		return dispatch.DialectC
	default:
		return dispatch.DialectA
	}
}

// AuditDSN reads the audit sink's DSN from the configured environment
// variable. An empty result means the audit sink is disabled.
func (c *StreamConfig) AuditDSN() string {
	return os.Getenv(c.AuditDSNEnv)
}
