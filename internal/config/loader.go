package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if ELOEDGE_CONFIG is set
//  3. env (prefix ELOEDGE_)
func Load(ctx context.Context) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base := New()

	k := koanf.New(".")

	if path := os.Getenv("ELOEDGE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: ELOEDGE_ADDR, ELOEDGE_CACHE_TTL_SECONDS, ...
	// Map env keys like ELOEDGE_CACHE_TTL_SECONDS -> cache_ttl_seconds.
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("ELOEDGE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "eloedge_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations that would silently misbehave at
// runtime. Called by Load; exported so hand-built configs can reuse it.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.FeedURL == "" {
		return fmt.Errorf("%w: feed_url must not be empty", ErrInvalidConfig)
	}
	if c.FetchTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: fetch_timeout_seconds must be positive", ErrInvalidConfig)
	}
	if c.CacheTTLSeconds <= 0 {
		return fmt.Errorf("%w: cache_ttl_seconds must be positive", ErrInvalidConfig)
	}
	if c.HardCeilingSeconds < c.CacheTTLSeconds {
		return fmt.Errorf("%w: hard_ceiling_seconds must be >= cache_ttl_seconds", ErrInvalidConfig)
	}
	if c.RefreshIntervalSeconds < 0 {
		return fmt.Errorf("%w: refresh_interval_seconds must not be negative", ErrInvalidConfig)
	}
	if c.BaseMagnitude <= 0 {
		return fmt.Errorf("%w: base_magnitude must be positive", ErrInvalidConfig)
	}
	if c.MaxAdjustmentCap <= 0 {
		return fmt.Errorf("%w: max_adjustment_cap must be positive", ErrInvalidConfig)
	}
	if c.NoiseFloor < 0 {
		return fmt.Errorf("%w: noise_floor must not be negative", ErrInvalidConfig)
	}
	for status, weight := range c.StatusWeights {
		if weight < 0 || weight > 1 {
			return fmt.Errorf("%w: status weight %q=%v outside [0, 1]", ErrInvalidConfig, status, weight)
		}
	}
	for tier, mult := range c.TierMultipliers {
		if mult <= 0 {
			return fmt.Errorf("%w: tier multiplier %q=%v must be positive", ErrInvalidConfig, tier, mult)
		}
	}
	return nil
}

// FetchTimeout returns FetchTimeoutSeconds as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// CacheTTL returns CacheTTLSeconds as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// HardCeiling returns HardCeilingSeconds as a duration.
func (c *Config) HardCeiling() time.Duration {
	return time.Duration(c.HardCeilingSeconds) * time.Second
}

// RefreshInterval returns RefreshIntervalSeconds as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}
