// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer sources.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"github.com/hooplens/eloedge/internal/adapters/feed"
	"github.com/hooplens/eloedge/internal/domain/roster"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9090".
	Addr string `koanf:"addr"`

	// FeatureEnabled toggles injury adjustments. When false every lookup
	// returns the unmodified baseline.
	FeatureEnabled bool `koanf:"feature_enabled"`

	// FeedURL points at the injury feed API root.
	FeedURL string `koanf:"feed_url"`

	// FetchTimeoutSeconds bounds a single feed fetch.
	FetchTimeoutSeconds int `koanf:"fetch_timeout_seconds"`

	// CacheTTLSeconds is how long a cached report stays fresh.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// HardCeilingSeconds is the absolute age limit for stale fallback.
	HardCeilingSeconds int `koanf:"hard_ceiling_seconds"`

	// RefreshIntervalSeconds enables a proactive background refresh when
	// positive. Zero means refresh only on demand.
	RefreshIntervalSeconds int `koanf:"refresh_interval_seconds"`

	// BaseMagnitude is the Elo cost of one fully-out average starter.
	BaseMagnitude float64 `koanf:"base_magnitude"`

	// MaxAdjustmentCap bounds the total penalty magnitude for a team.
	MaxAdjustmentCap float64 `koanf:"max_adjustment_cap"`

	// NoiseFloor zeroes adjustments smaller than this magnitude.
	NoiseFloor float64 `koanf:"noise_floor"`

	// StatusWeights maps injury statuses to miss probabilities in [0, 1].
	StatusWeights map[string]float64 `koanf:"status_weights"`

	// TierMultipliers maps player tiers to importance multipliers.
	TierMultipliers map[string]float64 `koanf:"tier_multipliers"`

	// SnapshotPath is the SQLite file for durable report snapshots.
	// Empty disables persistence.
	SnapshotPath string `koanf:"snapshot_path"`

	// EloRatingsPath is an optional JSON file of team_id -> Elo rating
	// used as baselines when a request does not supply one.
	EloRatingsPath string `koanf:"elo_ratings_path"`
}

// New creates a Config populated with defaults.
func New() *Config {
	c := &Config{
		LogLevel:               "info",
		Addr:                   ":9090",
		FeatureEnabled:         true,
		FeedURL:                "https://site.api.espn.com/apis/site/v2/sports/basketball/nba",
		FetchTimeoutSeconds:    10,
		CacheTTLSeconds:        14_400,
		HardCeilingSeconds:     86_400,
		RefreshIntervalSeconds: 0,
		BaseMagnitude:          20,
		MaxAdjustmentCap:       100,
		NoiseFloor:             5,
		StatusWeights:          feed.DefaultStatusWeights(),
		TierMultipliers: map[string]float64{
			string(roster.TierAllStar): 2.5,
			string(roster.TierStarter): 1.5,
			string(roster.TierBench):   1.0,
		},
		SnapshotPath:   "",
		EloRatingsPath: "",
	}
	return c
}
