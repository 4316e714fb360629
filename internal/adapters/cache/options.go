// Package cache stores per-team injury reports with TTL and stale fallback.
package cache

import (
	"time"

	"github.com/hooplens/eloedge/pkg/logger"
)

// Option applies a configuration option to the Cache.
type Option func(*Cache)

// WithTTL sets the freshness window.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithHardCeiling sets the staleness ceiling beyond which entries expire.
func WithHardCeiling(ceiling time.Duration) Option {
	return func(c *Cache) {
		if ceiling > 0 {
			c.hardCeiling = ceiling
		}
	}
}

// WithClock injects a time source. Used by tests to drive state transitions.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithSnapshotStore enables durable persistence of cached reports.
func WithSnapshotStore(store SnapshotStore) Option {
	return func(c *Cache) {
		c.snapshots = store
	}
}

// WithLogger sets a custom logger for the cache.
func WithLogger(log logger.Logger) Option {
	return func(c *Cache) {
		if log != nil {
			c.logger = log
		}
	}
}
