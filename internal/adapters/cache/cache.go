// Package cache stores per-team injury reports with TTL, stale fallback
// and single-flight refresh.
//
// Entry lifecycle per team key:
//
//	NoData -> Fresh (successful fetch)
//	Fresh  -> Stale (TTL elapses)
//	Stale  -> Fresh (successful refresh) or Expired (hard ceiling elapses)
//	Expired behaves exactly like NoData.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hooplens/eloedge/internal/domain/model"
	"github.com/hooplens/eloedge/pkg/logger"
	"github.com/hooplens/eloedge/pkg/metrics"
)

// Default cache configuration constants.
const (
	defaultTTL         = 4 * time.Hour
	defaultHardCeiling = 24 * time.Hour
)

// State classifies a lookup result. Expired entries surface as StateMiss.
type State string

// Lookup outcomes.
const (
	StateFresh State = "fresh"
	StateStale State = "stale"
	StateMiss  State = "miss"
)

// Loader fetches the league-wide report set. The cache calls it under a
// single-flight guard; failures leave existing entries untouched.
type Loader func(ctx context.Context) (map[model.TeamID]model.TeamInjuryReport, error)

// SnapshotStore persists reports across restarts. Persistence failures are
// logged and counted, never propagated to the caller.
type SnapshotStore interface {
	Save(ctx context.Context, report model.TeamInjuryReport, expiry time.Time) error
	LoadAll(ctx context.Context) ([]model.TeamInjuryReport, error)
}

// entry is one cached report. expiry is derived from FetchedAt + TTL at
// Put time, never set independently.
type entry struct {
	report model.TeamInjuryReport
	expiry time.Time
}

// Cache is a concurrency-safe team report store. Reads take a shared lock;
// writes for the same key are linearized through the write lock, and
// refreshes collapse through a singleflight group.
type Cache struct {
	mu      sync.RWMutex
	entries map[model.TeamID]entry

	ttl         time.Duration
	hardCeiling time.Duration
	now         func() time.Time

	group     singleflight.Group
	snapshots SnapshotStore
	logger    logger.Logger
}

// New creates a cache with configuration options.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries:     make(map[model.TeamID]entry),
		ttl:         defaultTTL,
		hardCeiling: defaultHardCeiling,
		now:         time.Now,
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logger.Get().Named("cache")
	}

	return c
}

// stateOf classifies an entry at the given instant.
func (c *Cache) stateOf(e entry, at time.Time) State {
	age := at.Sub(e.report.FetchedAt)
	switch {
	case age <= c.ttl:
		return StateFresh
	case age <= c.hardCeiling:
		return StateStale
	default:
		return StateMiss
	}
}

// Get returns the cached report for a team and its state. A report is
// returned for Fresh and Stale; Miss returns the zero report.
func (c *Cache) Get(teamID model.TeamID) (model.TeamInjuryReport, State) {
	c.mu.RLock()
	e, ok := c.entries[teamID]
	c.mu.RUnlock()

	if !ok {
		metrics.RecordCacheLookup(string(StateMiss))
		return model.TeamInjuryReport{}, StateMiss
	}

	state := c.stateOf(e, c.now())
	metrics.RecordCacheLookup(string(state))
	if state == StateMiss {
		return model.TeamInjuryReport{}, StateMiss
	}
	return e.report, state
}

// Put stores a report, deriving expiry from the report's fetch time, and
// persists it to the snapshot store when one is configured.
func (c *Cache) Put(ctx context.Context, report model.TeamInjuryReport) {
	if report.FetchedAt.IsZero() {
		report.FetchedAt = c.now().UTC()
	}
	e := entry{report: report, expiry: report.FetchedAt.Add(c.ttl)}

	c.mu.Lock()
	c.entries[report.TeamID] = e
	size := len(c.entries)
	c.mu.Unlock()

	metrics.UpdateCacheEntries(size)
	c.persist(ctx, e)
}

// persist writes one entry to the snapshot store, if any.
func (c *Cache) persist(ctx context.Context, e entry) {
	if c.snapshots == nil {
		return
	}
	if err := c.snapshots.Save(ctx, e.report, e.expiry); err != nil {
		metrics.RecordSnapshotSaveError()
		c.logger.Warn(ctx, "snapshot persist failed",
			logger.Int64("team_id", int64(e.report.TeamID)),
			logger.Error(err),
		)
	}
}

// GetOrRefresh returns the freshest available report for a team, invoking
// the loader at most once across concurrent callers when the entry is
// stale or missing. On loader failure the stale entry (if any) is returned
// alongside the error; the previous value is never partially overwritten.
func (c *Cache) GetOrRefresh(ctx context.Context, teamID model.TeamID, loader Loader) (model.TeamInjuryReport, State, error) {
	if report, state := c.Get(teamID); state == StateFresh {
		return report, state, nil
	}

	// League-wide fetch: one flight serves every team key that misses
	// while it is in progress.
	_, err, shared := c.group.Do("league", func() (interface{}, error) {
		reports, err := loader(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRefresh, err)
		}
		c.apply(ctx, teamID, reports)
		return nil, nil
	})
	if shared {
		metrics.RecordRefreshShared()
	}

	if err != nil {
		metrics.RecordRefreshFailure()
		c.mu.RLock()
		e, ok := c.entries[teamID]
		c.mu.RUnlock()
		if ok {
			if state := c.stateOf(e, c.now()); state != StateMiss {
				return e.report, state, err
			}
		}
		return model.TeamInjuryReport{}, StateMiss, err
	}

	c.mu.RLock()
	e, ok := c.entries[teamID]
	c.mu.RUnlock()
	if !ok {
		return model.TeamInjuryReport{}, StateMiss, nil
	}
	return e.report, c.stateOf(e, c.now()), nil
}

// apply commits a successful league fetch. The requested team always ends
// up with an entry: absence from the feed means no listed injuries. A zero
// requested ID marks a league-wide refresh with no specific team.
func (c *Cache) apply(ctx context.Context, requested model.TeamID, reports map[model.TeamID]model.TeamInjuryReport) {
	now := c.now().UTC()
	if _, ok := reports[requested]; requested != 0 && !ok {
		reports[requested] = model.TeamInjuryReport{
			TeamID:    requested,
			Records:   nil,
			FetchedAt: now,
		}
	}
	for _, report := range reports {
		c.Put(ctx, report)
	}
}

// LoadSnapshots seeds the cache from the snapshot store, dropping entries
// already past the hard ceiling. Returns the number of entries loaded.
func (c *Cache) LoadSnapshots(ctx context.Context) (int, error) {
	if c.snapshots == nil {
		return 0, nil
	}

	reports, err := c.snapshots.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load snapshots: %w", err)
	}

	now := c.now()
	loaded := 0
	c.mu.Lock()
	for _, report := range reports {
		if now.Sub(report.FetchedAt) > c.hardCeiling {
			continue
		}
		c.entries[report.TeamID] = entry{report: report, expiry: report.FetchedAt.Add(c.ttl)}
		loaded++
	}
	size := len(c.entries)
	c.mu.Unlock()

	metrics.UpdateCacheEntries(size)
	return loaded, nil
}

// Len returns the number of cached entries, regardless of state.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns cache statistics for monitoring.
func (c *Cache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	fresh, stale, expired := 0, 0, 0
	for _, e := range c.entries {
		switch c.stateOf(e, now) {
		case StateFresh:
			fresh++
		case StateStale:
			stale++
		default:
			expired++
		}
	}

	return map[string]interface{}{
		"total_entries":        len(c.entries),
		"fresh_entries":        fresh,
		"stale_entries":        stale,
		"expired_entries":      expired,
		"ttl_seconds":          c.ttl.Seconds(),
		"hard_ceiling_seconds": c.hardCeiling.Seconds(),
	}
}
