// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hooplens/eloedge/internal/adapters/cache"
	"github.com/hooplens/eloedge/internal/adapters/feed"
	"github.com/hooplens/eloedge/internal/adapters/snapshot"
	"github.com/hooplens/eloedge/internal/config"
	"github.com/hooplens/eloedge/internal/domain/adjust"
	"github.com/hooplens/eloedge/internal/domain/elo"
	"github.com/hooplens/eloedge/internal/domain/model"
	"github.com/hooplens/eloedge/internal/domain/roster"
	"github.com/hooplens/eloedge/pkg/logger"
	"github.com/hooplens/eloedge/pkg/metrics"
)

// FallbackReason explains why a lookup returned the unmodified baseline
// or degraded data. Empty means the adjustment applied normally.
type FallbackReason string

const (
	FallbackNone               FallbackReason = ""
	FallbackDisabled           FallbackReason = "disabled"
	FallbackNoData             FallbackReason = "no_data"
	FallbackStaleRefreshFailed FallbackReason = "stale_refresh_failed"
)

// AdjustedElo is the outcome of a single adjusted-rating lookup.
type AdjustedElo struct {
	TeamID     model.TeamID           `json:"team_id"`
	TeamName   string                 `json:"team_name,omitempty"`
	Baseline   float64                `json:"baseline"`
	Adjusted   float64                `json:"adjusted"`
	Adjustment float64                `json:"adjustment"`
	Fallback   FallbackReason         `json:"fallback,omitempty"`
	CacheState cache.State            `json:"cache_state"`
	Result     model.AdjustmentResult `json:"result"`
}

// Matchup pairs adjusted ratings for two teams with a home win probability.
type Matchup struct {
	Home            AdjustedElo `json:"home"`
	Away            AdjustedElo `json:"away"`
	HomeWinProb     float64     `json:"home_win_probability"`
	HomeCourtPoints float64     `json:"home_court_points"`
}

// Service owns the injury feed, the report cache, and the adjustment
// calculator, and exposes adjusted Elo lookups to the HTTP API.
type Service struct {
	mu sync.RWMutex

	// Core components
	classifier *roster.Classifier
	feedClient *feed.Client
	reports    *cache.Cache
	snapshots  *snapshot.Store
	ratings    *elo.Ratings
	teams      *feed.TeamMapper
	params     adjust.Params

	// Configuration
	cfg *config.Config

	// State
	started bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFeedClient overrides the injury feed client. Used by tests.
func WithFeedClient(c *feed.Client) Option {
	return func(s *Service) {
		if c != nil {
			s.feedClient = c
		}
	}
}

// WithCache overrides the report cache. Used by tests.
func WithCache(c *cache.Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.reports = c
		}
	}
}

// WithRatings seeds baseline Elo ratings.
func WithRatings(r *elo.Ratings) Option {
	return func(s *Service) {
		if r != nil {
			s.ratings = r
		}
	}
}

// WithClassifier overrides the player importance classifier.
func WithClassifier(c *roster.Classifier) Option {
	return func(s *Service) {
		if c != nil {
			s.classifier = c
		}
	}
}

// New constructs a Service from cfg with default components. Options can
// replace individual components before Start wires the rest.
func New(cfg *config.Config, opts ...Option) *Service {
	if cfg == nil {
		cfg = config.New()
	}
	s := &Service{
		cfg:    cfg,
		teams:  feed.NewTeamMapper(),
		stopCh: make(chan struct{}),
		params: adjust.Params{
			BaseMagnitude: cfg.BaseMagnitude,
			MaxCap:        cfg.MaxAdjustmentCap,
			NoiseFloor:    cfg.NoiseFloor,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting adjustment service...")

	if s.classifier == nil {
		s.classifier = roster.New(
			roster.WithMultipliers(tierMultipliers(s.cfg.TierMultipliers)),
		)
	}

	if s.feedClient == nil {
		s.feedClient = feed.New(
			feed.WithBaseURL(s.cfg.FeedURL),
			feed.WithTimeout(s.cfg.FetchTimeout()),
			feed.WithStatusWeights(s.cfg.StatusWeights),
			feed.WithLogger(s.logger.Named("feed")),
		)
	}

	if s.reports == nil {
		cacheOpts := []cache.Option{
			cache.WithTTL(s.cfg.CacheTTL()),
			cache.WithHardCeiling(s.cfg.HardCeiling()),
			cache.WithLogger(s.logger.Named("cache")),
		}
		if s.cfg.SnapshotPath != "" {
			store, err := snapshot.Open(s.cfg.SnapshotPath)
			if err != nil {
				return fmt.Errorf("open snapshot store: %w", err)
			}
			s.snapshots = store
			cacheOpts = append(cacheOpts, cache.WithSnapshotStore(store))
		}
		s.reports = cache.New(cacheOpts...)

		if n, err := s.reports.LoadSnapshots(ctx); err != nil {
			s.logger.Warn(ctx, "snapshot warm start failed", logger.Error(err))
		} else if n > 0 {
			s.logger.Info(ctx, "warm started report cache", logger.Int("teams", n))
		}
	}

	if s.ratings == nil {
		if s.cfg.EloRatingsPath != "" {
			r, err := elo.LoadFile(s.cfg.EloRatingsPath)
			if err != nil {
				return fmt.Errorf("load elo ratings: %w", err)
			}
			s.ratings = r
		} else {
			s.ratings = elo.NewRatings(nil)
		}
	}

	if interval := s.cfg.RefreshInterval(); interval > 0 && s.cfg.FeatureEnabled {
		s.wg.Add(1)
		go s.refreshLoop(interval)
	}

	s.started = true
	s.logger.Info(ctx, "adjustment service started",
		logger.Int("cache_ttl_seconds", s.cfg.CacheTTLSeconds),
		logger.Int("hard_ceiling_seconds", s.cfg.HardCeilingSeconds),
		logger.Float64("base_magnitude", s.cfg.BaseMagnitude),
		logger.Float64("max_adjustment_cap", s.cfg.MaxAdjustmentCap),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping adjustment service...")

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	s.wg.Wait()

	if s.snapshots != nil {
		_ = s.snapshots.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "adjustment service stopped")
}

// refreshLoop proactively refreshes the league report so lookups stay on
// the fresh path. Failures are tolerated; the next tick retries.
func (s *Service) refreshLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), s.cfg.FetchTimeout())
			if _, _, err := s.reports.GetOrRefresh(ctx, 0, s.feedClient.FetchLeague); err != nil {
				s.logger.Warn(ctx, "background refresh failed", logger.Error(err))
			}
			cancel()
		}
	}
}

// AdjustedElo returns baseline Elo minus the injury penalty for teamID.
// A baseline of zero means "use the configured rating for the team".
// The feature flag, a cold cache, or a failed refresh each degrade to a
// well-defined fallback instead of an error.
func (s *Service) AdjustedElo(ctx context.Context, teamID model.TeamID, baseline float64) AdjustedElo {
	if baseline == 0 {
		baseline = s.ratings.Rating(teamID)
	}

	teamName, _ := s.teams.TeamName(teamID)
	out := AdjustedElo{
		TeamID:   teamID,
		TeamName: teamName,
		Baseline: baseline,
		Adjusted: baseline,
	}

	if !s.cfg.FeatureEnabled {
		out.Fallback = FallbackDisabled
		out.CacheState = cache.StateMiss
		metrics.RecordFallback(string(FallbackDisabled))
		return out
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout())
	defer cancel()

	report, state, err := s.reports.GetOrRefresh(fetchCtx, teamID, s.feedClient.FetchLeague)
	out.CacheState = state

	switch {
	case state == cache.StateMiss:
		// Nothing cached and the refresh failed. Baseline passes through.
		out.Fallback = FallbackNoData
		metrics.RecordFallback(string(FallbackNoData))
		if err != nil {
			s.logger.Warn(ctx, "no injury data for team",
				logger.Int64("team_id", int64(teamID)),
				logger.Error(err),
			)
		}
		return out
	case err != nil:
		// Serving stale data because the refresh failed.
		out.Fallback = FallbackStaleRefreshFailed
		metrics.RecordFallback(string(FallbackStaleRefreshFailed))
		s.logger.Warn(ctx, "serving stale injury report",
			logger.Int64("team_id", int64(teamID)),
			logger.Error(err),
		)
	}

	s.noteUnknownPlayers(ctx, report)

	result := adjust.Compute(teamID, report, s.classifier, s.params)
	out.Result = result
	out.Adjustment = result.Capped
	out.Adjusted = baseline + result.Capped

	metrics.RecordAdjustmentComputed(-result.Capped)
	return out
}

// noteUnknownPlayers logs once per record for names outside the roster
// tables. They still score as starters; the log is the audit trail.
func (s *Service) noteUnknownPlayers(ctx context.Context, report model.TeamInjuryReport) {
	for _, rec := range report.Records {
		if s.classifier.Known(rec.PlayerName) {
			continue
		}
		metrics.RecordUnknownPlayer()
		s.logger.Debug(ctx, "player not in roster tables, treated as starter",
			logger.String("player", rec.PlayerName),
			logger.Int64("team_id", int64(report.TeamID)),
		)
	}
}

// TeamReport returns the cached injury report for a team, refreshing if
// needed. Callers get the cache state alongside the data.
func (s *Service) TeamReport(ctx context.Context, teamID model.TeamID) (model.TeamInjuryReport, cache.State, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout())
	defer cancel()
	return s.reports.GetOrRefresh(fetchCtx, teamID, s.feedClient.FetchLeague)
}

// PredictMatchup computes adjusted ratings for both sides and the home
// team's win probability including home-court advantage.
func (s *Service) PredictMatchup(ctx context.Context, homeID, awayID model.TeamID, homeBaseline, awayBaseline float64) Matchup {
	home := s.AdjustedElo(ctx, homeID, homeBaseline)
	away := s.AdjustedElo(ctx, awayID, awayBaseline)

	return Matchup{
		Home:            home,
		Away:            away,
		HomeWinProb:     elo.WinProbability(home.Adjusted, away.Adjusted),
		HomeCourtPoints: elo.HomeCourtAdvantage,
	}
}

// ResolveTeam maps a team name, nickname, or city to its league ID.
func (s *Service) ResolveTeam(name string) (model.TeamID, bool) {
	return s.teams.TeamID(name)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"feature_enabled": s.cfg.FeatureEnabled,
		"started":         s.started,
		"rated_teams":     0,
	}
	if s.ratings != nil {
		stats["rated_teams"] = s.ratings.Len()
	}
	if s.reports != nil {
		stats["cache"] = s.reports.Stats()
	}
	return stats
}

func tierMultipliers(raw map[string]float64) map[roster.Tier]float64 {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[roster.Tier]float64, len(raw))
	for tier, mult := range raw {
		out[roster.Tier(tier)] = mult
	}
	return out
}
