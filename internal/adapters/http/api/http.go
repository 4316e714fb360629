// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hooplens/eloedge/internal/adapters/cache"
	service "github.com/hooplens/eloedge/internal/app"
	"github.com/hooplens/eloedge/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// AdjustedElo returns the injury-adjusted rating for a team. A zero
	// baseline means "use the configured rating".
	AdjustedElo(ctx context.Context, teamID model.TeamID, baseline float64) AdjustedElo

	// TeamReport exposes the cached injury report for a team.
	TeamReport(ctx context.Context, teamID model.TeamID) (model.TeamInjuryReport, cache.State, error)

	// PredictMatchup computes both adjusted ratings and a home win probability.
	PredictMatchup(ctx context.Context, homeID, awayID model.TeamID, homeBaseline, awayBaseline float64) Matchup

	// ResolveTeam maps a team name, nickname, or city to its league ID.
	ResolveTeam(name string) (model.TeamID, bool)
}

// AdjustedElo mirrors the read shape returned by adjusted rating lookups.
type AdjustedElo = service.AdjustedElo

// Matchup mirrors the read shape returned by matchup predictions.
type Matchup = service.Matchup

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	metricsHandler  *MetricsHandler
	statsHandler    *StatsHandler
	adjustedHandler *AdjustedEloHandler
	injuriesHandler *InjuriesHandler
	matchupHandler  *MatchupHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		metricsHandler:  NewMetricsHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		adjustedHandler: NewAdjustedEloHandler(deps),
		injuriesHandler: NewInjuriesHandler(deps),
		matchupHandler:  NewMatchupHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.metricsHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/adjusted-elo", MetricsMiddleware(s.adjustedHandler.HandleGetAdjustedElo, "adjusted_elo"))
	mux.HandleFunc("/injuries/", MetricsMiddleware(s.injuriesHandler.HandleGetInjuries, "injuries"))
	mux.HandleFunc("/matchup", MetricsMiddleware(s.matchupHandler.HandleGetMatchup, "matchup"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
