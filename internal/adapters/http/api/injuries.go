// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hooplens/eloedge/internal/adapters/cache"
	"github.com/hooplens/eloedge/internal/domain/model"
)

// InjuriesHandler handles injury report lookups.
type InjuriesHandler struct {
	deps Dependencies
}

// NewInjuriesHandler creates a new injuries handler.
func NewInjuriesHandler(deps Dependencies) *InjuriesHandler {
	return &InjuriesHandler{deps: deps}
}

type injuriesResponse struct {
	Report model.TeamInjuryReport `json:"report"`
	State  cache.State            `json:"cache_state"`
	Stale  bool                   `json:"stale"`
}

// HandleGetInjuries handles GET /injuries/{team} requests. The path
// segment accepts a numeric league ID or a team name.
func (h *InjuriesHandler) HandleGetInjuries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/injuries/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	teamID, err := resolveTeamParam(h.deps, path)
	if err != nil {
		status, code := http.StatusBadRequest, "bad_request"
		if errors.Is(err, ErrUnknownTeam) {
			status, code = http.StatusNotFound, "unknown_team"
		}
		writeError(w, status, code, err)
		return
	}

	report, state, err := h.deps.TeamReport(r.Context(), teamID)
	if state == cache.StateMiss {
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "feed_unavailable", err)
			return
		}
		writeError(w, http.StatusNotFound, "not_found", ErrNoReport)
		return
	}

	writeJSON(w, http.StatusOK, injuriesResponse{
		Report: report,
		State:  state,
		Stale:  state == cache.StateStale,
	})
}
