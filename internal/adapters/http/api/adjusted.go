// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
)

// AdjustedEloHandler handles adjusted rating lookups.
type AdjustedEloHandler struct {
	deps Dependencies
}

// NewAdjustedEloHandler creates a new adjusted rating handler.
func NewAdjustedEloHandler(deps Dependencies) *AdjustedEloHandler {
	return &AdjustedEloHandler{deps: deps}
}

// HandleGetAdjustedElo handles GET /adjusted-elo?team=<id|name>&baseline=<elo>.
func (h *AdjustedEloHandler) HandleGetAdjustedElo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	teamID, err := resolveTeamParam(h.deps, r.URL.Query().Get("team"))
	if err != nil {
		status, code := http.StatusBadRequest, "bad_request"
		if errors.Is(err, ErrUnknownTeam) {
			status, code = http.StatusNotFound, "unknown_team"
		}
		writeError(w, status, code, err)
		return
	}

	baseline, err := parseBaselineParam(r.URL.Query().Get("baseline"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	result := h.deps.AdjustedElo(r.Context(), teamID, baseline)
	writeJSON(w, http.StatusOK, result)
}
