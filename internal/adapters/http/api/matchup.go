// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
)

// MatchupHandler handles matchup prediction requests.
type MatchupHandler struct {
	deps Dependencies
}

// NewMatchupHandler creates a new matchup handler.
func NewMatchupHandler(deps Dependencies) *MatchupHandler {
	return &MatchupHandler{deps: deps}
}

// HandleGetMatchup handles
// GET /matchup?home=<id|name>&away=<id|name>&home_elo=<elo>&away_elo=<elo>.
// The Elo parameters are optional; configured ratings fill the gaps.
func (h *MatchupHandler) HandleGetMatchup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()

	homeID, err := resolveTeamParam(h.deps, q.Get("home"))
	if err != nil {
		h.writeResolveError(w, err)
		return
	}
	awayID, err := resolveTeamParam(h.deps, q.Get("away"))
	if err != nil {
		h.writeResolveError(w, err)
		return
	}
	if homeID == awayID {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("home and away must differ"))
		return
	}

	homeElo, err := parseBaselineParam(q.Get("home_elo"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	awayElo, err := parseBaselineParam(q.Get("away_elo"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	matchup := h.deps.PredictMatchup(r.Context(), homeID, awayID, homeElo, awayElo)
	writeJSON(w, http.StatusOK, matchup)
}

func (h *MatchupHandler) writeResolveError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrUnknownTeam) {
		writeError(w, http.StatusNotFound, "unknown_team", err)
		return
	}
	writeError(w, http.StatusBadRequest, "bad_request", err)
}
