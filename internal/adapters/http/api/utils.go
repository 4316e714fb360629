// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hooplens/eloedge/internal/domain/model"
)

// resolveTeamParam accepts either a numeric league ID or a team name and
// returns the league ID. Names are resolved through the dependency bundle.
func resolveTeamParam(deps Dependencies, raw string) (model.TeamID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: missing team", ErrBadRequest)
	}
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if id <= 0 {
			return 0, fmt.Errorf("%w: team id must be positive", ErrBadRequest)
		}
		return model.TeamID(id), nil
	}
	if id, ok := deps.ResolveTeam(raw); ok {
		return id, nil
	}
	return 0, fmt.Errorf("%w: unknown team %q", ErrUnknownTeam, raw)
}

// parseBaselineParam parses an optional Elo baseline. Empty means "use
// the configured rating" and parses to zero.
func parseBaselineParam(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	baseline, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid baseline %q", ErrBadRequest, raw)
	}
	if baseline < 0 {
		return 0, fmt.Errorf("%w: baseline must not be negative", ErrBadRequest)
	}
	return baseline, nil
}
