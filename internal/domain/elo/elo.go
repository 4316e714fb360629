// Package elo holds the team strength ratings snapshot and the matchup
// win-probability curve.
package elo

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/hooplens/eloedge/internal/domain/model"
)

// Rating curve constants.
const (
	// DefaultRating is assigned to teams without a tracked rating.
	DefaultRating = 1500.0
	// HomeCourtAdvantage shifts the curve in the home team's favor.
	HomeCourtAdvantage = 70.0
	// scale is the standard Elo logistic scale.
	scale = 400.0
)

// Ratings is an immutable snapshot of team ratings. Updates happen by
// loading a new snapshot, never by mutating a live one.
type Ratings struct {
	byTeam map[model.TeamID]float64
}

// NewRatings copies the given ratings into a snapshot.
func NewRatings(initial map[model.TeamID]float64) *Ratings {
	byTeam := make(map[model.TeamID]float64, len(initial))
	for id, rating := range initial {
		byTeam[id] = rating
	}
	return &Ratings{byTeam: byTeam}
}

// LoadFile reads a ratings snapshot from a JSON file mapping team id
// strings to ratings.
func LoadFile(path string) (*Ratings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ratings file: %w", err)
	}

	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode ratings file: %w", err)
	}

	byTeam := make(map[model.TeamID]float64, len(raw))
	for key, rating := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid team id %q in ratings file: %w", key, err)
		}
		byTeam[model.TeamID(id)] = rating
	}
	return &Ratings{byTeam: byTeam}, nil
}

// Rating returns the team's rating, or DefaultRating when untracked.
func (r *Ratings) Rating(id model.TeamID) float64 {
	if r == nil {
		return DefaultRating
	}
	if rating, ok := r.byTeam[id]; ok {
		return rating
	}
	return DefaultRating
}

// Len returns the number of tracked teams.
func (r *Ratings) Len() int {
	if r == nil {
		return 0
	}
	return len(r.byTeam)
}

// WinProbability returns the home team's win probability given two Elo
// ratings, including home-court advantage:
//
//	P_home = 1 / (1 + 10^-((E_home - E_away + HCA) / 400))
func WinProbability(homeElo, awayElo float64) float64 {
	exponent := -(homeElo - awayElo + HomeCourtAdvantage) / scale
	return 1 / (1 + math.Pow(10, exponent))
}
