// Package model contains domain models passed between layers.
package model

import "time"

// TeamID identifies a team using the upstream league's numeric id.
type TeamID int64

// Status is the normalized injury designation for a listed player.
type Status string

// Normalized status vocabulary. Unknown upstream strings map to StatusAvailable.
const (
	StatusOut          Status = "Out"
	StatusDoubtful     Status = "Doubtful"
	StatusQuestionable Status = "Questionable"
	StatusProbable     Status = "Probable"
	StatusDayToDay     Status = "Day-To-Day"
	StatusAvailable    Status = "Available"
)

// InjuryRecord is one player's line on a team injury report. Records are
// created fresh on each fetch and never mutated, only replaced.
type InjuryRecord struct {
	PlayerName string    `json:"player_name"`
	PlayerID   string    `json:"player_id,omitempty"`
	TeamID     TeamID    `json:"team_id"`
	Status     Status    `json:"status"`
	Weight     float64   `json:"weight"` // status weight in [0,1]
	BodyPart   string    `json:"body_part,omitempty"`
	ObservedAt time.Time `json:"observed_at"`
}

// TeamInjuryReport is the normalized injury report for one team.
type TeamInjuryReport struct {
	TeamID    TeamID         `json:"team_id"`
	TeamName  string         `json:"team_name,omitempty"`
	Records   []InjuryRecord `json:"records"`
	FetchedAt time.Time      `json:"fetched_at"`
	Source    string         `json:"source,omitempty"`
}

// PlayersOut returns the number of players listed as Out.
func (r TeamInjuryReport) PlayersOut() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Status == StatusOut {
			n++
		}
	}
	return n
}

// PlayersQuestionable returns the number of players listed as Questionable.
func (r TeamInjuryReport) PlayersQuestionable() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Status == StatusQuestionable {
			n++
		}
	}
	return n
}

// TotalWeight sums the status weights of all records.
func (r TeamInjuryReport) TotalWeight() float64 {
	total := 0.0
	for _, rec := range r.Records {
		total += rec.Weight
	}
	return total
}

// Contribution is one record's share of a team adjustment.
type Contribution struct {
	PlayerName string  `json:"player_name"`
	Status     Status  `json:"status"`
	Weight     float64 `json:"weight"`
	Tier       string  `json:"tier"`
	Multiplier float64 `json:"multiplier"`
	Points     float64 `json:"points"` // weight x multiplier x base magnitude
}

// AdjustmentResult is the computed Elo delta for a team. It is a pure
// function of (report, classifier table, configuration) and is never stored.
type AdjustmentResult struct {
	TeamID        TeamID         `json:"team_id"`
	Raw           float64        `json:"raw"`    // unclamped, <= 0
	Capped        float64        `json:"capped"` // in [-maxCap, 0]
	Contributions []Contribution `json:"contributions,omitempty"`
	ComputedAt    time.Time      `json:"computed_at"`
}
