// Package adjust computes bounded Elo adjustments from team injury reports.
//
// Compute is deterministic and order-independent: permuting the input
// records never changes the result.
package adjust

import (
	"sort"
	"time"

	"github.com/hooplens/eloedge/internal/domain/model"
	"github.com/hooplens/eloedge/internal/domain/roster"
)

// Default calculation parameters, matching the tuned production values.
const (
	defaultBaseMagnitude = 20.0  // Elo points per weighted severity point
	defaultMaxCap        = 100.0 // largest total penalty per team
	defaultNoiseFloor    = 5.0   // totals weaker than this are dropped to zero
)

// Params are the tunable knobs of the calculator.
type Params struct {
	// BaseMagnitude converts weighted severity into Elo points.
	BaseMagnitude float64
	// MaxCap bounds the total penalty; the capped adjustment is in [-MaxCap, 0].
	MaxCap float64
	// NoiseFloor zeroes totals weaker than this magnitude so minor injuries
	// do not nudge every rating. Zero disables the floor.
	NoiseFloor float64
}

// DefaultParams returns the default calculation parameters.
func DefaultParams() Params {
	return Params{
		BaseMagnitude: defaultBaseMagnitude,
		MaxCap:        defaultMaxCap,
		NoiseFloor:    defaultNoiseFloor,
	}
}

// Compute calculates the Elo adjustment for one team's injury report.
//
// Per record: contribution = status weight x tier multiplier x base
// magnitude. Contributions sum, the sum negates (injuries weaken a team),
// and the result clamps to [-MaxCap, 0]. Duplicate entries for a player
// keep only the highest status weight. Team attribution is trusted from
// the source; no roster cross-validation happens here.
func Compute(teamID model.TeamID, report model.TeamInjuryReport, classifier *roster.Classifier, params Params) model.AdjustmentResult {
	result := model.AdjustmentResult{
		TeamID:     teamID,
		ComputedAt: time.Now().UTC(),
	}

	if len(report.Records) == 0 {
		return result
	}

	// Dedupe per player, keeping the most severe designation.
	best := make(map[string]model.InjuryRecord, len(report.Records))
	for _, rec := range report.Records {
		key := roster.Normalize(rec.PlayerName)
		if prev, ok := best[key]; ok && prev.Weight >= rec.Weight {
			continue
		}
		best[key] = rec
	}

	keys := make([]string, 0, len(best))
	for key := range best {
		keys = append(keys, key)
	}
	// Fixed iteration order makes the float sum independent of input order.
	sort.Strings(keys)

	total := 0.0
	contributions := make([]model.Contribution, 0, len(keys))
	for _, key := range keys {
		rec := best[key]
		tier, multiplier := classifier.Classify(rec.PlayerName)
		points := rec.Weight * multiplier * params.BaseMagnitude
		total += points
		contributions = append(contributions, model.Contribution{
			PlayerName: rec.PlayerName,
			Status:     rec.Status,
			Weight:     rec.Weight,
			Tier:       string(tier),
			Multiplier: multiplier,
			Points:     -points,
		})
	}

	result.Raw = -total
	result.Capped = clamp(result.Raw, params)
	result.Contributions = contributions
	return result
}

// clamp bounds a raw adjustment to [-MaxCap, 0] and applies the noise floor.
func clamp(raw float64, params Params) float64 {
	if raw > 0 {
		return 0
	}
	if params.MaxCap > 0 && raw < -params.MaxCap {
		return -params.MaxCap
	}
	if params.NoiseFloor > 0 && -raw < params.NoiseFloor {
		return 0
	}
	return raw
}
