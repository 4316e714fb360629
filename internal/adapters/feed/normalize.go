package feed

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hooplens/eloedge/internal/domain/model"
	"github.com/hooplens/eloedge/pkg/logger"
	"github.com/hooplens/eloedge/pkg/metrics"
)

// DefaultStatusWeights returns the built-in external-status -> weight table.
// Keys are the canonical lowercased designations; the table is configurable
// because upstream vocabulary drifts between seasons.
func DefaultStatusWeights() map[string]float64 {
	return map[string]float64{
		"out":          1.0,
		"doubtful":     0.75,
		"questionable": 0.5,
		"probable":     0.25,
		"day-to-day":   0.25,
	}
}

// canonicalStatus folds upstream status spellings (including single-letter
// codes) onto the normalized vocabulary. Unknown strings are Available.
func canonicalStatus(raw string) model.Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "out", "o":
		return model.StatusOut
	case "doubtful", "d":
		return model.StatusDoubtful
	case "questionable", "q":
		return model.StatusQuestionable
	case "probable", "p":
		return model.StatusProbable
	case "day-to-day", "day to day", "dtd":
		return model.StatusDayToDay
	default:
		return model.StatusAvailable
	}
}

// weightFor looks up the status weight for a canonical status.
func (c *Client) weightFor(status model.Status) float64 {
	key := strings.ToLower(string(status))
	if w, ok := c.weights[key]; ok {
		return w
	}
	// Config tables may use underscores instead of hyphens.
	if w, ok := c.weights[strings.ReplaceAll(key, "-", "_")]; ok {
		return w
	}
	return 0
}

// normalize converts the raw payload into per-team reports. Malformed
// entries and unmappable teams are skipped and logged; a single bad record
// never fails the batch.
func (c *Client) normalize(ctx context.Context, payload leaguePayload) map[model.TeamID]model.TeamInjuryReport {
	now := time.Now().UTC()
	source := "espn:" + uuid.NewString()

	reports := make(map[model.TeamID]model.TeamInjuryReport, len(payload.Injuries))
	for _, team := range payload.Injuries {
		teamID, ok := c.teams.TeamID(team.DisplayName)
		if !ok {
			metrics.RecordFeedRecordSkipped()
			c.logger.Warn(ctx, "skipping unmappable team", logger.String("team", team.DisplayName))
			continue
		}

		records := make([]model.InjuryRecord, 0, len(team.Injuries))
		for _, entry := range team.Injuries {
			name := strings.TrimSpace(entry.Athlete.DisplayName)
			if name == "" {
				metrics.RecordFeedRecordSkipped()
				c.logger.Warn(ctx, "skipping entry without player name",
					logger.String("team", team.DisplayName),
					logger.String("status", entry.Status),
				)
				continue
			}

			status := canonicalStatus(entry.Status)
			observed := now
			if entry.Date != "" {
				if ts, err := time.Parse(time.RFC3339, entry.Date); err == nil {
					observed = ts.UTC()
				}
			}

			records = append(records, model.InjuryRecord{
				PlayerName: name,
				PlayerID:   entry.Athlete.ID.String(),
				TeamID:     teamID,
				Status:     status,
				Weight:     c.weightFor(status),
				BodyPart:   entry.Details.Type,
				ObservedAt: observed,
			})
		}

		reports[teamID] = model.TeamInjuryReport{
			TeamID:    teamID,
			TeamName:  team.DisplayName,
			Records:   records,
			FetchedAt: now,
			Source:    source,
		}
	}

	return reports
}
