// Package snapshot provides a SQLite-backed durable store for cached
// team injury reports, so a restart reloads instead of starting cold.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // sqlite driver

	"github.com/hooplens/eloedge/internal/domain/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS team_reports (
    team_id    INTEGER PRIMARY KEY,
    report     TEXT NOT NULL,
    fetched_at INTEGER NOT NULL,
    expiry     INTEGER NOT NULL
);
`

// Store persists team reports in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// Open opens a SQLite snapshot store at path and ensures the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("snapshot path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save upserts one team report.
func (s *Store) Save(ctx context.Context, report model.TeamInjuryReport, expiry time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("snapshot store is not configured")
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO team_reports (team_id, report, fetched_at, expiry)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(team_id) DO UPDATE SET
		   report = excluded.report,
		   fetched_at = excluded.fetched_at,
		   expiry = excluded.expiry`,
		int64(report.TeamID),
		string(payload),
		toMillis(report.FetchedAt),
		toMillis(expiry),
	)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

// LoadAll reads every persisted report. Rows that fail to decode are
// skipped; a corrupt row must not block a warm start.
func (s *Store) LoadAll(ctx context.Context) ([]model.TeamInjuryReport, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("snapshot store is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT report FROM team_reports ORDER BY team_id`)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reports []model.TeamInjuryReport
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		var report model.TeamInjuryReport
		if err := json.Unmarshal([]byte(payload), &report); err != nil {
			continue
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return reports, nil
}

// Prune deletes rows whose expiry is older than the cutoff. Returns the
// number of rows removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("snapshot store is not configured")
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM team_reports WHERE expiry < ?`, toMillis(cutoff))
	if err != nil {
		return 0, fmt.Errorf("prune reports: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune rows affected: %w", err)
	}
	return n, nil
}
