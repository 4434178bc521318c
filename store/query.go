package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrRunNotFound is returned by GetRun for an unknown ID.
var ErrRunNotFound = errors.New("run not found")

const runColumns = `id, started_at, schedule, games, pitchers, processed, no_log, malformed, slots, matched, issues`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	err := sc.Scan(
		&r.ID,
		&r.StartedAt,
		&r.Schedule,
		&r.Games,
		&r.Pitchers,
		&r.Processed,
		&r.NoLog,
		&r.Malformed,
		&r.Slots,
		&r.Matched,
		&r.Issues,
	)
	return r, err
}

// GetRun returns a single run by ID.
func (s *SQLite) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %q", ErrRunNotFound, id)
	}
	return r, err
}

// ListRuns returns the most recent runs first. A limit of zero or less
// returns every run.
func (s *SQLite) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// PitcherFeatures returns the stored features for one pitcher in a run,
// ordered by schedule row and feature order of insertion.
func (s *SQLite) PitcherFeatures(ctx context.Context, runID, pitcher string) ([]FeatureRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT rowid, run_id, row_index, date, side, team, pitcher, feature, value, home_win
		FROM game_features
		WHERE run_id = ? AND pitcher = ?
		ORDER BY row_index ASC, rowid ASC`, runID, pitcher)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FeatureRecord
	for rows.Next() {
		var (
			f     FeatureRecord
			value sql.NullFloat64
		)
		if err := rows.Scan(
			&f.ID, &f.RunID, &f.RowIndex, &f.Date, &f.Side, &f.Team, &f.Pitcher, &f.Feature, &value, &f.HomeWin,
		); err != nil {
			return nil, err
		}
		if value.Valid {
			v := value.Float64
			f.Value = &v
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
