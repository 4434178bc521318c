package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema %s: %w", path, err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) RecordRun(ctx context.Context, r Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, started_at, schedule, games, pitchers, processed, no_log, malformed, slots, matched, issues)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.StartedAt, r.Schedule, r.Games, r.Pitchers,
		r.Processed, r.NoLog, r.Malformed, r.Slots, r.Matched, r.Issues,
	)
	return err
}

// RecordFeatures inserts all records in one transaction.
func (s *SQLite) RecordFeatures(ctx context.Context, recs []FeatureRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO game_features
		(run_id, row_index, date, side, team, pitcher, feature, value, home_win)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, f := range recs {
		if _, err := stmt.ExecContext(ctx,
			f.RunID, f.RowIndex, f.Date, f.Side, f.Team, f.Pitcher, f.Feature, f.Value, f.HomeWin,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
