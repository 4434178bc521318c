// Package store keeps a history of augment runs and the features they produced.
package store

import (
	"context"
	"time"

	"github.com/rustyeddy/starters/augment"
	"github.com/rustyeddy/starters/features"
	"github.com/rustyeddy/starters/schedule"
)

// Run is the bookkeeping for one augment run.
type Run struct {
	ID        string    `gorm:"primaryKey;size:26"`
	StartedAt time.Time `gorm:"not null"`
	Schedule  string    `gorm:"size:512"`
	Games     int
	Pitchers  int
	Processed int
	NoLog     int
	Malformed int
	Slots     int
	Matched   int
	Issues    int
}

// FeatureRecord is one starter feature of one augmented game. Value is nil
// when the feature is missing.
type FeatureRecord struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	RunID    string `gorm:"size:26;index;not null"`
	RowIndex int
	Date     string `gorm:"size:10"`
	Side     string `gorm:"size:4"`
	Team     string `gorm:"size:64"`
	Pitcher  string `gorm:"size:128"`
	Feature  string `gorm:"size:32"`
	Value    *float64
	HomeWin  int
}

func (FeatureRecord) TableName() string { return "game_features" }

// Sink receives the results of augment runs.
type Sink interface {
	RecordRun(ctx context.Context, r Run) error
	RecordFeatures(ctx context.Context, recs []FeatureRecord) error
	Close() error
}

// NewRun summarises an augment result.
func NewRun(id, schedulePath string, started time.Time, res *augment.Result) Run {
	return Run{
		ID:        id,
		StartedAt: started.UTC(),
		Schedule:  schedulePath,
		Games:     len(res.Rows),
		Pitchers:  len(res.Pitchers),
		Processed: res.Count(augment.Processed),
		NoLog:     res.Count(augment.NoLog),
		Malformed: res.Count(augment.Malformed) + res.Count(augment.Empty),
		Slots:     res.Slots(),
		Matched:   res.Matched(),
		Issues:    len(res.Issues),
	}
}

// Records flattens augmented rows into one record per side and feature.
func Records(runID string, rows []schedule.Row) []FeatureRecord {
	var out []FeatureRecord
	for i := range rows {
		r := &rows[i]
		for _, side := range []schedule.Side{schedule.HomeSide, schedule.AwaySide} {
			team, pitcher := r.Game.Home, r.Game.HomeStarter
			if side == schedule.AwaySide {
				team, pitcher = r.Game.Away, r.Game.AwayStarter
			}
			for j, v := range r.Stats(side).Values() {
				out = append(out, FeatureRecord{
					RunID:    runID,
					RowIndex: r.Game.Row,
					Date:     r.Game.Date.String(),
					Side:     string(side),
					Team:     team,
					Pitcher:  pitcher,
					Feature:  features.Names[j],
					Value:    v.Ptr(),
					HomeWin:  r.HomeWin,
				})
			}
		}
	}
	return out
}

// Save records a run and its features in one call.
func Save(ctx context.Context, s Sink, run Run, rows []schedule.Row) error {
	if err := s.RecordRun(ctx, run); err != nil {
		return err
	}
	return s.RecordFeatures(ctx, Records(run.ID, rows))
}
