// Package gamelog reads and stores per-pitcher game logs: one appearance
// record per game started.
package gamelog

import (
	"context"
	"errors"
)

var (
	// ErrNoLog means no game log exists for a pitcher. It is not a failure.
	ErrNoLog = errors.New("no game log")
	// ErrNoDateColumn means a game-log table has no Date column.
	ErrNoDateColumn = errors.New("no Date column")
	// ErrMissingColumn means a required statistic column is absent.
	ErrMissingColumn = errors.New("missing column")
)

// Appearance is one pitcher's box-score line for a single game.
type Appearance struct {
	Date Date

	// IP uses the conventional partial-innings notation (5.1 = 5 1/3).
	IP        float64
	IPMissing bool

	ER int // earned runs
	SO int // strikeouts
	BB int // walks
	HR int // home runs allowed
	H  int // hits allowed
	GS int // games started flag, 0 or 1
}

// Outs returns the exact out count for the appearance.
func (a Appearance) Outs() (int, bool) {
	if a.IPMissing {
		return 0, true
	}
	return InningsToOuts(a.IP)
}

// Source supplies a pitcher's appearance log by name.
// Implementations return ErrNoLog (possibly wrapped) when the pitcher has none.
type Source interface {
	Load(ctx context.Context, pitcher string) ([]Appearance, error)
}

// StaticSource is an in-memory Source keyed by pitcher name.
type StaticSource map[string][]Appearance

func (s StaticSource) Load(_ context.Context, pitcher string) ([]Appearance, error) {
	apps, ok := s[pitcher]
	if !ok {
		return nil, ErrNoLog
	}
	out := make([]Appearance, len(apps))
	copy(out, apps)
	return out, nil
}
