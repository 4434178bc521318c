package augment

import (
	"github.com/rustyeddy/starters/gamelog"
	"github.com/rustyeddy/starters/schedule"
)

// Outcome is what happened to one pitcher during a run.
type Outcome string

const (
	Processed Outcome = "processed"
	// NoLog means the pitcher has no stored game log.
	NoLog Outcome = "no_log"
	// Malformed means the log could not be read (bad rows, no Date column).
	Malformed Outcome = "malformed"
	// Empty means the log had no appearances.
	Empty Outcome = "empty"
)

// IssueKind classifies a schedule start that could not be filled.
type IssueKind string

const (
	// NoAppearance means the log has no appearance on the game date.
	NoAppearance IssueKind = "no_appearance"
	// DuplicateDate means the log has several appearances on the game date.
	DuplicateDate IssueKind = "duplicate_date"
	// BadInnings means an appearance used an innings value outside .0/.1/.2.
	BadInnings IssueKind = "bad_innings"
)

// Issue is an input-quality problem found while joining.
type Issue struct {
	Pitcher string
	Date    gamelog.Date
	Side    schedule.Side
	Kind    IssueKind
}

// PitcherResult summarises one pitcher.
type PitcherResult struct {
	Name        string
	Outcome     Outcome
	Err         error
	Appearances int
	Starts      int
	Matched     int
}

// Result is the augmented schedule plus what happened along the way.
type Result struct {
	Rows     []schedule.Row
	Pitchers []PitcherResult
	Issues   []Issue
}

// Count returns the number of pitchers with the given outcome.
func (r *Result) Count(o Outcome) int {
	n := 0
	for _, p := range r.Pitchers {
		if p.Outcome == o {
			n++
		}
	}
	return n
}

// Matched is the number of starter slots that received features.
func (r *Result) Matched() int {
	n := 0
	for _, p := range r.Pitchers {
		n += p.Matched
	}
	return n
}

// Slots is the number of starter slots in the schedule.
func (r *Result) Slots() int {
	n := 0
	for _, row := range r.Rows {
		if row.Game.HomeStarter != "" {
			n++
		}
		if row.Game.AwayStarter != "" {
			n++
		}
	}
	return n
}

// IssueCount returns the number of issues of the given kind.
func (r *Result) IssueCount(k IssueKind) int {
	n := 0
	for _, is := range r.Issues {
		if is.Kind == k {
			n++
		}
	}
	return n
}
