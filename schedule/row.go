package schedule

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rustyeddy/starters/features"
	"github.com/rustyeddy/starters/stat"
)

// HomeWinColumn is the outcome column added to the output.
const HomeWinColumn = "Home_Win"

// Side is the home or away half of a game.
type Side string

const (
	HomeSide Side = "Home"
	AwaySide Side = "Away"
)

// Row is a completed game with both starters' before-game features. Features
// are missing until the augmenter fills them.
type Row struct {
	Game      Game
	HomeStats features.Before
	AwayStats features.Before
	HomeWin   int
}

// NewRows builds output rows for games with every feature missing.
func NewRows(games []Game) []Row {
	rows := make([]Row, len(games))
	for i, g := range games {
		rows[i] = Row{Game: g}
	}
	return rows
}

// Stats returns the features for one side.
func (r *Row) Stats(s Side) *features.Before {
	if s == HomeSide {
		return &r.HomeStats
	}
	return &r.AwayStats
}

// Column is the output column for a feature on one side, e.g. "Home_ERA_before".
func Column(s Side, feature string) string {
	return string(s) + "_" + feature + "_before"
}

// DerivedColumns is the fixed set of columns appended to the schedule.
func DerivedColumns() []string {
	cols := make([]string, 0, 2*len(features.Names)+1)
	for _, s := range []Side{HomeSide, AwaySide} {
		for _, n := range features.Names {
			cols = append(cols, Column(s, n))
		}
	}
	return append(cols, HomeWinColumn)
}

// layout returns the output header and the input columns carried through.
// Input columns named like a derived column are replaced by it.
func layout(t *Table) (header []string, keep []int) {
	derived := map[string]bool{}
	for _, c := range DerivedColumns() {
		derived[c] = true
	}
	for i, h := range t.Header {
		if derived[h] {
			continue
		}
		keep = append(keep, i)
		header = append(header, h)
	}
	return append(header, DerivedColumns()...), keep
}

// derivedValues returns the stats in DerivedColumns order, minus Home_Win.
func (r Row) derivedValues() []stat.Stat {
	return append(r.HomeStats.Values(), r.AwayStats.Values()...)
}

func records(t *Table, rows []Row) (header []string, recs [][]string) {
	header, keep := layout(t)
	recs = make([][]string, 0, len(rows))
	for _, r := range rows {
		rec := make([]string, 0, len(header))
		for _, i := range keep {
			rec = append(rec, t.Cell(r.Game.Row, i))
		}
		for _, v := range r.derivedValues() {
			rec = append(rec, v.String())
		}
		rec = append(rec, strconv.Itoa(r.HomeWin))
		recs = append(recs, rec)
	}
	return header, recs
}

// WriteAugmented writes the kept schedule rows with the derived columns appended.
func WriteAugmented(w io.Writer, t *Table, rows []Row) error {
	header, recs := records(t, rows)
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(recs); err != nil {
		return err
	}
	return cw.Error()
}
