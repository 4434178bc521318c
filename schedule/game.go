package schedule

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/starters/gamelog"
)

// Columns names the schedule columns the pipeline reads.
type Columns struct {
	Date        string `koanf:"date" yaml:"date"`
	Home        string `koanf:"home" yaml:"home"`
	Away        string `koanf:"away" yaml:"away"`
	HomeStarter string `koanf:"home_starter" yaml:"home_starter"`
	AwayStarter string `koanf:"away_starter" yaml:"away_starter"`
	HomeScore   string `koanf:"home_score" yaml:"home_score"`
	AwayScore   string `koanf:"away_score" yaml:"away_score"`
	Status      string `koanf:"status" yaml:"status"`
}

// DefaultColumns matches the season schedule export.
func DefaultColumns() Columns {
	return Columns{
		Date:        "Date_Start",
		Home:        "Home",
		Away:        "Away",
		HomeStarter: "Home Starter",
		AwayStarter: "Away Starter",
		HomeScore:   "Home Score",
		AwayScore:   "Away Score",
		Status:      "Status",
	}
}

// Game is one schedule row.
type Game struct {
	// Row is the index of the game in Table.Rows.
	Row int

	// Start is the full scheduled start; Date is its calendar day and is what
	// the pitcher join uses.
	Start       time.Time
	Date        gamelog.Date
	Home        string
	Away        string
	HomeStarter string
	AwayStarter string

	HomeScore int
	AwayScore int
	// Scored is false when either score is blank or unreadable.
	Scored bool

	Status string
}

// Parse reads typed games out of t. A missing date column, or any other
// required column, fails with ErrMissingColumn.
func Parse(t *Table, cols Columns) ([]Game, error) {
	idx := map[string]int{}
	for _, c := range []string{
		cols.Date, cols.Home, cols.Away, cols.HomeStarter,
		cols.AwayStarter, cols.HomeScore, cols.AwayScore, cols.Status,
	} {
		i := t.Index(c)
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, c)
		}
		idx[c] = i
	}

	games := make([]Game, 0, len(t.Rows))
	for r := range t.Rows {
		ds := t.Cell(r, idx[cols.Date])
		start, err := gamelog.ParseTime(ds)
		if err != nil {
			return nil, fmt.Errorf("schedule row %d: %w", r+2, err)
		}

		g := Game{
			Row:         r,
			Start:       start,
			Date:        gamelog.DateOf(start),
			Home:        t.Cell(r, idx[cols.Home]),
			Away:        t.Cell(r, idx[cols.Away]),
			HomeStarter: t.Cell(r, idx[cols.HomeStarter]),
			AwayStarter: t.Cell(r, idx[cols.AwayStarter]),
			Status:      t.Cell(r, idx[cols.Status]),
		}
		hs, hok := parseScore(t.Cell(r, idx[cols.HomeScore]))
		as, aok := parseScore(t.Cell(r, idx[cols.AwayScore]))
		if hok && aok {
			g.HomeScore, g.AwayScore, g.Scored = hs, as, true
		}
		games = append(games, g)
	}
	return games, nil
}

func parseScore(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return int(f), true
}

// Completed keeps games whose status is one of statuses (case-insensitive).
func Completed(games []Game, statuses ...string) []Game {
	out := make([]Game, 0, len(games))
	for _, g := range games {
		for _, s := range statuses {
			if strings.EqualFold(g.Status, strings.TrimSpace(s)) {
				out = append(out, g)
				break
			}
		}
	}
	return out
}

type gameKey struct {
	start int64
	home  string
	away  string
}

// Dedupe collapses games sharing start time, home team and away team to the
// first one seen. Both halves of a doubleheader are kept when their start
// times differ.
func Dedupe(games []Game) []Game {
	seen := make(map[gameKey]bool, len(games))
	out := make([]Game, 0, len(games))
	for _, g := range games {
		k := gameKey{g.Start.UnixNano(), g.Home, g.Away}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, g)
	}
	return out
}

// HomeWin is 1 when the home side outscored the away side, else 0.
func HomeWin(g Game) int {
	if g.Scored && g.HomeScore > g.AwayScore {
		return 1
	}
	return 0
}

// Starters lists the distinct non-blank starter names, sorted.
func Starters(games []Game) []string {
	seen := map[string]bool{}
	var out []string
	for _, g := range games {
		for _, name := range []string{g.HomeStarter, g.AwayStarter} {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
