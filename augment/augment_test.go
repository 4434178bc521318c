package augment

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/rustyeddy/starters/features"
	"github.com/rustyeddy/starters/gamelog"
	"github.com/rustyeddy/starters/pkg/logger"
	"github.com/rustyeddy/starters/schedule"
	"github.com/rustyeddy/starters/stat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func app(date string, ip float64, er, so, bb, hr, h, gs int) gamelog.Appearance {
	return gamelog.Appearance{
		Date: gamelog.MustDate(date),
		IP:   ip,
		ER:   er, SO: so, BB: bb, HR: hr, H: h, GS: gs,
	}
}

func game(row int, date, home, away, homeSP, awaySP string, hs, as int) schedule.Game {
	return schedule.Game{
		Row:         row,
		Date:        gamelog.MustDate(date),
		Home:        home,
		Away:        away,
		HomeStarter: homeSP,
		AwayStarter: awaySP,
		HomeScore:   hs,
		AwayScore:   as,
		Scored:      true,
		Status:      "Final",
	}
}

func testSource() gamelog.StaticSource {
	return gamelog.StaticSource{
		"Pitcher P": {
			app("2025-04-07", 5.1, 3, 4, 2, 0, 6, 1),
			app("2025-04-01", 6.0, 2, 7, 1, 1, 5, 1),
		},
		"Pitcher Q": {
			app("2025-04-01", 5.0, 1, 5, 2, 0, 4, 1),
			app("2025-04-07", 7.0, 0, 9, 1, 0, 2, 1),
			app("2025-04-13", 6.0, 2, 6, 1, 1, 5, 1),
			app("2025-04-19", 4.0, 5, 2, 4, 2, 8, 1),
		},
		"Pitcher D": {
			app("2025-04-07", 5.0, 1, 5, 2, 0, 4, 1),
			app("2025-04-07", 1.0, 0, 1, 0, 0, 1, 0),
		},
	}
}

func testGames() []schedule.Game {
	return []schedule.Game{
		game(0, "2025-04-01", "NYY", "MIL", "Pitcher P", "Pitcher Q", 5, 3),
		game(1, "2025-04-07", "NYY", "BAL", "Pitcher P", "Pitcher Q", 3, 5),
		game(2, "2025-04-07", "BOS", "TOR", "Pitcher D", "Nobody", 4, 4),
		game(3, "2025-04-19", "TOR", "BOS", "Pitcher Q", "Pitcher P", 2, 1),
	}
}

func TestAugmentWorkedExample(t *testing.T) {
	t.Parallel()

	a := &Augmenter{Source: testSource()}
	res, err := a.Augment(context.Background(), testGames())
	require.NoError(t, err)
	require.Len(t, res.Rows, 4)

	// P's second start, at home on 2025-04-07.
	r1 := res.Rows[1]
	assert.Equal(t, stat.Of(3.0), r1.HomeStats.Season.ERA)
	assert.Equal(t, 0, r1.HomeWin)

	// First appearances are zero-filled.
	r0 := res.Rows[0]
	for _, v := range r0.HomeStats.Values() {
		assert.Equal(t, stat.Zero(), v)
	}
	for _, v := range r0.AwayStats.Values() {
		assert.Equal(t, stat.Zero(), v)
	}
	assert.Equal(t, 1, r0.HomeWin)

	// Q's fourth appearance at home on 2025-04-19: window over appearances 1-3.
	r3 := res.Rows[3]
	assert.True(t, r3.HomeStats.Recent.ERA.Valid)
	assert.InDelta(t, 9*3/18.0, r3.HomeStats.Recent.ERA.Value, 1e-9)
	assert.InDelta(t, 18.0, r3.HomeStats.Recent.IP.Value, 1e-9)
	assert.InDelta(t, 9*3/18.0, r3.HomeStats.Season.ERA.Value, 1e-9)

	// P has no appearance on 2025-04-19: left missing.
	assert.Equal(t, features.Before{}, r3.AwayStats)
}

func TestAugmentSkipsAndIssues(t *testing.T) {
	t.Parallel()

	a := &Augmenter{Source: testSource()}
	res, err := a.Augment(context.Background(), testGames())
	require.NoError(t, err)

	r2 := res.Rows[2]
	assert.Equal(t, features.Before{}, r2.HomeStats, "duplicate date is never guessed")
	assert.Equal(t, features.Before{}, r2.AwayStats, "pitcher without a log stays missing")
	assert.Equal(t, 0, r2.HomeWin, "tie is not a home win")

	assert.Equal(t, 3, res.Count(Processed))
	assert.Equal(t, 1, res.Count(NoLog))
	assert.Equal(t, 1, res.IssueCount(DuplicateDate))
	assert.Equal(t, 1, res.IssueCount(NoAppearance))
	assert.Equal(t, 8, res.Slots())
	assert.Equal(t, 5, res.Matched())

	names := []string{}
	for _, p := range res.Pitchers {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Nobody", "Pitcher D", "Pitcher P", "Pitcher Q"}, names)
}

func TestAugmentFillAll(t *testing.T) {
	t.Parallel()

	a := &Augmenter{Source: testSource(), Fill: features.FillAll}
	res, err := a.Augment(context.Background(), testGames())
	require.NoError(t, err)

	// Q's second start: the window before it is undefined, zero-filled.
	assert.Equal(t, stat.Zero(), res.Rows[1].AwayStats.Recent.ERA)
}

func TestAugmentParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	seq, err := (&Augmenter{Source: testSource()}).Augment(context.Background(), testGames())
	require.NoError(t, err)
	par, err := (&Augmenter{Source: testSource(), Workers: 4}).Augment(context.Background(), testGames())
	require.NoError(t, err)

	assert.Equal(t, seq.Rows, par.Rows)
	assert.Equal(t, seq.Issues, par.Issues)
	assert.Equal(t, seq.Pitchers, par.Pitchers)
}

type brokenSource struct{}

func (brokenSource) Load(context.Context, string) ([]gamelog.Appearance, error) {
	return nil, gamelog.ErrNoDateColumn
}

type emptySource struct{}

func (emptySource) Load(context.Context, string) ([]gamelog.Appearance, error) {
	return nil, nil
}

func TestAugmentBadSources(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	a := &Augmenter{Source: brokenSource{}, Logger: logger.New(&buf, slog.LevelDebug)}
	res, err := a.Augment(context.Background(), testGames())
	require.NoError(t, err)
	assert.Equal(t, 4, res.Count(Malformed))
	assert.Equal(t, 0, res.Matched())
	assert.Contains(t, buf.String(), "unreadable game log")
	for _, p := range res.Pitchers {
		assert.True(t, errors.Is(p.Err, gamelog.ErrNoDateColumn))
	}

	res, err = (&Augmenter{Source: emptySource{}}).Augment(context.Background(), testGames())
	require.NoError(t, err)
	assert.Equal(t, 4, res.Count(Empty))
}

func TestAugmentDirSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	log := "Date,IP,ER,SO,BB,HR,H,GS\n2025-04-01,6.0,2,7,1,1,5,1\n2025-04-07,5.1,3,4,2,0,6,1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Pitcher_P.csv"), []byte(log), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Pitcher_Q.csv"), []byte("Day,IP\n"), 0644))

	a := &Augmenter{Source: gamelog.DirSource{Dir: dir}}
	res, err := a.Augment(context.Background(), testGames()[:2])
	require.NoError(t, err)

	assert.Equal(t, stat.Of(3.0), res.Rows[1].HomeStats.Season.ERA)
	assert.Equal(t, features.Before{}, res.Rows[1].AwayStats)
	assert.Equal(t, 1, res.Count(Malformed))
}

func TestAugmentCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Augmenter{Source: testSource()}).Augment(ctx, testGames())
	assert.ErrorIs(t, err, context.Canceled)

	_, err = (&Augmenter{Source: testSource(), Workers: 3}).Augment(ctx, testGames())
	assert.ErrorIs(t, err, context.Canceled)

	_, err = (&Augmenter{}).Augment(context.Background(), testGames())
	assert.Error(t, err)
}
