package features

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/rustyeddy/starters/gamelog"
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

// createTestLog is deliberately out of order.
func createTestLog() []gamelog.Appearance {
	return []gamelog.Appearance{
		app("2025-04-07", 5.1, 3, 4, 2, 0, 6, 1),
		app("2025-04-01", 6.0, 2, 7, 1, 1, 5, 1),
		app("2025-04-13", 7.0, 1, 8, 0, 1, 4, 1),
		app("2025-04-19", 4.2, 4, 3, 3, 2, 7, 1),
		app("2025-04-25", 6.1, 0, 6, 1, 0, 3, 1),
	}
}

func TestNormalizeWorkedExample(t *testing.T) {
	t.Parallel()

	l, err := Normalize(createTestLog()[:2])
	require.NoError(t, err)
	require.Equal(t, 2, l.Len())

	first, second := l.Rows[0], l.Rows[1]
	assert.Equal(t, gamelog.MustDate("2025-04-01"), first.Date)
	assert.Equal(t, 18, first.Outs)
	assert.Equal(t, 16, second.Outs)
	assert.Equal(t, 34, second.Cum.Outs)

	assert.InDelta(t, 3.0, second.Before.Season.ERA.Value, 1e-9)
	assert.True(t, second.Before.Season.ERA.Valid)
	// 9 * 5 / (34/3)
	assert.InDelta(t, 3.970588, second.Season.ERA.Value, 1e-6)
}

func TestNormalizeSingleAppearanceBeforeIsZero(t *testing.T) {
	t.Parallel()

	for _, policy := range []FillPolicy{FillFirst, FillAll} {
		l, err := Normalize(createTestLog()[:1], WithFillPolicy(policy))
		require.NoError(t, err)
		for i, v := range l.Rows[0].Before.Values() {
			assert.Equal(t, stat.Zero(), v, "%s (%s)", Names[i], policy)
		}
	}
}

func TestNormalizeCumulative(t *testing.T) {
	t.Parallel()

	apps := createTestLog()
	l, err := Normalize(apps)
	require.NoError(t, err)

	var er, outs, gs int
	for i, r := range l.Rows {
		er += r.ER
		outs += r.Outs
		gs += r.GS
		assert.Equal(t, er, r.Cum.ER, "row %d", i)
		assert.Equal(t, outs, r.Cum.Outs, "row %d", i)
		assert.InDelta(t, 9*float64(er)/(float64(outs)/3), r.Season.ERA.Value, 1e-9)
		assert.InDelta(t, float64(outs)/3/float64(gs), r.Season.IPPerStart.Value, 1e-9)
	}

	// Sorted by date.
	for i := 1; i < l.Len(); i++ {
		assert.True(t, l.Rows[i-1].Date.Before(l.Rows[i].Date))
	}
	// Input untouched.
	assert.Equal(t, gamelog.MustDate("2025-04-07"), apps[0].Date)
}

func TestNormalizeFIPAndRates(t *testing.T) {
	t.Parallel()

	l, err := Normalize([]gamelog.Appearance{app("2025-04-01", 6.0, 2, 7, 1, 1, 5, 1)})
	require.NoError(t, err)

	s := l.Rows[0].Season
	assert.InDelta(t, (13*1+3*1-2*7)/6.0+FIPConstant, s.FIP.Value, 1e-9)
	assert.InDelta(t, (5+1)/6.0, s.WHIP.Value, 1e-9)
	assert.InDelta(t, 9*7/6.0, s.K9.Value, 1e-9)
	assert.InDelta(t, 9*1/6.0, s.BB9.Value, 1e-9)
	assert.InDelta(t, 9*1/6.0, s.HR9.Value, 1e-9)
	assert.InDelta(t, 6.0, s.IPPerStart.Value, 1e-9)
}

func TestNormalizeZeroInningsIsMissing(t *testing.T) {
	t.Parallel()

	l, err := Normalize([]gamelog.Appearance{
		app("2025-04-01", 0.0, 3, 0, 2, 1, 3, 1),
		{Date: gamelog.MustDate("2025-04-02"), IPMissing: true},
		app("2025-04-08", 2.0, 1, 2, 0, 0, 2, 1),
	})
	require.NoError(t, err)

	r0 := l.Rows[0]
	for _, s := range []stat.Stat{r0.Season.ERA, r0.Season.FIP, r0.Season.WHIP, r0.Season.K9, r0.Season.BB9, r0.Season.HR9} {
		assert.False(t, s.Valid)
	}
	// 0 innings over 1 start is a defined 0.0.
	assert.Equal(t, stat.Of(0), r0.Season.IPPerStart)

	// Row 1 has zero GS and still zero innings.
	r1 := l.Rows[1]
	assert.False(t, r1.Season.ERA.Valid)
	assert.Equal(t, stat.Of(0), r1.Season.IPPerStart)
	// Before at row 1 is row 0's value: missing under the default policy.
	assert.False(t, r1.Before.Season.ERA.Valid)

	r2 := l.Rows[2]
	assert.True(t, r2.Season.ERA.Valid)
	assert.InDelta(t, 9*4/2.0, r2.Season.ERA.Value, 1e-9)
	// Window of three rows with 6 outs.
	assert.True(t, r2.Last3Ready)
	assert.InDelta(t, 2.0, r2.Recent.IP.Value, 1e-9)
}

func TestNormalizeWindow(t *testing.T) {
	t.Parallel()

	l, err := Normalize(createTestLog())
	require.NoError(t, err)

	for i, r := range l.Rows {
		if i < 2 {
			assert.False(t, r.Last3Ready, "row %d", i)
			assert.Equal(t, RecentRates{}, r.Recent, "row %d", i)
			continue
		}
		want := 0
		wantOuts := 0
		for j := i - 2; j <= i; j++ {
			want += l.Rows[j].SO
			wantOuts += l.Rows[j].Outs
		}
		assert.True(t, r.Last3Ready)
		assert.Equal(t, want, r.Last3.SO, "row %d", i)
		assert.Equal(t, wantOuts, r.Last3.Outs, "row %d", i)
		assert.InDelta(t, 9*float64(want)/(float64(wantOuts)/3), r.Recent.K9.Value, 1e-9)
		assert.InDelta(t, float64(wantOuts)/3, r.Recent.IP.Value, 1e-9)
	}
}

func TestNormalizeBeforeShift(t *testing.T) {
	t.Parallel()

	l, err := Normalize(createTestLog())
	require.NoError(t, err)

	for i := 1; i < l.Len(); i++ {
		prev, cur := l.Rows[i-1], l.Rows[i]
		assert.Equal(t, prev.Season, cur.Before.Season, "row %d", i)
		assert.Equal(t, prev.Recent, cur.Before.Recent, "row %d", i)
	}
	// Rows 1 and 2 inherit an undefined window from rows 0 and 1.
	assert.False(t, l.Rows[1].Before.Recent.ERA.Valid)
	assert.False(t, l.Rows[2].Before.Recent.ERA.Valid)
	assert.True(t, l.Rows[3].Before.Recent.ERA.Valid)
}

func TestNormalizeFillAll(t *testing.T) {
	t.Parallel()

	l, err := Normalize(createTestLog(), WithFillPolicy(FillAll))
	require.NoError(t, err)

	assert.Equal(t, stat.Zero(), l.Rows[1].Before.Recent.ERA)
	assert.Equal(t, stat.Zero(), l.Rows[2].Before.Recent.IP)
	assert.Equal(t, len(Names), l.Rows[1].Before.Defined())
}

func TestNormalizeErrorsAndLookup(t *testing.T) {
	t.Parallel()

	_, err := Normalize(nil)
	assert.ErrorIs(t, err, ErrEmptyLog)

	apps := append(createTestLog(), app("2025-04-13", 1.0, 0, 1, 0, 0, 0, 0))
	l, err := Normalize(apps)
	require.NoError(t, err)

	_, err = l.Lookup(gamelog.MustDate("2025-04-13"))
	assert.ErrorIs(t, err, ErrDuplicateDate)
	assert.Equal(t, []gamelog.Date{gamelog.MustDate("2025-04-13")}, l.DuplicateDates())

	_, err = l.Lookup(gamelog.MustDate("2025-05-01"))
	assert.ErrorIs(t, err, ErrNoAppearance)

	r, err := l.Lookup(gamelog.MustDate("2025-04-07"))
	require.NoError(t, err)
	assert.Equal(t, 16, r.Outs)

	// Ties keep input order.
	assert.Equal(t, 7.0, l.Rows[2].IP)
	assert.Equal(t, 1.0, l.Rows[3].IP)
}

func TestNormalizeAnomalies(t *testing.T) {
	t.Parallel()

	l, err := Normalize([]gamelog.Appearance{app("2025-04-01", 5.4, 0, 0, 0, 0, 0, 1)})
	require.NoError(t, err)
	assert.Equal(t, []gamelog.Date{gamelog.MustDate("2025-04-01")}, l.Anomalies)
}

func TestParseFillPolicy(t *testing.T) {
	t.Parallel()

	p, err := ParseFillPolicy("")
	require.NoError(t, err)
	assert.Equal(t, FillFirst, p)

	p, err = ParseFillPolicy(" ALL ")
	require.NoError(t, err)
	assert.Equal(t, FillAll, p)

	_, err = ParseFillPolicy("sometimes")
	assert.Error(t, err)
}

func TestLogWriteCSV(t *testing.T) {
	t.Parallel()

	l, err := Normalize(createTestLog())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, l.WriteCSV(&buf))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 6)
	assert.Equal(t, len(recs[0]), len(recs[1]))
	assert.Equal(t, "2025-04-01", recs[1][0])
	assert.Equal(t, "6.0", recs[1][1])
	assert.Equal(t, "", recs[1][19], "outs_last3 undefined on first row")
	assert.Equal(t, "ERA_before", recs[0][len(derivedHeader)])
}
