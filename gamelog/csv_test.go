package gamelog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic(err)
	}
	return f
}

const sampleLog = `Date,Tm,Opp,GS,IP,H,R,ER,BB,SO,HR
2025-04-07,NYY,BAL,1,5.1,6,3,3,2,4,0
2025-04-01,NYY,MIL,1,6.0,5,2,2,1,7,1
,,,,,,,,,,
`

func TestReadCSV(t *testing.T) {
	t.Parallel()

	apps, err := ReadCSV(strings.NewReader(sampleLog))
	require.NoError(t, err)
	require.Len(t, apps, 2)

	assert.Equal(t, Appearance{
		Date: MustDate("2025-04-07"),
		IP:   5.1,
		ER:   3, SO: 4, BB: 2, HR: 0, H: 6, GS: 1,
	}, apps[0])
	assert.Equal(t, MustDate("2025-04-01"), apps[1].Date)
	assert.Equal(t, 7, apps[1].SO)
}

func TestReadCSVHeaderCaseAndBlanks(t *testing.T) {
	t.Parallel()

	in := "date,ip,er,so,bb,hr,h,gs\n4/1/2025,,,,,,,1\n"
	apps, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.True(t, apps[0].IPMissing)
	assert.Equal(t, 0, apps[0].ER)
	assert.Equal(t, 1, apps[0].GS)
}

func TestReadCSVErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{"empty", "", ErrNoDateColumn},
		{"no date column", "Day,IP,ER,SO,BB,HR,H,GS\n", ErrNoDateColumn},
		{"missing stat column", "Date,IP,ER,SO,BB,HR,H\n", ErrMissingColumn},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ReadCSV(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := ReadCSV(strings.NewReader("Date,IP,ER,SO,BB,HR,H,GS\nnot-a-date,1,0,0,0,0,0,1\n"))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("Date,IP,ER,SO,BB,HR,H,GS\n2025-04-01,x,0,0,0,0,0,1\n"))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("Date,IP,ER,SO,BB,HR,H,GS\n2025-04-01,1.0,0.5,0,0,0,0,1\n"))
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	want := Date{Year: 2025, Month: time.April, Day: 7}
	for _, s := range []string{
		"2025-04-07",
		"2025-04-07T19:05:00Z",
		"2025-04-07 19:05:00",
		"2025-04-07 13:05:00-04:00",
		"2025-04-07 21:05-04:00",
		"4/7/2025",
		"04/07/2025",
	} {
		d, err := ParseDate(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, d, s)
	}

	start, err := ParseTime("2025-04-07 13:05:00-04:00")
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2025, 4, 7, 17, 5, 0, 0, time.UTC)))

	_, err = ParseDate("Apr 7")
	assert.Error(t, err)
	assert.Equal(t, "2025-04-07", want.String())
	assert.True(t, MustDate("2025-04-01").Before(want))
	assert.Equal(t, 0, want.Compare(MustDate("2025-04-07")))
}

func TestDirSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := DirSource{Dir: dir}
	ctx := context.Background()

	_, err := src.Load(ctx, "Nobody Here")
	assert.True(t, errors.Is(err, ErrNoLog))
	assert.False(t, src.Exists("Nobody Here"))

	header := []string{"Date", "IP", "ER", "SO", "BB", "HR", "H", "GS"}
	rows := [][]string{{"2025-04-01", "6.0", "2", "7", "1", "1", "5", "1"}}
	path, err := src.Save("José De León", header, rows)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Jose_De_Leon.csv"), path)
	assert.True(t, src.Exists("José De León"))

	apps, err := src.Load(ctx, "José De León")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, 18, func() int { o, _ := apps[0].Outs(); return o }())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestStaticSource(t *testing.T) {
	t.Parallel()

	src := StaticSource{"A": {{Date: MustDate("2025-04-01"), GS: 1}}}
	apps, err := src.Load(context.Background(), "A")
	require.NoError(t, err)
	assert.Len(t, apps, 1)

	_, err = src.Load(context.Background(), "B")
	assert.ErrorIs(t, err, ErrNoLog)
}
