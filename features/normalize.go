// Package features derives point-in-time pitching statistics from a single
// pitcher's appearance log.
package features

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rustyeddy/starters/gamelog"
)

var (
	// ErrEmptyLog means the appearance log has no rows.
	ErrEmptyLog = errors.New("empty appearance log")
	// ErrNoAppearance means no appearance exists on the requested date.
	ErrNoAppearance = errors.New("no appearance on date")
	// ErrDuplicateDate means more than one appearance shares the requested
	// date. Which one is right cannot be decided here, so none is returned.
	ErrDuplicateDate = errors.New("duplicate appearance date")
)

// FillPolicy decides which undefined "before" values are replaced with 0.0.
type FillPolicy string

const (
	// FillFirst zeroes only the first appearance (season reset). Later
	// undefined values stay missing.
	FillFirst FillPolicy = "first"
	// FillAll zeroes every undefined before-value.
	FillAll FillPolicy = "all"
)

// ParseFillPolicy accepts "first" (the default for "") or "all".
func ParseFillPolicy(s string) (FillPolicy, error) {
	switch FillPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", FillFirst:
		return FillFirst, nil
	case FillAll:
		return FillAll, nil
	}
	return "", fmt.Errorf("unknown fill policy %q (supported: first, all)", s)
}

type options struct {
	fill FillPolicy
}

// Option configures Normalize.
type Option func(*options)

// WithFillPolicy sets the before-value fill policy.
func WithFillPolicy(p FillPolicy) Option {
	return func(o *options) {
		if p != "" {
			o.fill = p
		}
	}
}

// Derived is an appearance extended with its cumulative, windowed and
// before-this-game statistics.
type Derived struct {
	gamelog.Appearance

	Outs   int
	IPGame float64

	Cum    Totals
	CumIP  float64
	Season SeasonRates

	Last3      Totals
	Last3Ready bool
	Recent     RecentRates

	Before Before
}

// Log is a normalized appearance log, sorted by date.
type Log struct {
	Rows []Derived

	// Anomalies lists appearance dates whose innings value was not valid
	// partial-innings notation.
	Anomalies []gamelog.Date

	index map[gamelog.Date][]int
}

// Normalize sorts apps by date and computes the derived statistics for every
// appearance. The input slice is not modified.
func Normalize(apps []gamelog.Appearance, opts ...Option) (*Log, error) {
	if len(apps) == 0 {
		return nil, ErrEmptyLog
	}
	o := options{fill: FillFirst}
	for _, opt := range opts {
		opt(&o)
	}

	rows := make([]Derived, len(apps))
	for i, a := range apps {
		rows[i].Appearance = a
	}
	// Stable so same-day appearances keep their input order.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})

	l := &Log{Rows: rows, index: make(map[gamelog.Date][]int, len(rows))}
	win := NewWindow(WindowSize)
	var cum Totals

	for i := range rows {
		r := &rows[i]

		outs, ok := r.Appearance.Outs()
		if !ok {
			l.Anomalies = append(l.Anomalies, r.Date)
		}
		r.Outs = outs
		r.IPGame = float64(outs) / 3.0

		game := Totals{Outs: outs, ER: r.ER, SO: r.SO, BB: r.BB, HR: r.HR, H: r.H, GS: r.GS}

		cum = cum.Plus(game)
		r.Cum = cum
		r.CumIP = cum.IP()
		r.Season = seasonRates(cum)

		win.Update(game)
		r.Last3Ready = win.Ready()
		r.Last3 = win.Value()
		r.Recent = recentRates(r.Last3, r.Last3Ready)

		if i == 0 {
			r.Before = ZeroBefore()
		} else {
			prev := rows[i-1]
			r.Before = Before{Season: prev.Season, Recent: prev.Recent}
			if o.fill == FillAll {
				r.Before = r.Before.OrZero()
			}
		}

		l.index[r.Date] = append(l.index[r.Date], i)
	}
	return l, nil
}

// Len is the number of appearances.
func (l *Log) Len() int {
	return len(l.Rows)
}

// Lookup returns the appearance on d. It fails with ErrNoAppearance when there
// is none and ErrDuplicateDate when there is more than one.
func (l *Log) Lookup(d gamelog.Date) (Derived, error) {
	idx := l.index[d]
	switch len(idx) {
	case 0:
		return Derived{}, fmt.Errorf("%w: %s", ErrNoAppearance, d)
	case 1:
		return l.Rows[idx[0]], nil
	}
	return Derived{}, fmt.Errorf("%w: %s (%d rows)", ErrDuplicateDate, d, len(idx))
}

// DuplicateDates lists dates that appear more than once, in log order.
func (l *Log) DuplicateDates() []gamelog.Date {
	var out []gamelog.Date
	for _, r := range l.Rows {
		if len(l.index[r.Date]) > 1 && (len(out) == 0 || out[len(out)-1] != r.Date) {
			out = append(out, r.Date)
		}
	}
	return out
}
