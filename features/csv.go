package features

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rustyeddy/starters/gamelog"
	"github.com/rustyeddy/starters/stat"
)

var derivedHeader = []string{
	"Date", "IP", "outs", "IP_game",
	"cum_outs", "cum_ip", "cum_ER", "cum_SO", "cum_BB", "cum_HR", "cum_H", "cum_GS",
	"ERA_cum", "FIP_cum", "WHIP_cum", "K9_cum", "BB9_cum", "HR9_cum", "IP_per_start_cum",
	"outs_last3", "ER_last3", "SO_last3", "BB_last3", "HR_last3", "H_last3",
	"ERA_last3", "WHIP_last3", "K9_last3", "BB9_last3", "HR9_last3", "IP_last3",
}

// WriteCSV dumps the derived log, one row per appearance, for inspection.
func (l *Log) WriteCSV(w io.Writer) error {
	header := append([]string{}, derivedHeader...)
	for _, n := range Names {
		header = append(header, n+"_before")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range l.Rows {
		if err := cw.Write(r.record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (r Derived) record() []string {
	i := strconv.Itoa
	f := func(x float64) string { return strconv.FormatFloat(x, 'f', 6, 64) }
	window := func(n int) string {
		if !r.Last3Ready {
			return ""
		}
		return i(n)
	}

	out := []string{
		r.Date.String(), gamelog.FormatInnings(r.Outs), i(r.Outs), f(r.IPGame),
		i(r.Cum.Outs), f(r.CumIP), i(r.Cum.ER), i(r.Cum.SO), i(r.Cum.BB), i(r.Cum.HR), i(r.Cum.H), i(r.Cum.GS),
	}
	for _, s := range []stat.Stat{
		r.Season.ERA, r.Season.FIP, r.Season.WHIP, r.Season.K9, r.Season.BB9, r.Season.HR9, r.Season.IPPerStart,
	} {
		out = append(out, s.String())
	}
	out = append(out,
		window(r.Last3.Outs), window(r.Last3.ER), window(r.Last3.SO),
		window(r.Last3.BB), window(r.Last3.HR), window(r.Last3.H),
	)
	for _, s := range []stat.Stat{
		r.Recent.ERA, r.Recent.WHIP, r.Recent.K9, r.Recent.BB9, r.Recent.HR9, r.Recent.IP,
	} {
		out = append(out, s.String())
	}
	for _, s := range r.Before.Values() {
		out = append(out, s.String())
	}
	return out
}
