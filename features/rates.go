package features

import "github.com/rustyeddy/starters/stat"

// FIPConstant is the fixed league constant added to FIP.
const FIPConstant = 3.1

// WindowSize is the number of appearances in the recent-form window.
const WindowSize = 3

// SeasonRates are computed from season-to-date totals.
type SeasonRates struct {
	ERA        stat.Stat
	FIP        stat.Stat
	WHIP       stat.Stat
	K9         stat.Stat
	BB9        stat.Stat
	HR9        stat.Stat
	IPPerStart stat.Stat
}

// RecentRates are computed from the trailing window. There is no FIP or
// innings-per-start variant.
type RecentRates struct {
	ERA  stat.Stat
	WHIP stat.Stat
	K9   stat.Stat
	BB9  stat.Stat
	HR9  stat.Stat
	IP   stat.Stat
}

func seasonRates(t Totals) SeasonRates {
	ip := t.IP()
	return SeasonRates{
		ERA:        stat.Ratio(9*float64(t.ER), ip),
		FIP:        stat.Ratio(float64(13*t.HR+3*t.BB-2*t.SO), ip).Add(FIPConstant),
		WHIP:       stat.Ratio(float64(t.H+t.BB), ip),
		K9:         stat.Ratio(9*float64(t.SO), ip),
		BB9:        stat.Ratio(9*float64(t.BB), ip),
		HR9:        stat.Ratio(9*float64(t.HR), ip),
		IPPerStart: stat.Ratio(ip, float64(t.GS)),
	}
}

func recentRates(t Totals, ready bool) RecentRates {
	if !ready {
		return RecentRates{}
	}
	ip := t.IP()
	return RecentRates{
		ERA:  stat.Ratio(9*float64(t.ER), ip),
		WHIP: stat.Ratio(float64(t.H+t.BB), ip),
		K9:   stat.Ratio(9*float64(t.SO), ip),
		BB9:  stat.Ratio(9*float64(t.BB), ip),
		HR9:  stat.Ratio(9*float64(t.HR), ip),
		IP:   stat.Of(ip),
	}
}
