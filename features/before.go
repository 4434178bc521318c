package features

import "github.com/rustyeddy/starters/stat"

// Before holds every statistic as it stood before an appearance. It is the
// feature set copied onto a schedule row for each starter. The zero value has
// every field missing.
type Before struct {
	Season SeasonRates
	Recent RecentRates
}

// Names lists the feature names in output order. Field i of Values has name i.
var Names = []string{
	"ERA", "FIP", "WHIP", "K9", "BB9", "HR9", "IP_per_start",
	"ERA_last3", "WHIP_last3", "K9_last3", "BB9_last3", "HR9_last3", "IP_last3",
}

// Values returns the features in the order of Names.
func (b Before) Values() []stat.Stat {
	return []stat.Stat{
		b.Season.ERA, b.Season.FIP, b.Season.WHIP, b.Season.K9,
		b.Season.BB9, b.Season.HR9, b.Season.IPPerStart,
		b.Recent.ERA, b.Recent.WHIP, b.Recent.K9,
		b.Recent.BB9, b.Recent.HR9, b.Recent.IP,
	}
}

// FromValues builds a Before from values ordered like Names.
func FromValues(v []stat.Stat) Before {
	get := func(i int) stat.Stat {
		if i < len(v) {
			return v[i]
		}
		return stat.Missing
	}
	return Before{
		Season: SeasonRates{
			ERA: get(0), FIP: get(1), WHIP: get(2), K9: get(3),
			BB9: get(4), HR9: get(5), IPPerStart: get(6),
		},
		Recent: RecentRates{
			ERA: get(7), WHIP: get(8), K9: get(9),
			BB9: get(10), HR9: get(11), IP: get(12),
		},
	}
}

// ZeroBefore is the season-reset value used for a pitcher's first appearance.
func ZeroBefore() Before {
	v := make([]stat.Stat, len(Names))
	for i := range v {
		v[i] = stat.Zero()
	}
	return FromValues(v)
}

// OrZero replaces every missing field with 0.0.
func (b Before) OrZero() Before {
	v := b.Values()
	for i := range v {
		v[i] = v[i].OrZero()
	}
	return FromValues(v)
}

// Defined counts the fields holding a value.
func (b Before) Defined() int {
	n := 0
	for _, s := range b.Values() {
		if s.Valid {
			n++
		}
	}
	return n
}
