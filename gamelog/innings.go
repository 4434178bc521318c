package gamelog

import (
	"math"
	"strconv"
)

// InningsToOuts converts conventional innings-pitched notation, where .1 and .2
// mean one and two thirds of an inning, into an exact out count:
//
//	outs = floor(ip)*3 + round((ip - floor(ip)) * 10)
//
// NaN (a missing value) is zero outs. ok is false when the fractional digit is
// not 0, 1 or 2; the formula value is still returned.
func InningsToOuts(ip float64) (outs int, ok bool) {
	if math.IsNaN(ip) {
		return 0, true
	}
	full := math.Floor(ip)
	frac := math.Round((ip - full) * 10)
	outs = int(full)*3 + int(frac)
	return outs, ip >= 0 && frac >= 0 && frac <= 2
}

// FormatInnings renders an out count back into innings notation ("5.1").
func FormatInnings(outs int) string {
	return strconv.Itoa(outs/3) + "." + strconv.Itoa(outs%3)
}
