package features

// Totals are the counting stats that feed every rate.
type Totals struct {
	Outs int
	ER   int
	SO   int
	BB   int
	HR   int
	H    int
	GS   int
}

// Plus returns the element-wise sum.
func (t Totals) Plus(o Totals) Totals {
	return Totals{
		Outs: t.Outs + o.Outs,
		ER:   t.ER + o.ER,
		SO:   t.SO + o.SO,
		BB:   t.BB + o.BB,
		HR:   t.HR + o.HR,
		H:    t.H + o.H,
		GS:   t.GS + o.GS,
	}
}

// IP is innings pitched as a true decimal (outs / 3).
func (t Totals) IP() float64 {
	return float64(t.Outs) / 3.0
}
