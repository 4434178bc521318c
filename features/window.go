package features

// Window is a streaming sum over the most recent period appearances.
type Window struct {
	period int
	rows   []Totals
}

// NewWindow creates a trailing window of the given length.
func NewWindow(period int) *Window {
	return &Window{
		period: period,
		rows:   make([]Totals, 0, period),
	}
}

func (w *Window) Update(t Totals) {
	w.rows = append(w.rows, t)
	// Keep only the last 'period' rows
	if len(w.rows) > w.period {
		w.rows = w.rows[1:]
	}
}

func (w *Window) Ready() bool {
	return len(w.rows) >= w.period
}

// Value returns the window sum. Callers should check Ready first; a window
// that is still warming up returns zero totals.
func (w *Window) Value() Totals {
	if !w.Ready() {
		return Totals{}
	}
	var sum Totals
	for _, t := range w.rows {
		sum = sum.Plus(t)
	}
	return sum
}
