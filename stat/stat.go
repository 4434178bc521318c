// Package stat holds the optional numeric value used for every derived
// pitching statistic.
package stat

import (
	"math"
	"strconv"
)

// Stat is a statistic that may be undefined. The zero value is Missing.
type Stat struct {
	Value float64
	Valid bool
}

// Missing marks a statistic with no defined value.
var Missing = Stat{}

// Of returns a valid Stat holding v.
func Of(v float64) Stat {
	return Stat{Value: v, Valid: true}
}

// Zero is the defined value 0.0.
func Zero() Stat {
	return Of(0)
}

// Ratio returns num/den, or Missing when den is exactly zero.
func Ratio(num, den float64) Stat {
	if den == 0 {
		return Missing
	}
	v := num / den
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Missing
	}
	return Of(v)
}

// Scale multiplies a valid stat by k.
func (s Stat) Scale(k float64) Stat {
	if !s.Valid {
		return Missing
	}
	return Of(s.Value * k)
}

// Add adds k to a valid stat.
func (s Stat) Add(k float64) Stat {
	if !s.Valid {
		return Missing
	}
	return Of(s.Value + k)
}

// OrZero returns the stat if valid, otherwise the defined value 0.0.
func (s Stat) OrZero() Stat {
	if s.Valid {
		return s
	}
	return Zero()
}

// Ptr returns a pointer to the value, or nil when missing.
func (s Stat) Ptr() *float64 {
	if !s.Valid {
		return nil
	}
	v := s.Value
	return &v
}

// FromPtr is the inverse of Ptr.
func FromPtr(p *float64) Stat {
	if p == nil {
		return Missing
	}
	return Of(*p)
}

// String renders the value for tabular output; missing values render empty.
func (s Stat) String() string {
	if !s.Valid {
		return ""
	}
	return strconv.FormatFloat(s.Value, 'f', -1, 64)
}
