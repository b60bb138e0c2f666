// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package timeseries

import "time"

// Last returns the date and values (in column order) of t's final row.
// ok is false if t has no rows.
func (t *Table) Last() (date time.Time, vals []float64, ok bool) {
	if t.Len() == 0 {
		return time.Time{}, nil, false
	}
	return t.dates[t.Len()-1], t.Row(t.Len() - 1), true
}

// Sum returns the sum of each row across all countries.
// Missing values are skipped; a row with no values sums to 0.
func (t *Table) Sum() []float64 {
	sums := make([]float64, t.Len())
	for _, c := range t.cols {
		for i, v := range c.Values {
			if !IsMissing(v) {
				sums[i] += v
			}
		}
	}
	return sums
}

// Diff returns a table holding each column's day-over-day change.
// The first row is missing.
func (t *Table) Diff() *Table {
	return t.Map(func(_ string, vals []float64) []float64 { return Diff(vals) })
}

// PctChange returns a table holding each column's fractional change from the previous row,
// e.g. 0.5 for an increase from 10 to 15. The first row is missing.
func (t *Table) PctChange() *Table {
	return t.Map(func(_ string, vals []float64) []float64 { return PctChange(vals) })
}

// Map returns a new table with the same dates and countries as t, with each column's values
// replaced by the result of calling f with a copy of them.
// f must return one value per row.
func (t *Table) Map(f func(country string, vals []float64) []float64) *Table {
	cols := make([]Column, len(t.cols))
	for i, c := range t.cols {
		cols[i] = Column{c.Name, f(c.Name, append([]float64(nil), c.Values...))}
	}
	return mustNew(t.dates, cols)
}

// Diff returns the differences between consecutive elements of vals.
// The first element of the result is missing.
func Diff(vals []float64) []float64 {
	out := make([]float64, len(vals))
	for i := range vals {
		if i == 0 {
			out[i] = Missing()
		} else {
			out[i] = vals[i] - vals[i-1]
		}
	}
	return out
}

// PctChange returns the fractional change between consecutive elements of vals.
// The first element of the result is missing. Growth from zero yields +Inf
// and zero-to-zero yields a missing value.
func PctChange(vals []float64) []float64 {
	out := make([]float64, len(vals))
	for i := range vals {
		if i == 0 {
			out[i] = Missing()
		} else {
			out[i] = (vals[i] - vals[i-1]) / vals[i-1]
		}
	}
	return out
}
