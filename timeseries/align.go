// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package timeseries

// Aligned holds per-country series indexed by days since the day before
// each country crossed a threshold rather than by calendar date.
// Shorter columns are padded with missing values to the longest column's length.
type Aligned struct {
	cols []Column
	rows int
}

// AlignCases restarts each of t's countries one day before the first date on which
// its value exceeded threshold. Countries that never exceeded threshold are omitted.
// Columns appear in the order returned by FirstCrossed.
func AlignCases(t *Table, threshold float64) *Aligned {
	cr := FirstCrossed(t, threshold)
	a := &Aligned{cols: make([]Column, 0, cr.Len())}
	for _, name := range cr.Countries() {
		start, _ := cr.Start(name)
		vals := t.cols[t.index[name]].Values[start:]
		a.cols = append(a.cols, Column{name, append([]float64(nil), vals...)})
		if len(vals) > a.rows {
			a.rows = len(vals)
		}
	}
	for i := range a.cols {
		for len(a.cols[i].Values) < a.rows {
			a.cols[i].Values = append(a.cols[i].Values, Missing())
		}
	}
	return a
}

// Len returns the number of rows (day offsets) in a.
func (a *Aligned) Len() int { return a.rows }

// Countries returns the column names in column order.
func (a *Aligned) Countries() []string {
	names := make([]string, len(a.cols))
	for i, c := range a.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns a copy of country's padded values.
func (a *Aligned) Column(country string) ([]float64, bool) {
	for _, c := range a.cols {
		if c.Name == country {
			return append([]float64(nil), c.Values...), true
		}
	}
	return nil, false
}

// Columns returns copies of all columns in column order.
func (a *Aligned) Columns() []Column {
	cols := make([]Column, len(a.cols))
	for i, c := range a.cols {
		cols[i] = Column{c.Name, append([]float64(nil), c.Values...)}
	}
	return cols
}

// Observed returns the number of non-missing values in country's column.
func (a *Aligned) Observed(country string) int {
	vals, _ := a.Column(country)
	n := 0
	for _, v := range vals {
		if !IsMissing(v) {
			n++
		}
	}
	return n
}
