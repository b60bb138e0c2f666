// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package timeseries holds per-country daily case counts indexed by date
// and the operations used to compare outbreaks across countries.
package timeseries

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrUnsortedDates    = errors.New("dates not strictly increasing")
	ErrLengthMismatch   = errors.New("column length doesn't match dates")
	ErrDuplicateCountry = errors.New("duplicate country")
	ErrNoRecords        = errors.New("no records")
)

// Missing returns the value used for cells without an observation.
func Missing() float64 { return math.NaN() }

// IsMissing returns true if v marks a cell without an observation.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Column is a named sequence of values, one per table row.
type Column struct {
	Name   string
	Values []float64
}

// Table is a time-indexed country table: one row per date in ascending
// order and one column per country.
// Tables are immutable once created; accessors return copies.
type Table struct {
	dates []time.Time
	cols  []Column
	index map[string]int // country name to position in cols
}

// New returns a new Table with the supplied row dates and columns.
// dates must be strictly increasing and each column must have one value per date.
// Column order is preserved.
func New(dates []time.Time, cols []Column) (*Table, error) {
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			return nil, fmt.Errorf("%w: %v follows %v", ErrUnsortedDates,
				dates[i].Format("2006-01-02"), dates[i-1].Format("2006-01-02"))
		}
	}
	t := &Table{
		dates: append([]time.Time(nil), dates...),
		cols:  make([]Column, 0, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	for _, c := range cols {
		if len(c.Values) != len(dates) {
			return nil, fmt.Errorf("%w: %q has %d values for %d dates",
				ErrLengthMismatch, c.Name, len(c.Values), len(dates))
		}
		if _, ok := t.index[c.Name]; ok {
			return nil, fmt.Errorf("%w %q", ErrDuplicateCountry, c.Name)
		}
		t.index[c.Name] = len(t.cols)
		t.cols = append(t.cols, Column{c.Name, append([]float64(nil), c.Values...)})
	}
	return t, nil
}

// mustNew is used when t's invariants were already checked by the caller.
func mustNew(dates []time.Time, cols []Column) *Table {
	t, err := New(dates, cols)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of rows (dates) in t.
func (t *Table) Len() int { return len(t.dates) }

// Date returns the date of row i.
func (t *Table) Date(i int) time.Time { return t.dates[i] }

// Dates returns all row dates in ascending order.
func (t *Table) Dates() []time.Time { return append([]time.Time(nil), t.dates...) }

// Countries returns the column names in column order.
func (t *Table) Countries() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Has returns true if t has a column named country.
func (t *Table) Has(country string) bool {
	_, ok := t.index[country]
	return ok
}

// Column returns a copy of the values for country.
func (t *Table) Column(country string) ([]float64, bool) {
	i, ok := t.index[country]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), t.cols[i].Values...), true
}

// Columns returns copies of all columns in column order.
func (t *Table) Columns() []Column {
	cols := make([]Column, len(t.cols))
	for i, c := range t.cols {
		cols[i] = Column{c.Name, append([]float64(nil), c.Values...)}
	}
	return cols
}

// Value returns the value for country at row i, or a missing value if
// country isn't present.
func (t *Table) Value(i int, country string) float64 {
	ci, ok := t.index[country]
	if !ok {
		return Missing()
	}
	return t.cols[ci].Values[i]
}

// Row returns the values at row i in column order.
func (t *Table) Row(i int) []float64 {
	vals := make([]float64, len(t.cols))
	for ci, c := range t.cols {
		vals[ci] = c.Values[i]
	}
	return vals
}

// Slice returns a new table containing rows [from, to).
func (t *Table) Slice(from, to int) *Table {
	cols := make([]Column, len(t.cols))
	for i, c := range t.cols {
		cols[i] = Column{c.Name, c.Values[from:to]}
	}
	return mustNew(t.dates[from:to], cols)
}

// Select returns a new table containing only the named countries, in the supplied order.
// Names not present in t are ignored.
func (t *Table) Select(countries ...string) *Table {
	cols := make([]Column, 0, len(countries))
	seen := make(map[string]struct{}, len(countries))
	for _, name := range countries {
		i, ok := t.index[name]
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		cols = append(cols, t.cols[i])
	}
	return mustNew(t.dates, cols)
}

// RowOnOrAfter returns the index of the first row dated on or after d,
// or Len() if there's no such row.
func (t *Table) RowOnOrAfter(d time.Time) int {
	lo, hi := 0, len(t.dates)
	for lo < hi {
		mid := (lo + hi) / 2
		if t.dates[mid].Before(d) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
