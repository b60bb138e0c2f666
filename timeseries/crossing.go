// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package timeseries

import "time"

// Crossings maps countries to the first date on which their values exceeded a threshold.
// Countries that never exceeded it have no entry.
// Iteration order is the column order of the table that was scanned.
type Crossings struct {
	countries []string
	m         map[string]crossing
}

type crossing struct {
	date  time.Time
	row   int // row of date
	start int // first row on or after the day before date
}

// FirstCrossed scans each of t's columns in date order and records the
// first date whose value is strictly greater than threshold.
// t's rows must already be sorted by date, which New guarantees.
func FirstCrossed(t *Table, threshold float64) *Crossings {
	cr := &Crossings{m: make(map[string]crossing)}
	for _, c := range t.cols {
		for i, v := range c.Values {
			if v > threshold { // false for missing values
				d := t.dates[i]
				cr.countries = append(cr.countries, c.Name)
				cr.m[c.Name] = crossing{
					date:  d,
					row:   i,
					start: t.RowOnOrAfter(d.AddDate(0, 0, -1)),
				}
				break
			}
		}
	}
	return cr
}

// Len returns the number of countries that crossed the threshold.
func (cr *Crossings) Len() int { return len(cr.countries) }

// Countries returns the countries that crossed the threshold in discovery order.
func (cr *Crossings) Countries() []string {
	return append([]string(nil), cr.countries...)
}

// Date returns the date on which country first exceeded the threshold.
func (cr *Crossings) Date(country string) (time.Time, bool) {
	c, ok := cr.m[country]
	return c.date, ok
}

// Row returns the table row of country's crossing date.
func (cr *Crossings) Row(country string) (int, bool) {
	c, ok := cr.m[country]
	return c.row, ok
}

// Start returns the row at which country's outbreak run begins: the first row
// dated on or after the day before the crossing date. For a daily table with
// no gaps this is the row before the crossing, or 0 if the crossing is on the first row.
func (cr *Crossings) Start(country string) (int, bool) {
	c, ok := cr.m[country]
	return c.start, ok
}

// Map returns the crossings as a plain map, e.g. for comparisons in tests.
func (cr *Crossings) Map() map[string]time.Time {
	m := make(map[string]time.Time, len(cr.m))
	for name, c := range cr.m {
		m[name] = c.date
	}
	return m
}
