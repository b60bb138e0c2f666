// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package timeseries

import (
	"sort"
	"time"
)

// Record is a single long-format observation: a country's cumulative count on a date.
type Record struct {
	Country string
	Date    time.Time
	Value   float64
}

// Build pivots long-format records into a Table with one row per distinct date
// (ascending) and one column per country (sorted by name).
// Records sharing a country and date (e.g. provinces of the same country) are summed.
// Dates are truncated to calendar days. Cells without any record are missing.
func Build(recs []Record) (*Table, error) {
	if len(recs) == 0 {
		return nil, ErrNoRecords
	}

	type cell struct {
		sum float64
		ok  bool // true if at least one non-missing value was added
	}
	series := make(map[string]map[time.Time]*cell)
	days := make(map[time.Time]struct{})
	for _, r := range recs {
		d := day(r.Date)
		days[d] = struct{}{}
		ts := series[r.Country]
		if ts == nil {
			ts = make(map[time.Time]*cell)
			series[r.Country] = ts
		}
		c := ts[d]
		if c == nil {
			c = &cell{}
			ts[d] = c
		}
		if !IsMissing(r.Value) {
			c.sum += r.Value
			c.ok = true
		}
	}

	dates := make([]time.Time, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	cols := make([]Column, len(names))
	for i, name := range names {
		vals := make([]float64, len(dates))
		for j, d := range dates {
			if c := series[name][d]; c != nil && c.ok {
				vals[j] = c.sum
			} else {
				vals[j] = Missing()
			}
		}
		cols[i] = Column{name, vals}
	}
	return New(dates, cols)
}

// day returns midnight UTC on t's calendar date.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
