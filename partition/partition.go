// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package partition splits country tables into training, validation, and test sets.
//
// Both splitting modes size their sets from the shortest outbreak run in the
// table, i.e. the fewest days any country has had since the day before its
// first case. The validation and test sets each get a fifth of that run.
package partition

import (
	"errors"
	"fmt"

	"github.com/derat/covidwatch/timeseries"
)

// firstCaseThreshold is exceeded on a country's first day with cases.
const firstCaseThreshold = 1

var (
	// ErrNoCases is returned when no country in the table has any cases.
	ErrNoCases = errors.New("no country has cases")
	// ErrRunTooShort is returned when the shortest outbreak run is too short
	// to hold out any validation or test rows.
	ErrRunTooShort = errors.New("shortest outbreak run too short to partition")
	// ErrBadSeqLength is returned for non-positive window lengths.
	ErrBadSeqLength = errors.New("sequence length must be positive")
)

// Sizes describes how a table will be partitioned.
type Sizes struct {
	ShortestRun int // fewest days with cases across qualifying countries
	Shortest    string
	TestLen     int // rows (or windows per country) in each of validation and test
	TrainLen    int // rows in the training set in date mode
}

// ComputeSizes computes partition sizes for t from its shortest outbreak run.
// Countries that never exceed one case are ignored.
func ComputeSizes(t *timeseries.Table) (Sizes, error) {
	cr := timeseries.FirstCrossed(t, firstCaseThreshold)
	if cr.Len() == 0 {
		return Sizes{}, ErrNoCases
	}

	var sz Sizes
	for i, name := range cr.Countries() {
		start, _ := cr.Start(name)
		if days := t.Len() - start; i == 0 || days < sz.ShortestRun {
			sz.ShortestRun = days
			sz.Shortest = name
		}
	}
	if sz.ShortestRun < 1 {
		return sz, fmt.Errorf("%w: %v has %d days", ErrRunTooShort, sz.Shortest, sz.ShortestRun)
	}

	sz.TestLen = sz.ShortestRun / 5
	sz.TrainLen = t.Len() - 2*sz.TestLen
	if sz.TestLen < 1 {
		return sz, fmt.Errorf("%w: %v has %d days, need at least 5",
			ErrRunTooShort, sz.Shortest, sz.ShortestRun)
	}
	return sz, nil
}

// DateSplit holds a table partitioned into contiguous date ranges.
type DateSplit struct {
	Sizes
	Train, Val, Test *timeseries.Table
}

// SplitByDate partitions t's rows in order: the first TrainLen rows go to
// the training set, the next TestLen to validation, and the rest to test.
// All countries are kept in each set.
func SplitByDate(t *timeseries.Table) (*DateSplit, error) {
	sz, err := ComputeSizes(t)
	if err != nil {
		return nil, err
	}
	vs := sz.TrainLen + sz.TestLen
	return &DateSplit{
		Sizes: sz,
		Train: t.Slice(0, sz.TrainLen),
		Val:   t.Slice(sz.TrainLen, vs),
		Test:  t.Slice(vs, t.Len()),
	}, nil
}
