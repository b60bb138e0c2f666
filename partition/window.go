// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package partition

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/derat/covidwatch/timeseries"
)

// Window is a fixed-length run of consecutive observations from one country.
type Window struct {
	Country string
	Offset  int       // position of Values[0] within the country's trimmed series
	Values  []float64 // indexed from 0 regardless of calendar date
}

// WindowSet is an ordered list of windows, grouped by country in source column order.
type WindowSet []Window

// WindowSplit holds per-country windows partitioned into training, validation, and test sets.
type WindowSplit struct {
	Sizes
	SeqLength        int
	Train, Val, Test WindowSet
	// Skipped lists countries whose history was too short to fill every set.
	Skipped []string
	// NoCases lists countries that were left out because they never had a case.
	NoCases []string
}

// SplitWindows slices each of t's columns into every window of seqLength consecutive
// observations (leading and trailing missing values are trimmed first).
// For each country, the last TestLen windows go to the test set, the TestLen before
// them to validation, and the remainder to training. Countries without enough
// windows for the validation and test sets are skipped rather than failing the split,
// and countries that never had a case are left out.
func SplitWindows(t *timeseries.Table, seqLength int) (*WindowSplit, error) {
	if seqLength <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadSeqLength, seqLength)
	}
	sz, err := ComputeSizes(t)
	if err != nil {
		return nil, err
	}

	cr := timeseries.FirstCrossed(t, firstCaseThreshold)
	ws := &WindowSplit{Sizes: sz, SeqLength: seqLength}
	for _, col := range t.Columns() {
		if _, ok := cr.Date(col.Name); !ok {
			ws.NoCases = append(ws.NoCases, col.Name)
			continue
		}
		obs := trimMissing(col.Values)
		n := len(obs) - seqLength + 1
		trainN := n - 2*sz.TestLen
		if n < 1 || trainN < 0 {
			ws.Skipped = append(ws.Skipped, col.Name)
			continue
		}
		for i := 0; i < n; i++ {
			w := Window{col.Name, i, append([]float64(nil), obs[i:i+seqLength]...)}
			switch {
			case i < trainN:
				ws.Train = append(ws.Train, w)
			case i < trainN+sz.TestLen:
				ws.Val = append(ws.Val, w)
			default:
				ws.Test = append(ws.Test, w)
			}
		}
	}
	return ws, nil
}

// trimMissing returns the portion of vals between the first and last non-missing values.
func trimMissing(vals []float64) []float64 {
	start, end := 0, len(vals)
	for start < end && timeseries.IsMissing(vals[start]) {
		start++
	}
	for end > start && timeseries.IsMissing(vals[end-1]) {
		end--
	}
	return vals[start:end]
}

// Count returns the number of windows in ws belonging to country.
func (ws WindowSet) Count(country string) int {
	n := 0
	for _, w := range ws {
		if w.Country == country {
			n++
		}
	}
	return n
}

// WriteTSV writes ws to w with one tab-separated line per window:
// the country, the window's offset, and then its values.
func (ws WindowSet) WriteTSV(w io.Writer, seqLength int) error {
	var writeErr error
	write := func(s string) {
		if writeErr == nil {
			_, writeErr = io.WriteString(w, s)
		}
	}

	header := []string{"Country", "Offset"}
	for i := 0; i < seqLength; i++ {
		header = append(header, strconv.Itoa(i))
	}
	write(strings.Join(header, "\t") + "\n")

	for _, win := range ws {
		vals := make([]string, 0, 2+len(win.Values))
		vals = append(vals, win.Country, strconv.Itoa(win.Offset))
		for _, v := range win.Values {
			vals = append(vals, timeseries.FormatValue(v))
		}
		write(strings.Join(vals, "\t") + "\n")
	}
	return writeErr
}
